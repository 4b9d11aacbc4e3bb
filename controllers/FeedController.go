package controllers

import (
	"context"
	"minitwitter/helper"
	"minitwitter/services"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

func GetFeed(c *gin.Context) {
	caller, ok := helper.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page number"})
		return
	}
	pageSize, err := strconv.ParseInt(c.DefaultQuery("page_size", strconv.Itoa(services.DefaultPageSize)), 10, 64)
	if err != nil || pageSize < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page size"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	feedPage, err := feedBuilder.BuildFeed(ctx, caller.ID, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	for i := range feedPage.Results {
		feedPage.Results[i] = withImageURL(feedPage.Results[i])
	}
	c.JSON(http.StatusOK, feedPage)
}
