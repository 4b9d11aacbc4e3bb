package controllers

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"minitwitter/database"
	"minitwitter/helper"
	"minitwitter/models"
	"minitwitter/services"
	"minitwitter/stores"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
)

func CreatePost(c *gin.Context) {
	caller, ok := helper.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	text := c.PostForm("text_content")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text content(text_content) is required."})
		return
	}
	if len([]rune(text)) > models.MaxPostLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text content must be at most 280 characters."})
		return
	}

	var imageID string
	file, err := c.FormFile("image")
	if err == nil {
		imageID, err = uploadToGridFS(database.GridFSBucket, file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	post, err := postStore.Create(ctx, caller.ID, text, imageID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": withImageURL(post)})
}

func uploadToGridFS(bucket *gridfs.Bucket, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	fileID := primitive.NewObjectID()
	uploadStream, err := bucket.OpenUploadStreamWithID(fileID, file.Filename)
	if err != nil {
		return "", err
	}
	defer uploadStream.Close()

	if _, err := io.Copy(uploadStream, src); err != nil {
		return "", err
	}

	return fileID.Hex(), nil
}

func withImageURL(post models.Post) models.Post {
	if post.Image != "" {
		post.Image = os.Getenv("HOST_NAME") + "images/" + post.Image
	}
	return post
}

func GetPost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("post_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID format"})
		return
	}

	caller, ok := helper.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	post, err := postStore.Get(ctx, postID)
	if errors.Is(err, stores.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !services.CanReadPost(caller, post) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": withImageURL(post)})
}

func GetAllPosts(c *gin.Context) {
	caller, ok := helper.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	posts, err := postStore.List(ctx, services.PostScopeFor(caller))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	for i := range posts {
		posts[i] = withImageURL(posts[i])
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func UpdatePost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("post_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID format"})
		return
	}

	caller, ok := helper.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	type updatePostRequest struct {
		TextContent string `json:"text_content"`
	}
	var body updatePostRequest
	if err := c.ShouldBind(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.TextContent == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text content(text_content) is required."})
		return
	}
	if len([]rune(body.TextContent)) > models.MaxPostLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text content must be at most 280 characters."})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	post, err := postStore.Get(ctx, postID)
	if errors.Is(err, stores.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !services.CanMutatePost(caller, post) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action."})
		return
	}

	updated, err := postStore.Update(ctx, postID, bson.M{"text_content": body.TextContent})
	if errors.Is(err, stores.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": withImageURL(updated)})
}

func DeletePost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("post_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID format"})
		return
	}

	caller, ok := helper.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	post, err := postStore.Get(ctx, postID)
	if errors.Is(err, stores.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !services.CanMutatePost(caller, post) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action."})
		return
	}

	if err := postStore.Delete(ctx, postID); err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func GetImage(c *gin.Context) {
	fileID, err := primitive.ObjectIDFromHex(c.Param("image_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image ID"})
		return
	}

	file, err := database.GridFSBucket.OpenDownloadStream(fileID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}
	defer file.Close()

	c.Header("Content-Type", "image/png")

	if _, err := io.Copy(c.Writer, file); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stream image"})
		return
	}
}

func LikePost(c *gin.Context) {
	type likeRequest struct {
		PostID string `json:"post_id"`
	}
	var body likeRequest
	if err := c.ShouldBind(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.PostID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post ID(post_id) is required."})
		return
	}

	postID, err := primitive.ObjectIDFromHex(body.PostID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID format"})
		return
	}

	caller, ok := helper.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = engagement.Like(ctx, caller.ID, postID)
	switch {
	case err == nil:
		c.Status(http.StatusOK)
	case errors.Is(err, services.ErrAlreadyLiked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, stores.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func DislikePost(c *gin.Context) {
	type dislikeRequest struct {
		PostID string `json:"post_id"`
	}
	var body dislikeRequest
	if err := c.ShouldBind(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.PostID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post ID(post_id) is required."})
		return
	}

	postID, err := primitive.ObjectIDFromHex(body.PostID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID format"})
		return
	}

	caller, ok := helper.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = engagement.Dislike(ctx, caller.ID, postID)
	switch {
	case err == nil:
		c.Status(http.StatusOK)
	case errors.Is(err, services.ErrNotLiked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, stores.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
