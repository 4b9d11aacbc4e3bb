package controllers

import (
	"context"
	"errors"
	"minitwitter/database"
	"minitwitter/helper"
	"minitwitter/models"
	"minitwitter/services"
	"minitwitter/stores"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()

var identityStore = stores.NewIdentityStore(database.DB(database.Client))
var postStore = stores.NewPostStore(database.DB(database.Client))

var socialGraph = services.NewSocialGraph(identityStore)
var engagement = services.NewEngagement(postStore)
var feedBuilder = services.NewFeed(socialGraph, postStore)

type signUpRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func SignUp(c *gin.Context) {
	var body signUpRequest
	if err := c.ShouldBind(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// collect every failing rule before answering
	var errorsList []string
	if err := validate.Struct(body); err != nil {
		errorsList = append(errorsList, helper.FieldErrors(err)...)
	}
	if body.Password != "" {
		errorsList = append(errorsList, helper.ValidatePassword(body.Password)...)
	}
	if len(errorsList) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": helper.ValidationErrors(errorsList)})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// friendlier messages than the unique-index error, which still backstops
	// concurrent registrations
	if _, err := identityStore.GetByUsername(ctx, body.Username); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "The provided username is already registered. Please choose another one."})
		return
	}
	if _, err := identityStore.GetByEmail(ctx, body.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "The provided email is already registered. Please choose another one."})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Username:  body.Username,
		Email:     body.Email,
		Password:  string(hashedPassword),
		Following: []primitive.ObjectID{},
		Followers: []primitive.ObjectID{},
		CreatedAt: time.Now().UTC(),
	}

	created, err := identityStore.Create(ctx, user)
	if errors.Is(err, stores.ErrDuplicateKey) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": created})
}

func Login(c *gin.Context) {
	type loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	var body loginRequest
	if err := c.ShouldBind(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if body.Email == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email or Password is empty"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	foundUser, err := identityStore.GetByEmail(ctx, body.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user does not exist"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.Password), []byte(body.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid password"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": foundUser.Email,
		"exp": time.Now().Add(time.Hour * 24 * 30).Unix(),
	})

	tokenString, err := token.SignedString([]byte(os.Getenv("SECRET_KEY")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", tokenString, 3600*24*30, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{"data": foundUser})
}

func Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

func GetAllUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	users, err := identityStore.List(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

func GetUserById(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	user, err := identityStore.Get(ctx, userID)
	if errors.Is(err, stores.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func UpdateUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	caller, ok := helper.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	if caller.ID != userID && !caller.IsStaff {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action."})
		return
	}

	var body updateUserRequest
	if err := c.ShouldBind(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var errorsList []string
	fields := bson.M{}
	if body.Username != nil {
		if *body.Username == "" {
			errorsList = append(errorsList, "Username is required.")
		}
		fields["username"] = *body.Username
	}
	if body.Email != nil {
		if err := validate.Var(*body.Email, "required,email"); err != nil {
			errorsList = append(errorsList, "Enter a valid email address.")
		}
		fields["email"] = *body.Email
	}
	if body.Password != nil {
		errorsList = append(errorsList, helper.ValidatePassword(*body.Password)...)
		if len(errorsList) == 0 {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*body.Password), bcrypt.DefaultCost)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			fields["password"] = string(hashedPassword)
		}
	}
	if len(errorsList) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": helper.ValidationErrors(errorsList)})
		return
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	user, err := identityStore.Update(ctx, userID, fields)
	if errors.Is(err, stores.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if errors.Is(err, stores.ErrDuplicateKey) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

func DeleteUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	caller, ok := helper.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	if caller.ID != userID && !caller.IsStaff {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action."})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := identityStore.Delete(ctx, userID); err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// the user's posts go with the account
	if err := postStore.DeleteByAuthor(ctx, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
