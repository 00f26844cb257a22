package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/iamvtyagi/flashLearn/internal/apierr"
	"github.com/iamvtyagi/flashLearn/internal/http/middleware"
	"github.com/iamvtyagi/flashLearn/internal/http/response"
	"github.com/iamvtyagi/flashLearn/internal/services"
	"github.com/iamvtyagi/flashLearn/internal/types"
)

type UserHandler struct {
	authService services.AuthService
	userService services.UserService
}

func NewUserHandler(authService services.AuthService, userService services.UserService) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
	}
}

func (uh *UserHandler) Register(c *gin.Context) {
	var req struct {
		FirstName string `json:"firstname"`
		LastName  string `json:"lastname"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromAPIError(c, apierr.BadRequest("invalid_body", fmt.Errorf("invalid request body")))
		return
	}
	user := types.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}
	token, err := uh.authService.Register(c.Request.Context(), &user)
	if err != nil {
		response.FromAPIError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, gin.H{"token": token, "user": user})
}

func (uh *UserHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromAPIError(c, apierr.BadRequest("invalid_body", fmt.Errorf("invalid request body")))
		return
	}
	user, token, err := uh.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromAPIError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"token": token, "user": user})
}

func (uh *UserHandler) Profile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.FromAPIError(c, apierr.Unauthorized("missing_user", fmt.Errorf("not authenticated")))
		return
	}
	response.OK(c, http.StatusOK, gin.H{"user": user})
}

func (uh *UserHandler) Logout(c *gin.Context) {
	token := middleware.CurrentToken(c)
	if err := uh.authService.Logout(c.Request.Context(), token); err != nil {
		response.FromAPIError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"message": "logged out"})
}

func (uh *UserHandler) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	users, err := uh.userService.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		response.FromAPIError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"leaderboard": users})
}
