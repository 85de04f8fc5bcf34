package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spycce/SmartTrip/models"
)

type IdentityService interface {
	Register(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Profile(ctx context.Context, userID string) (*models.Profile, error)
}

type UserController struct {
	identity IdentityService
}

func NewUserController(identity IdentityService) *UserController {
	return &UserController{identity: identity}
}

func (ctl *UserController) Signup() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		var req models.SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body: "+err.Error())
			return
		}
		if err := validate.Struct(req); err != nil {
			badRequest(c, "Validation error: "+err.Error())
			return
		}

		res, err := ctl.identity.Register(ctx, req)
		if err != nil {
			respondError(c, err, "Error registering user")
			return
		}
		c.JSON(http.StatusCreated, res)
	}
}

func (ctl *UserController) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body: "+err.Error())
			return
		}
		if err := validate.Struct(req); err != nil {
			badRequest(c, "Validation error: "+err.Error())
			return
		}

		res, err := ctl.identity.Login(ctx, req)
		if err != nil {
			respondError(c, err, "Login failed")
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// Me returns the caller's public profile.
func (ctl *UserController) Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		profile, err := ctl.identity.Profile(ctx, userID(c))
		if err != nil {
			respondError(c, err, "Error fetching user")
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}
