package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhall/internal/middleware"
	"github.com/joshua-takyi/eventhall/internal/models"
	"github.com/joshua-takyi/eventhall/internal/services"
)

func Signup(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SignupRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Invalid signup details.",
				"errors":  models.BindDetails(err),
			})
			return
		}

		_, err := u.Signup(c.Request.Context(), &req)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, models.Message("Signup successful!"))
		case errors.Is(err, models.ErrDuplicateEmail):
			c.JSON(http.StatusBadRequest, models.Message("Email already exists!"))
		case errors.Is(err, models.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Invalid signup details.",
				"errors":  models.ValidationDetails(err),
			})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, models.Message("Error in signup."))
		}
	}
}

func Login(u *services.UserService, s *services.SessionService, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.Message("Invalid email or password"))
			return
		}

		user, err := u.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, models.ErrInvalidCredentials) {
				c.JSON(http.StatusBadRequest, models.Message("Invalid email or password"))
				return
			}
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, models.Message("Error in login."))
			return
		}

		token, _, err := s.Start(user)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, models.Message("Error in login."))
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(
			middleware.AccessTokenName,
			token,
			s.TTLSeconds(),
			"/",
			"", // let Gin pick current domain
			secureCookie,
			true,
		)

		c.JSON(http.StatusOK, models.LoginResponse{
			Message: "Login successful!",
			Success: true,
			Token:   token,
		})
	}
}
