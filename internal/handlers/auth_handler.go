package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhall/internal/middleware"
	"github.com/joshua-takyi/eventhall/internal/models"
	"github.com/joshua-takyi/eventhall/internal/services"
)

// Logout ends only the caller's own session and always succeeds.
func Logout(s *services.SessionService, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := middleware.CurrentSession(c); ok {
			if err := s.End(c.Request.Context(), claims); err != nil {
				_ = c.Error(err)
			}
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.AccessTokenName, "", -1, "/", "", secureCookie, true)

		c.JSON(http.StatusOK, models.Message("Logged out successfully!"))
	}
}

// IsLoggedIn reports whether the caller holds a live session.
func IsLoggedIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		if middleware.SessionError(c) != nil {
			c.JSON(http.StatusInternalServerError, models.Message("Error checking session."))
			return
		}
		_, ok := middleware.CurrentSession(c)
		c.JSON(http.StatusOK, models.SessionStatus{LoggedIn: ok})
	}
}
