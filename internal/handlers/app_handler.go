package handlers

import (
	"context"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhall/internal/models"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

func Root() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "Backend API is running!")
	}
}

func Health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(c.Request.Context()); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "UNAVAILABLE",
				"service": "eventhall-api",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"service": "eventhall-api",
		})
	}
}

// SPA serves files from staticDir and falls back to its index.html for client-side routes.
func SPA(staticDir string) gin.HandlerFunc {
	index := filepath.Join(staticDir, "index.html")
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, models.Message("Not found"))
			return
		}

		rel := path.Clean("/" + c.Request.URL.Path)
		candidate := filepath.Join(staticDir, filepath.FromSlash(rel))
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			c.File(candidate)
			return
		}

		if _, err := os.Stat(index); err != nil {
			c.JSON(http.StatusNotFound, models.Message("Not found"))
			return
		}
		c.File(index)
	}
}
