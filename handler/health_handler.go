package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"notesapp/utils"

	"github.com/gin-gonic/gin"
)

// Dependency is a backing service reported by /health. A failing Required
// dependency turns the response into a 503.
type Dependency struct {
	Name     string
	Required bool
	Ping     func(ctx context.Context) error
}

func RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": "hello from notes backend"})
}

func HealthHandler(c *gin.Context, deps []Dependency) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	overall := "ok"
	checks := gin.H{}
	for _, dep := range deps {
		if err := dep.Ping(ctx); err != nil {
			log.Printf("[health] %s unavailable: %v", dep.Name, err)
			checks[dep.Name] = "down"
			if dep.Required {
				status = http.StatusServiceUnavailable
				overall = "unavailable"
			} else if overall == "ok" {
				overall = "degraded"
			}
			continue
		}
		checks[dep.Name] = "up"
	}

	c.JSON(status, gin.H{
		"status":       overall,
		"dependencies": checks,
		"system":       utils.GetSystemStats(),
	})
}
