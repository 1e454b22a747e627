package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/faizan/roster/apperr"
)

// Pinger checks storage reachability. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health reports 200 when the database answers within two seconds.
func Health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			fail(c, apperr.Internal(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
