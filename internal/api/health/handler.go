package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Vault API - Membership Investment System",
		"status":  "running",
	})
}

// Check reports "healthy" when the database answers a ping.
func Check(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now().UTC().Format(time.RFC3339)

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "timestamp": now})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": now})
	}
}
