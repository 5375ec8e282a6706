package http

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/hexadmin/pkg/utils"
)

const secretBytes = 64

// RegisterSystemRoutes registra "/", "/health" y "/generate" fuera de /api/v1.
func RegisterSystemRoutes(r gin.IRouter, loc *time.Location) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().In(loc).Format("2006-01-02 15:04:05 -0700"),
		})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Genera un secreto aleatorio, útil para TOKEN_SECRET.
	r.GET("/generate", func(c *gin.Context) {
		buf := make([]byte, secretBytes)
		if _, err := rand.Read(buf); err != nil {
			utils.SendError(c, err)
			return
		}
		c.JSON(http.StatusOK, hex.EncodeToString(buf))
	})
}
