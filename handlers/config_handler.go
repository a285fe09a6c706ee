package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ClientConfig is the server-chosen polling schedule handed to browser
// clients, so interval tuning does not require a frontend redeploy.
type ClientConfig struct {
	RoomPollInterval   time.Duration
	WinnerPollInterval time.Duration
	RevealTimeout      time.Duration
}

type ConfigHandler struct {
	cfg ClientConfig
}

func NewConfigHandler(cfg ClientConfig) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

func (h *ConfigHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"room_poll_interval_ms":   h.cfg.RoomPollInterval.Milliseconds(),
		"winner_poll_interval_ms": h.cfg.WinnerPollInterval.Milliseconds(),
		"reveal_timeout_ms":       h.cfg.RevealTimeout.Milliseconds(),
	})
}
