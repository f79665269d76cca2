package middleware

import (
	"bytes"
	"comply/media-api/config"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var turnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

type turnstileResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// NewTurnstileMiddleware checks the TurnstileToken header against Cloudflare
// when turnstile is enabled
func NewTurnstileMiddleware(cfg config.TurnstileConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	client := &http.Client{Timeout: 10 * time.Second}

	return func(c *gin.Context) {
		token := c.Request.Header.Get("TurnstileToken")
		if token == "" {
			abort(c, http.StatusBadRequest, "Missing or invalid turnstile token")
			return
		}

		payload, _ := json.Marshal(gin.H{
			"secret":   cfg.SecretToken,
			"response": token,
			"remoteip": c.ClientIP(),
		})

		req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, turnstileVerifyURL, bytes.NewReader(payload))
		if err != nil {
			abort(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			abort(c, http.StatusUnauthorized, "Unauthorized")

			zap.L().Error("Failed to reach turnstile", zap.Error(err), zap.String("requestID", c.GetString("requestID")))
			return
		}
		defer resp.Body.Close()

		var res turnstileResponse
		if err := json.NewDecoder(resp.Body).Decode(&res); err != nil || !res.Success {
			abort(c, http.StatusUnauthorized, "Unauthorized")

			zap.L().Debug("Turnstile rejected request", zap.Strings("errorCodes", res.ErrorCodes))
			return
		}

		c.Next()
	}
}
