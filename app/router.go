package app

import (
	"comply/media-api/app/presentation"
	"comply/media-api/app/root"
	"comply/media-api/app/user"
	"comply/media-api/app/video"
	"comply/media-api/internal"
	"comply/media-api/internal/model"
	"comply/media-api/pkg/middleware"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Room for the metadata fields next to the file in a multipart body
const formOverhead = 1 << 20

func NewRouter(d *internal.Deps) *gin.Engine {
	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     d.Config.Host.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS", "HEAD"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "TurnstileToken", "Range"},
			ExposeHeaders:    []string{"Content-Length", "Content-Range", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		ginzap.RecoveryWithZap(zap.L(), true),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 5 << 20

	jwt := middleware.Authenticate(d.Tokens, d.Revocations)
	admin := middleware.RequireRole(model.RoleAdmin)
	turnstile := middleware.NewTurnstileMiddleware(d.Config.Cloudflare.Turnstile)
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: d.Config.Security.RateLimit,
		Burst:             d.Config.Security.RateLimit * 2,
	})

	videoLimit := middleware.BodySizeLimiter(d.Config.Upload.Video.MaxSize + formOverhead)
	pptLimit := middleware.BodySizeLimiter(d.Config.Upload.Presentation.MaxSize + formOverhead)

	m := router.Group("/api", rateLimiter)
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)

		// GET /api/validate		-> Validates a JWT token
		m.GET("/validate", jwt, root.Validate)
	}

	a := m.Group("/auth", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/auth/register	-> Registers a new user and logs them in
		a.POST("/register", turnstile, func(c *gin.Context) { user.UserRegister(c, d) })

		// POST /api/auth/login		-> Logs in a user and returns a JWT token
		a.POST("/login", turnstile, func(c *gin.Context) { user.UserLogin(c, d) })

		// GET /api/auth/profile	-> Returns the public profile of the logged in user
		a.GET("/profile", jwt, func(c *gin.Context) { user.UserFetch(c, d) })

		// POST /api/auth/logout	-> Revokes the current token
		a.POST("/logout", jwt, func(c *gin.Context) { user.UserLogout(c, d) })
	}

	v := m.Group("/videos", jwt)
	{
		// POST /api/videos/upload	-> Uploads a video and stores its metadata
		v.POST("/upload", admin, videoLimit, func(c *gin.Context) { video.VideoUpload(c, d) })

		// GET /api/videos		-> Lists videos, filtered by ?moduleId= or ?type=
		v.GET("", func(c *gin.Context) { video.VideoFetchAll(c, d) })

		// GET /api/videos/:id		-> Returns a single video
		v.GET("/:id", func(c *gin.Context) { video.VideoFetch(c, d) })

		// GET /api/videos/:id/stream	-> Streams the video file
		v.GET("/:id/stream", func(c *gin.Context) { video.VideoStream(c, d) })

		// PATCH /api/videos/:id	-> Updates a video, optionally replacing the file
		v.PATCH("/:id", admin, videoLimit, func(c *gin.Context) { video.VideoEdit(c, d) })

		// DELETE /api/videos/:id	-> Deletes a video record
		v.DELETE("/:id", admin, func(c *gin.Context) { video.VideoDelete(c, d) })
	}

	p := m.Group("/ppts", jwt)
	{
		// POST /api/ppts/upload	-> Uploads a presentation and stores its metadata
		p.POST("/upload", admin, pptLimit, func(c *gin.Context) { presentation.PresentationUpload(c, d) })

		// GET /api/ppts		-> Lists presentations, filtered by ?moduleId=
		p.GET("", func(c *gin.Context) { presentation.PresentationFetchAll(c, d) })

		// GET /api/ppts/:id		-> Returns a single presentation
		p.GET("/:id", func(c *gin.Context) { presentation.PresentationFetch(c, d) })

		// GET /api/ppts/:id/download	-> Downloads the presentation file
		p.GET("/:id/download", func(c *gin.Context) { presentation.PresentationDownload(c, d) })

		// PATCH /api/ppts/:id		-> Updates a presentation, optionally replacing the file
		p.PATCH("/:id", admin, pptLimit, func(c *gin.Context) { presentation.PresentationEdit(c, d) })

		// DELETE /api/ppts/:id		-> Deletes a presentation record
		p.DELETE("/:id", admin, func(c *gin.Context) { presentation.PresentationDelete(c, d) })
	}

	return router
}
