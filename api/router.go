// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"hoaxify/hoax-api/db"
	"hoaxify/hoax-api/middleware"
	"hoaxify/hoax-api/security"
	"hoaxify/hoax-api/service"
	"hoaxify/hoax-api/storage"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

type API struct {
	DB      *gorm.DB
	Router  *gin.Engine
	Argon   *security.ArgonHash
	Files   storage.FileStore
	Mailer  service.Mailer
	Cleanup *cron.Cron
}

func NewRouter() (*API, error) {
	a := &API{
		Argon:  security.New(),
		Mailer: service.SMTPMailer{},
	}

	d, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = d

	makeLogger()

	if viper.GetString("storage.type") == "s3" {
		a.Files, err = storage.NewS3Store()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 store, %w", err)
		}
	} else {
		a.Files, err = storage.NewLocalStore(
			viper.GetString("upload.dir"),
			viper.GetString("upload.profile_dir"),
			viper.GetString("upload.attachment_dir"),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local store, %w", err)
		}
	}

	a.Cleanup = service.NewCleanupScheduler(a.DB, a.Files)
	a.Cleanup.Start()

	a.Mount()

	return a, nil
}

// Mount builds the gin engine and wires every route. Split from NewRouter so
// tests can assemble an API with their own collaborators first
func (a *API) Mount() {
	router := gin.New()
	a.Router = router

	store := persist.NewMemoryStore(time.Minute)

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
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

				if v, ok := c.Get("userID"); ok {
					fields = append(fields, zap.Uint("user_id", v.(uint)))
				}

				return fields
			},
		}),
		middleware.NewTokenMiddleware(a.DB),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 5 << 20

	var limited gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if viper.GetBool("app.rate_limit.enabled") {
		limited = middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
			RequestsPerSecond: viper.GetInt("app.rate_limit.rps"),
			Burst:             viper.GetInt("app.rate_limit.burst"),
		})
	}

	maxAttachmentSize := viper.GetInt64("upload.max_attachment_size")
	if maxAttachmentSize == 0 {
		maxAttachmentSize = 5 << 20
	}

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)
	}

	v1 := router.Group("/api/1.0")

	users := v1.Group("/users", middleware.BodySizeLimiter(10<<20))
	{
		// POST /api/1.0/users			-> Registers a new user
		users.POST("", limited, a.UserRegister)

		// POST /api/1.0/users/token/:token	-> Activates a registered account
		users.POST("/token/:token", a.UserActivate)

		// GET /api/1.0/users			-> Paginated listing of active users
		users.GET("", a.UserList)

		// GET /api/1.0/users/:id		-> Returns a single active user
		users.GET("/:id", cache.CacheByRequestURI(store, 30*time.Second), a.UserFetch)

		// PUT /api/1.0/users/:id		-> Owner-only profile update
		users.PUT("/:id", a.UserUpdate)

		// DELETE /api/1.0/users/:id		-> Owner-only account deletion
		users.DELETE("/:id", a.UserDelete)

		// GET /api/1.0/users/:id/hoaxes	-> Paginated hoaxes of one user
		users.GET("/:id/hoaxes", a.HoaxList)
	}

	{
		// POST /api/1.0/auth			-> Logs in a user and returns a bearer token
		v1.POST("/auth", limited, a.AuthLogin)

		// POST /api/1.0/logout			-> Deletes the presented bearer token
		v1.POST("/logout", a.AuthLogout)

		// POST /api/1.0/user/password		-> Requests a password reset mail
		v1.POST("/user/password", limited, a.PasswordResetRequest)

		// PUT /api/1.0/user/password		-> Completes a password reset
		v1.PUT("/user/password", a.PasswordUpdate)
	}

	hoaxes := v1.Group("/hoaxes")
	{
		// POST /api/1.0/hoaxes			-> Authenticated hoax creation
		hoaxes.POST("", a.HoaxCreate)

		// GET /api/1.0/hoaxes			-> Paginated hoax listing, newest first
		hoaxes.GET("", a.HoaxList)

		// DELETE /api/1.0/hoaxes/:hoaxId	-> Owner-only hoax deletion
		hoaxes.DELETE("/:hoaxId", a.HoaxDelete)

		// POST /api/1.0/hoaxes/attachments	-> Multipart attachment upload
		hoaxes.POST("/attachments", middleware.BodySizeLimiter(maxAttachmentSize+1<<20), a.AttachmentUpload)
	}

	{
		// GET /images/:filename		-> Serves stored profile images
		router.GET("/images/:filename", a.ServeProfileImage)

		// GET /attachments/:filename		-> Serves stored hoax attachments
		router.GET("/attachments/:filename", a.ServeAttachment)
	}
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
