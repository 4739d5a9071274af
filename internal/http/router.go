package httpx

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/you/classhub/internal/http/handlers"
	"github.com/you/classhub/internal/http/middleware"
	"github.com/you/classhub/internal/infrastructure/storage"
	"github.com/you/classhub/internal/realtime"
)

// maxMultipartMemory bounds how much of an upload gin buffers in memory
const maxMultipartMemory = 32 << 20

// Routes bundles what BuildRouter mounts
type Routes struct {
	Auth         *handlers.AuthHandlers
	Homework     *handlers.HomeworkHandlers
	Completion   *handlers.CompletionHandlers
	Notification *handlers.NotificationHandlers
	Realtime     *realtime.Handler

	JWT    *middleware.AuthMW
	Casbin *middleware.CasbinMW

	// ClientURL is the allowed cross-origin client, "*" for any
	ClientURL string
	// UploadDir is served under storage.PublicPrefix
	UploadDir string
}

func BuildRouter(rt Routes) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), corsMiddleware(rt.ClientURL))
	r.MaxMultipartMemory = maxMultipartMemory

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", rt.Auth.Register)
	auth.POST("/login", rt.Auth.Login)
	auth.POST("/request-otp", rt.Auth.RequestOTP)
	auth.POST("/verify-otp", rt.Auth.VerifyOTP)

	v := r.Group("/").Use(rt.JWT.WithJWT(), rt.Casbin.Enforce())
	v.GET("/auth/me", rt.Auth.Me)

	v.POST("/homework/create", rt.Homework.Create)
	v.GET("/homework/class/:classId", rt.Homework.ListByClass)
	v.GET("/homework/:id", rt.Homework.Get)
	v.PUT("/homework/:id", rt.Homework.Update)
	v.DELETE("/homework/:id", rt.Homework.Delete)

	v.POST("/completion/mark", rt.Completion.Mark)
	v.GET("/completion/stats/:homeworkId", rt.Completion.Stats)

	v.POST("/notification/send", rt.Notification.Send)
	v.GET("/notification/user/:userId", rt.Notification.List)
	v.PUT("/notification/mark-seen/:id", rt.Notification.MarkSeen)

	// The token on /ws is optional and checked by the realtime handler
	r.GET("/ws", rt.Realtime.Serve)

	if rt.UploadDir != "" {
		r.Static(storage.PublicPrefix, rt.UploadDir)
	}

	return r
}

func corsMiddleware(clientURL string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: clientURL != "" && clientURL != "*",
		MaxAge:           12 * time.Hour,
	}
	if cfg.AllowCredentials {
		cfg.AllowOrigins = []string{clientURL}
	} else {
		cfg.AllowAllOrigins = true
	}
	return cors.New(cfg)
}
