package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
	"github.com/stemsi/sekolah-console/internal/access"
	"github.com/stemsi/sekolah-console/internal/auth"
	"github.com/stemsi/sekolah-console/internal/config"
	"github.com/stemsi/sekolah-console/internal/handler"
	"github.com/stemsi/sekolah-console/internal/middleware"
	"github.com/stemsi/sekolah-console/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	Dashboard    *handler.DashboardHandler
	Users        *handler.UserHandler
	Students     *handler.UserHandler
	Teachers     *handler.UserHandler
	Notification *handler.NotificationHandler
	Banner       *handler.BannerHandler
	Class        *handler.ClassHandler
	Subject      *handler.SubjectHandler
	Session      *handler.SessionHandler
	Feed         *handler.FeedHandler
	Audit        *handler.AuditHandler
}

// byName resolves the handler names used in access.Routes.
func (h *Handlers) byName() map[string]gin.HandlerFunc {
	return map[string]gin.HandlerFunc{
		"auth.login_page":    h.Auth.LoginPage,
		"auth.login":         h.Auth.Login,
		"auth.register_page": h.Auth.RegisterPage,
		"auth.register":      h.Auth.Register,
		"auth.logout":        h.Auth.Logout,
		"auth.me":            h.Auth.Me,

		"dashboard.show": h.Dashboard.Show,

		"users.list":      h.Users.List,
		"users.create":    h.Users.Create,
		"users.update":    h.Users.Update,
		"users.delete":    h.Users.Delete,
		"students.list":   h.Students.List,
		"students.create": h.Students.Create,
		"students.update": h.Students.Update,
		"students.delete": h.Students.Delete,
		"teachers.list":   h.Teachers.List,
		"teachers.create": h.Teachers.Create,
		"teachers.update": h.Teachers.Update,
		"teachers.delete": h.Teachers.Delete,

		"notifications.list":   h.Notification.List,
		"notifications.create": h.Notification.Create,
		"notifications.update": h.Notification.Update,
		"notifications.delete": h.Notification.Delete,
		"notifications.feed":   h.Feed.Stream,
		"banners.list":         h.Banner.List,
		"banners.create":       h.Banner.Create,
		"banners.update":       h.Banner.Update,
		"banners.delete":       h.Banner.Delete,
		"banners.upload_image": h.Banner.UploadImage,

		"classes.regions":       h.Class.Regions,
		"classes.create_region": h.Class.CreateRegion,
		"classes.region":        h.Class.Region,
		"classes.update_region": h.Class.UpdateRegion,
		"classes.delete_region": h.Class.DeleteRegion,
		"classes.category":      h.Class.Category,
		"classes.create_class":  h.Class.CreateClass,
		"classes.class":         h.Class.Class,
		"classes.update_class":  h.Class.UpdateClass,
		"classes.delete_class":  h.Class.DeleteClass,

		"subjects.create": h.Subject.Create,
		"subjects.update": h.Subject.Update,
		"subjects.delete": h.Subject.Delete,

		"sessions.list":   h.Session.List,
		"sessions.create": h.Session.Create,
		"sessions.show":   h.Session.Show,
		"sessions.update": h.Session.Update,
		"sessions.delete": h.Session.Delete,

		"audit.list": h.Audit.List,
	}
}

// Deps are the shared pieces the middleware chain needs.
type Deps struct {
	Cookies      sessions.Store
	Manager      *auth.Manager
	LoginLimiter *middleware.RateLimiter
	// Audit is optional; nil disables the audit trail.
	Audit middleware.AuditRecorder
	Log   zerolog.Logger
}

// SetupRouter registers every route of access.Routes behind the guard its
// allow-list calls for. It panics when a route names an unknown handler.
func SetupRouter(handlers *Handlers, deps Deps, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(deps.Log))

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Location", "Retry-After"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(middleware.Compress(4, middleware.DefaultMinCompressLength))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	router.Use(middleware.NoStore())
	router.Use(middleware.Sessions(deps.Cookies, cfg.SessionCookie, deps.Manager, deps.Log))
	if deps.Audit != nil {
		router.Use(middleware.Audit(deps.Audit, deps.Log))
	}

	gate := middleware.NewGate(deps.Cookies, cfg.SessionCookie, deps.Log)
	named := handlers.byName()

	for _, route := range access.Routes {
		fn, ok := named[route.Handler]
		if !ok {
			panic(fmt.Sprintf("router: no handler named %q for %s %s", route.Handler, route.Method, route.Path))
		}

		var chain []gin.HandlerFunc
		if route.Handler == "auth.login" && deps.LoginLimiter != nil {
			chain = append(chain, deps.LoginLimiter.Middleware())
		}
		if !route.Public {
			chain = append(chain, gate.Guard(route))
		}
		chain = append(chain, fn)
		router.Handle(route.Method, route.Path, chain...)
	}

	// The root and every unknown path resolve to the role's landing route.
	router.GET("/", gate.Landing())
	router.NoRoute(gate.Landing())

	return router
}
