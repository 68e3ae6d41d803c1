package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "career-coach-backend/internal/auth"
	"career-coach-backend/internal/coverletters"
	"career-coach-backend/internal/insights"
	"career-coach-backend/internal/interviews"
	"career-coach-backend/internal/services/health"
	"career-coach-backend/internal/shared/config"
	"career-coach-backend/internal/shared/metrics"
	"career-coach-backend/internal/shared/server/middleware"
	"career-coach-backend/internal/shared/server/respond"
	"career-coach-backend/internal/users"
)

const apiPrefix = "/api/v1"

// RouterDeps carries the handlers mounted by NewRouter. Nil handlers are skipped.
type RouterDeps struct {
	Config             config.Config
	UserHandler        *users.Handler
	CoverLetterHandler *coverletters.Handler
	InsightHandler     *insights.Handler
	InterviewHandler   *interviews.Handler
	GoogleAuth         *googleauth.GoogleService
	Health             *health.Service
	RateLimiter        *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(apiPrefix+"/auth/", apiPrefix+"/health", "/metrics"),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group(apiPrefix)
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.OK(c, gin.H{"ok": true})
			return
		}
		status := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !status.OK {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})

	limit := generationLimit(deps)

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.CoverLetterHandler != nil {
		deps.CoverLetterHandler.RegisterRoutes(api, limit)
	}
	if deps.InsightHandler != nil {
		deps.InsightHandler.RegisterRoutes(api, limit)
	}
	if deps.InterviewHandler != nil {
		deps.InterviewHandler.RegisterRoutes(api, limit)
	}

	return r
}

// generationLimit throttles routes that may call the generation provider.
// A non-positive rate disables the limit.
func generationLimit(deps RouterDeps) gin.HandlerFunc {
	rules := map[string]middleware.RateLimitRule{}
	if deps.Config.RateLimitRPS > 0 {
		burst := deps.Config.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		rules[middleware.GenerationGroup] = middleware.RateLimitRule{
			Rate:  deps.Config.RateLimitRPS,
			Burst: burst,
		}
	}
	return middleware.RateLimit(middleware.RateLimitConfig{
		Rules:        rules,
		DefaultGroup: middleware.GenerationGroup,
		Limiter:      deps.RateLimiter,
	})
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
