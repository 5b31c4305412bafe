package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shoyeb45/resume-analyzer/internal/analyses"
	googleauth "github.com/Shoyeb45/resume-analyzer/internal/auth"
	"github.com/Shoyeb45/resume-analyzer/internal/resumes"
	"github.com/Shoyeb45/resume-analyzer/internal/shared/config"
	"github.com/Shoyeb45/resume-analyzer/internal/shared/server/middleware"
	"github.com/Shoyeb45/resume-analyzer/internal/shared/server/respond"
	"github.com/Shoyeb45/resume-analyzer/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	ResumesHandler  *resumes.Handler
	AnalysesHandler *analyses.Handler
	UsersHandler    *users.Handler
	GoogleAuth      *googleauth.GoogleService
}

// llmRateGroup throttles endpoints that call the language model harder
// than plain CRUD.
const llmRateGroup = "LLM"

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT":    {Rate: 10, Burst: 20},
				llmRateGroup: {Rate: 0.5, Burst: 5},
			},
			GroupFor: rateGroupFor,
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}

	protected := api.Group("", middleware.Auth())
	if deps.ResumesHandler != nil {
		deps.ResumesHandler.RegisterRoutes(protected)
	}
	if deps.AnalysesHandler != nil {
		deps.AnalysesHandler.RegisterRoutes(protected)
	}
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(protected)
	}

	return r
}

func rateGroupFor(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return ""
	}
	path := c.Request.URL.Path
	switch {
	case strings.HasSuffix(path, "/resume/analyse"),
		strings.HasSuffix(path, "/resume/skill-assessment"),
		strings.HasSuffix(path, "/resume/skill-assessment-score"),
		strings.HasSuffix(path, "/resume/generate"):
		return llmRateGroup
	default:
		return ""
	}
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
