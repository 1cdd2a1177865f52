package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/wandile0157/smartdoc-ai-backend/docs"
)

// RouterOptions configures the HTTP router.
type RouterOptions struct {
	Logger      *slog.Logger
	ServiceName string
	CORSOrigins []string
	Production  bool
}

// NewRouter builds the gin engine with the full middleware chain and all
// routes mounted.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	if opts.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(Recovery(opts.Logger))
	r.Use(Tracing(opts.ServiceName))
	r.Use(RequestLogger(opts.Logger))
	r.Use(CORS(opts.CORSOrigins))

	r.GET("/", h.Root)
	r.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", h.Health)

		analyze := v1.Group("/analyze", OptionalAuth(h.verifier))
		{
			analyze.POST("/text", h.AnalyzeText)
			analyze.POST("/legal", h.AnalyzeLegal)
			analyze.POST("/feedback", h.AnalyzeFeedback)
			analyze.POST("/batch", h.AnalyzeBatch)
			analyze.POST("/compare", h.Compare)
		}

		user := v1.Group("", RequireAuth(h.verifier))
		{
			user.GET("/history", h.History)
			user.GET("/stats", h.Stats)
		}
	}

	return r
}
