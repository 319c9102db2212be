package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/noteweaver/noteweaver/internal/core"
	debuglog "github.com/noteweaver/noteweaver/internal/log"
	"github.com/noteweaver/noteweaver/internal/plugins/db"
	_ "github.com/noteweaver/noteweaver/internal/server/docs"
)

// Deps are the collaborators the handlers need.
type Deps struct {
	Store      db.Store
	Organizer  *core.Organizer
	Chatter    *core.Chatter
	Classifier *core.Classifier
	// MaxTokensPerCall is the organize budget per model call.
	MaxTokensPerCall int
	// Pinger, when set, is checked by /health.
	Pinger Pinger
}

// @title           noteweaver API
// @version         1.0
// @description     Notes with LLM folder organization and question answering.
// @BasePath        /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// NewEngine builds the gin engine with every route registered. A non-empty apiKey protects /api.
func NewEngine(deps *Deps, apiKey string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	NewHealthHandler(r, deps.Pinger)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	if apiKey != "" {
		api.Use(APIKeyMiddleware(apiKey))
	}
	NewNotesHandler(api, deps.Store, deps.Classifier)
	NewFoldersHandler(api, deps.Store, deps.Organizer, deps.MaxTokensPerCall)
	NewChatHandler(api, deps.Store, deps.Chatter)
	return r
}

// Serve runs the REST API on address until it fails.
func Serve(deps *Deps, address, apiKey string) error {
	gin.SetMode(gin.ReleaseMode)
	debuglog.Log("REST API listening on %s", address)
	return http.ListenAndServe(address, NewEngine(deps, apiKey))
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		debuglog.Debug(debuglog.Basic, "%s %s -> %d", c.Request.Method, c.Request.URL.Path, c.Writer.Status())
	}
}
