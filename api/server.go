package api

import (
	"ncstfeed/cache"
	"ncstfeed/rssfeeds"
	"ncstfeed/types"

	"github.com/gin-gonic/gin"
)

// Options configures the HTTP surface
type Options struct {
	Sources              []types.Source
	Channel              types.Channel
	JSONShape            string
	AllowedOrigins       []string
	PlaceholderOnFailure bool
}

// Server serves announcements out of the cache
type Server struct {
	cache      *cache.Cache
	normalizer *rssfeeds.Normalizer
	opts       Options
}

// NewServer creates a new API server instance
func NewServer(c *cache.Cache, n *rssfeeds.Normalizer, opts Options) *Server {
	if opts.JSONShape == "" {
		opts.JSONShape = ShapeWrapped
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	return &Server{cache: c, normalizer: n, opts: opts}
}

// NewRouter constructs a Gin engine with registered routes.
func (s *Server) NewRouter() *gin.Engine {
	r := gin.New()
	// CORS runs first so even panics and 404s carry the headers
	r.Use(CORS(s.opts.AllowedOrigins), RequestID(), RequestLogger(), gin.Recovery())

	// Register resource routers
	RegisterIndexRoutes(r)
	RegisterHealthRoutes(r)
	s.RegisterAnnouncementRoutes(r)
	s.RegisterSourceRoutes(r)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, errorBody{Error: "not found"})
	})
	return r
}
