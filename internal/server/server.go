// Package server exposes the planner and its collaborators over HTTP.
// Handlers are thin: they validate the request, call into the domain
// packages and persist the result. Scheduling itself never touches a store.
package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/studyloop/studyloop/internal/config"
	"github.com/studyloop/studyloop/internal/extraction"
	"github.com/studyloop/studyloop/internal/planner"
	"github.com/studyloop/studyloop/internal/quiz"
	"github.com/studyloop/studyloop/internal/store"
)

// Server holds the handler dependencies.
type Server struct {
	planner   *planner.Planner
	plans     store.PlanStore
	topics    store.TopicStore
	extractor extraction.Extractor
	quizzes   *quiz.Generator
	defaults  config.PlannerConfig
	logger    *zap.SugaredLogger
	now       func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithClock overrides the server's clock. Tests use this for determinism.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithLogger sets the request and application logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a Server around its collaborators.
func New(
	p *planner.Planner,
	plans store.PlanStore,
	topics store.TopicStore,
	extractor extraction.Extractor,
	quizzes *quiz.Generator,
	defaults config.PlannerConfig,
	opts ...Option,
) *Server {
	s := &Server{
		planner:   p,
		plans:     plans,
		topics:    topics,
		extractor: extractor,
		quizzes:   quizzes,
		defaults:  defaults,
		logger:    zap.NewNop().Sugar(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the gin engine with all routes and middleware.
func (s *Server) Router(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(s.logger))
	r.Use(CORS(allowedOrigins))

	r.GET("/healthz", s.health)

	api := r.Group("/api")
	{
		api.POST("/plans/generate", s.generatePlan)
		api.GET("/plans/:userID", s.getPlan)
		api.POST("/documents/extract", s.extractTopics)
		api.POST("/progress", s.markProgress)
		api.GET("/dashboard/:userID", s.dashboard)
		api.POST("/quizzes/generate", s.generateQuiz)
	}
	return r
}

func (s *Server) today() planner.Date {
	return planner.NewDate(s.now())
}
