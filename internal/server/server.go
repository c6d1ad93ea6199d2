// Package server exposes the six assessment and lesson operations over HTTP,
// the counterpart of internal/api's client. It lets one machine run the
// model-backed service while others run the terminal app against it.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/slggamerTrue/languageLearning/internal/assessment"
	"github.com/slggamerTrue/languageLearning/internal/tutor"
)

// Server wires the transport behind a gin engine.
type Server struct {
	engine    *gin.Engine
	transport assessment.Transport
	logger    *zap.Logger
}

// New builds the server. The transport is usually an assessment.Service.
func New(cfg Config, transport assessment.Transport, logger *zap.Logger) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		engine:    gin.New(),
		transport: transport,
		logger:    logger,
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(s.requestLogger())
	s.engine.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	s.routes()
	return s
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func (s *Server) routes() {
	s.engine.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ass := s.engine.Group("/api/assessment")
	{
		ass.POST("/initial-chat", s.initialChat)
		ass.POST("/analyze-profile", s.analyzeProfile)
		ass.POST("/generate-total-plan", s.generateTotalPlan)
		ass.POST("/generate-weekly-plan", s.generateWeeklyPlan)
	}

	lesson := s.engine.Group("/api/lesson")
	{
		lesson.POST("/create", s.createLesson)
		lesson.POST("/chat", s.lessonChat)
	}
}

func (s *Server) initialChat(c *gin.Context) {
	var messages []tutor.Message
	if err := c.ShouldBindJSON(&messages); err != nil {
		badRequest(c, err)
		return
	}

	msg, err := s.transport.InitialChat(c.Request.Context(), messages)
	if err != nil {
		s.fail(c, "initial-chat", err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (s *Server) analyzeProfile(c *gin.Context) {
	var messages []tutor.Message
	if err := c.ShouldBindJSON(&messages); err != nil {
		badRequest(c, err)
		return
	}

	profile, err := s.transport.AnalyzeProfile(c.Request.Context(), messages)
	if err != nil {
		s.fail(c, "analyze-profile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) generateTotalPlan(c *gin.Context) {
	var profile tutor.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		badRequest(c, err)
		return
	}

	plan, err := s.transport.GenerateTotalPlan(c.Request.Context(), profile)
	if err != nil {
		s.fail(c, "generate-total-plan", err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (s *Server) generateWeeklyPlan(c *gin.Context) {
	var req struct {
		tutor.UserProfile
		SelectedDay int `json:"selected_day"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	days, err := s.transport.GenerateWeeklyPlan(c.Request.Context(), req.UserProfile, req.SelectedDay)
	if err != nil {
		s.fail(c, "generate-weekly-plan", err)
		return
	}
	c.JSON(http.StatusOK, days)
}

func (s *Server) createLesson(c *gin.Context) {
	var req assessment.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := s.transport.CreateLesson(c.Request.Context(), req)
	if err != nil {
		s.fail(c, "lesson-create", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"lesson":               res.Lesson,
		"conversation_history": res.History,
	})
}

func (s *Server) lessonChat(c *gin.Context) {
	var req struct {
		Lesson    json.RawMessage `json:"lesson"`
		History   []tutor.Message `json:"conversation_history"`
		UserInput string          `json:"user_input"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	lesson, err := tutor.UnmarshalLesson(req.Lesson)
	if err != nil {
		badRequest(c, err)
		return
	}

	history, err := s.transport.LessonChat(c.Request.Context(), assessment.LessonChatRequest{
		Lesson:    lesson,
		History:   req.History,
		UserInput: req.UserInput,
	})
	if err != nil {
		s.fail(c, "lesson-chat", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation_history": history})
}

// requestLogger logs one line per request with latency and status.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
}

// fail reports a transport failure the way the original backend did: a 500
// with the error text in "detail".
func (s *Server) fail(c *gin.Context, op string, err error) {
	s.logger.Warn(op+" failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
}
