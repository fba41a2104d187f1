package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyloop/studyloop/internal/gamification"
	"github.com/studyloop/studyloop/internal/planner"
	"github.com/studyloop/studyloop/internal/progress"
	"github.com/studyloop/studyloop/internal/statistics"
	"github.com/studyloop/studyloop/internal/store"
)

type topicRequest struct {
	Name            string  `json:"name" binding:"required"`
	DifficultyScore int     `json:"difficulty_score" binding:"omitempty,min=1,max=10"`
	Priority        string  `json:"priority" binding:"omitempty,oneof=high medium low"`
	EstimatedHours  float64 `json:"estimated_hours" binding:"omitempty,gt=0"`
	Category        string  `json:"category"`
}

func (r topicRequest) toTopic() planner.Topic {
	return planner.Topic{
		Name:            r.Name,
		DifficultyScore: r.DifficultyScore,
		Priority:        planner.Priority(r.Priority),
		EstimatedHours:  r.EstimatedHours,
		Category:        r.Category,
	}
}

type generatePlanRequest struct {
	UserID      string         `json:"user_id" binding:"required"`
	Topics      []topicRequest `json:"topics" binding:"omitempty,dive"`
	HorizonDays int            `json:"horizon_days" binding:"omitempty,min=1,max=120"`
	HoursPerDay float64        `json:"hours_per_day" binding:"omitempty,gt=0"`
	Deadline    string         `json:"deadline"`
}

func (s *Server) generatePlan(c *gin.Context) {
	var req generatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	horizonDays := req.HorizonDays
	if horizonDays == 0 {
		horizonDays = s.defaults.DefaultHorizonDays
	}
	hoursPerDay := req.HoursPerDay
	if hoursPerDay == 0 {
		hoursPerDay = s.defaults.DefaultHoursPerDay
	}

	topics := make([]planner.Topic, 0, len(req.Topics))
	for _, t := range req.Topics {
		topics = append(topics, t.toTopic())
	}
	if len(topics) == 0 {
		// Fall back to the user's last extracted topic set.
		if stored, err := s.topics.Get(c.Request.Context(), req.UserID); err == nil {
			topics = stored
		}
	}

	plan, err := s.planner.GenerateSchedule(topics, horizonDays, hoursPerDay, req.Deadline)
	if err != nil {
		if errors.Is(err, planner.ErrInvalidHorizon) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.logger.Errorw("plan generation failed", "user_id", req.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "plan generation failed"})
		return
	}

	if err := s.plans.Put(c.Request.Context(), req.UserID, *plan); err != nil {
		s.logger.Errorw("plan persistence failed", "user_id", req.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "plan could not be saved"})
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (s *Server) getPlan(c *gin.Context) {
	userID := c.Param("userID")

	plan, err := s.plans.Get(c.Request.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no plan for user %s", userID)})
		return
	}
	if err != nil {
		s.logger.Errorw("plan lookup failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "plan lookup failed"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

type extractRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

func (s *Server) extractTopics(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	topics, err := s.extractor.Extract(c.Request.Context(), req.Text)
	if err != nil {
		s.logger.Errorw("topic extraction failed", "user_id", req.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "topic extraction failed"})
		return
	}

	if err := s.topics.Put(c.Request.Context(), req.UserID, topics); err != nil {
		s.logger.Warnw("topic persistence failed", "user_id", req.UserID, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

type progressRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Date   string `json:"date" binding:"required"`
	Topic  string `json:"topic" binding:"required"`
	Status string `json:"status" binding:"required,oneof=completed pending"`
}

func (s *Server) markProgress(c *gin.Context) {
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := planner.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid date: %s", req.Date)})
		return
	}

	plan, err := s.plans.Get(c.Request.Context(), req.UserID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no plan for user %s", req.UserID)})
		return
	}
	if err != nil {
		s.logger.Errorw("plan lookup failed", "user_id", req.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "plan lookup failed"})
		return
	}

	completed := req.Status == "completed"
	if err := progress.MarkSession(&plan, date, req.Topic, completed); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no session for %s on %s", req.Topic, date)})
		return
	}

	if err := s.plans.Put(c.Request.Context(), req.UserID, plan); err != nil {
		s.logger.Errorw("plan persistence failed", "user_id", req.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "plan could not be saved"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plan":         plan,
		"gamification": gamification.Summarize(plan, s.today()),
	})
}

func (s *Server) dashboard(c *gin.Context) {
	userID := c.Param("userID")

	plan, err := s.plans.Get(c.Request.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no plan for user %s", userID)})
		return
	}
	if err != nil {
		s.logger.Errorw("plan lookup failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "plan lookup failed"})
		return
	}

	c.JSON(http.StatusOK, statistics.BuildDashboard(plan, s.today()))
}

type quizRequest struct {
	Topics       []topicRequest `json:"topics" binding:"required,min=1,dive"`
	NumQuestions int            `json:"num_questions" binding:"omitempty,min=1,max=50"`
}

func (s *Server) generateQuiz(c *gin.Context) {
	var req quizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	topics := make([]planner.Topic, 0, len(req.Topics))
	for _, t := range req.Topics {
		topics = append(topics, t.toTopic())
	}

	c.JSON(http.StatusOK, s.quizzes.Generate(c.Request.Context(), topics, req.NumQuestions))
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
