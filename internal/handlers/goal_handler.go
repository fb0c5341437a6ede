package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"skillsync/internal/models"
	"skillsync/internal/service"

	"github.com/gin-gonic/gin"
)

type GoalHandler struct {
	Plans *service.PlanService
	Tasks *service.TaskService
}

func NewGoalHandler(plans *service.PlanService, tasks *service.TaskService) *GoalHandler {
	return &GoalHandler{Plans: plans, Tasks: tasks}
}

func userID(c *gin.Context) string {
	return c.GetHeader("X-User-ID")
}

// respondError maps the service failure taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoPlan), errors.Is(err, service.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, service.ErrTaskCompleted),
		errors.Is(err, service.ErrQuizNotStarted),
		errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	}
}

// GetTemplates lists the goal archetype catalog.
func (h *GoalHandler) GetTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "templates": models.TemplateSummaries()})
}

// StartGoal wipes any prior plan and generates a fresh one.
func (h *GoalHandler) StartGoal(c *gin.Context) {
	var in service.StartGoalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request format", "details": err.Error()})
		return
	}

	result, err := h.Plans.StartGoal(context.Background(), userID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":           true,
		"plan":              result.Plan,
		"auto_added_skills": result.AutoAddedSkills,
	})
}

// GetMyPlan returns the reconciled plan with today's tasks and unread
// notifications. A missing plan is not an error; the client redirects to
// goal setup.
func (h *GoalHandler) GetMyPlan(c *gin.Context) {
	view, err := h.Plans.GetMyPlan(context.Background(), userID(c), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	if view == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "plan": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"plan":                 view.Plan,
		"today_tasks":          view.TodayTasks,
		"unread_notifications": view.UnreadNotifications,
	})
}

func (h *GoalHandler) GetProgress(c *gin.Context) {
	report, err := h.Plans.GetProgress(context.Background(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if report == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "progress": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "progress": report})
}

func (h *GoalHandler) GetDisciplineStatus(c *gin.Context) {
	status, err := h.Plans.GetDisciplineStatus(context.Background(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if status == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "discipline": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "discipline": status})
}

// CompleteTask is the direct completion path; score defaults to 80 when the
// body omits it.
func (h *GoalHandler) CompleteTask(c *gin.Context) {
	var body struct {
		Score *int   `json:"score"`
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request format", "details": err.Error()})
		return
	}

	result, err := h.Tasks.CompleteTask(context.Background(), userID(c), c.Param("taskId"), body.Score, body.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "task": result.Task, "plan": result.Plan})
}

// StartTaskQuiz returns the quiz questions with the answer key stripped.
func (h *GoalHandler) StartTaskQuiz(c *gin.Context) {
	result, err := h.Tasks.StartTaskQuiz(context.Background(), userID(c), c.Param("taskId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if result.AlreadyCompleted {
		c.JSON(http.StatusOK, gin.H{"success": true, "already_completed": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"questions": result.Questions,
		"attempts":  result.Attempts,
	})
}

func (h *GoalHandler) SubmitTaskQuiz(c *gin.Context) {
	var body struct {
		Answers []int `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request format", "details": err.Error()})
		return
	}

	result, err := h.Tasks.SubmitTaskQuiz(context.Background(), userID(c), c.Param("taskId"), body.Answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"passed":  result.Passed,
		"score":   result.Score,
		"results": result.Results,
		"streak":  result.Streak,
	})
}

func (h *GoalHandler) MarkNotificationsRead(c *gin.Context) {
	if err := h.Plans.MarkNotificationsRead(context.Background(), userID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *GoalHandler) ResetGoal(c *gin.Context) {
	if err := h.Plans.ResetGoal(context.Background(), userID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Goal plan reset successfully"})
}
