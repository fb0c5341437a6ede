package models

import (
	"math"
	"time"
)

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelProfessional Level = "professional"
)

// Levels in ascending order; level windows of a plan follow this order.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelProfessional}

type TaskType string

const (
	TaskConcept    TaskType = "concept"
	TaskPractice   TaskType = "practice"
	TaskProject    TaskType = "project"
	TaskAssessment TaskType = "assessment"
	TaskRevision   TaskType = "revision"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusMissed     TaskStatus = "missed"
	StatusRevision   TaskStatus = "revision"
	StatusFailed     TaskStatus = "failed"
)

type PenaltyTier string

const (
	TierNormal   PenaltyTier = "normal"
	TierWarning  PenaltyTier = "warning"
	TierFreeze   PenaltyTier = "freeze"
	TierCritical PenaltyTier = "critical"
)

// BaseDifficulty is the per-level starting difficulty for generated tasks.
var BaseDifficulty = map[Level]int{
	LevelBeginner:     2,
	LevelIntermediate: 4,
	LevelAdvanced:     6,
	LevelProfessional: 8,
}

// TaskMinutes is the fixed estimated duration per task type.
var TaskMinutes = map[TaskType]int{
	TaskConcept:    60,
	TaskPractice:   45,
	TaskProject:    90,
	TaskAssessment: 30,
	TaskRevision:   40,
}

// TypeWeights feed the skill-improvement score on completion.
var TypeWeights = map[TaskType]float64{
	TaskConcept:    1,
	TaskPractice:   2,
	TaskProject:    3,
	TaskAssessment: 3,
	TaskRevision:   1.5,
}

type QuizQuestion struct {
	Question     string   `bson:"question" json:"question"`
	Options      []string `bson:"options" json:"options"`
	CorrectIndex int      `bson:"correct_index" json:"correct_index"`
	Explanation  string   `bson:"explanation" json:"explanation"`
}

// TaskQuiz is created lazily on the first quiz-start call; the question set
// is immutable afterwards, only attempts and last score mutate.
type TaskQuiz struct {
	Questions   []QuizQuestion `bson:"questions" json:"questions"`
	Attempts    int            `bson:"attempts" json:"attempts"`
	LastScore   int            `bson:"last_score" json:"last_score"`
	GeneratedAt time.Time      `bson:"generated_at" json:"generated_at"`
}

type Task struct {
	ID               string     `bson:"id" json:"id"`
	Day              int        `bson:"day" json:"day"`
	Level            Level      `bson:"level" json:"level"`
	Type             TaskType   `bson:"type" json:"type"`
	Title            string     `bson:"title" json:"title"`
	Description      string     `bson:"description" json:"description"`
	Skills           []string   `bson:"skills" json:"skills"`
	EstimatedMinutes int        `bson:"estimated_minutes" json:"estimated_minutes"`
	Difficulty       int        `bson:"difficulty" json:"difficulty"`
	IsCompulsory     bool       `bson:"is_compulsory" json:"is_compulsory"`
	Status           TaskStatus `bson:"status" json:"status"`
	CompletedAt      *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	Score            int        `bson:"score" json:"score"`
	Notes            string     `bson:"notes" json:"notes"`
	Quiz             *TaskQuiz  `bson:"quiz,omitempty" json:"quiz,omitempty"`
}

type Notification struct {
	Type      string    `bson:"type" json:"type"` // reminder | missed | milestone | streak
	Message   string    `bson:"message" json:"message"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	Read      bool      `bson:"read" json:"read"`
}

type LevelWindow struct {
	StartDay int `bson:"start_day" json:"start_day"`
	EndDay   int `bson:"end_day" json:"end_day"`
}

// GoalPlan is the per-student plan aggregate. One active plan per user;
// starting a new goal replaces the prior plan entirely.
type GoalPlan struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	GoalTitle    string    `bson:"goal_title" json:"goal_title"`
	GoalCategory string    `bson:"goal_category" json:"goal_category"`
	TimelineDays int       `bson:"timeline_days" json:"timeline_days"`
	StartDate    time.Time `bson:"start_date" json:"start_date"`
	Deadline     time.Time `bson:"deadline" json:"deadline"`

	LevelBoundaries map[Level]LevelWindow `bson:"level_boundaries" json:"level_boundaries"`
	CurrentLevel    Level                 `bson:"current_level" json:"current_level"`
	CurrentDay      int                   `bson:"current_day" json:"current_day"`
	IsActive        bool                  `bson:"is_active" json:"is_active"`
	IsCompleted     bool                  `bson:"is_completed" json:"is_completed"`

	Tasks []Task `bson:"tasks" json:"tasks"`

	// Adaptive metrics
	PerformanceScore     int     `bson:"performance_score" json:"performance_score"`
	DifficultyMultiplier float64 `bson:"difficulty_multiplier" json:"difficulty_multiplier"`

	// Streak and completion bookkeeping
	Streak                int `bson:"streak" json:"streak"`
	LongestStreak         int `bson:"longest_streak" json:"longest_streak"`
	TotalCompleted        int `bson:"total_completed" json:"total_completed"`
	TotalMissed           int `bson:"total_missed" json:"total_missed"`
	CompletionRate        int `bson:"completion_rate" json:"completion_rate"`
	SkillImprovementScore int `bson:"skill_improvement_score" json:"skill_improvement_score"`

	// Discipline state
	ConsecutiveMissedDays int         `bson:"consecutive_missed_days" json:"consecutive_missed_days"`
	PenaltyPoints         int         `bson:"penalty_points" json:"penalty_points"`
	DisciplineScore       int         `bson:"discipline_score" json:"discipline_score"`
	PenaltyLevel          PenaltyTier `bson:"penalty_level" json:"penalty_level"`
	IsFrozen              bool        `bson:"is_frozen" json:"is_frozen"`
	PenaltyTasksRequired  int         `bson:"penalty_tasks_required" json:"penalty_tasks_required"`

	Notifications []Notification `bson:"notifications" json:"notifications"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// TaskByID scans the owned task collection. Tasks live only inside their
// plan, there is no separate task store.
func (p *GoalPlan) TaskByID(id string) *Task {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return &p.Tasks[i]
		}
	}
	return nil
}

// TaskOnDay returns the first task scheduled on the given day, or nil.
func (p *GoalPlan) TaskOnDay(day int) *Task {
	for i := range p.Tasks {
		if p.Tasks[i].Day == day {
			return &p.Tasks[i]
		}
	}
	return nil
}

// LevelForDay resolves the level window containing the day. The second
// return is false when the day falls past every window (rounding can leave
// trailing days uncovered).
func (p *GoalPlan) LevelForDay(day int) (Level, bool) {
	for _, lvl := range Levels {
		if w, ok := p.LevelBoundaries[lvl]; ok && day >= w.StartDay && day <= w.EndDay {
			return lvl, true
		}
	}
	return "", false
}

// TasksForDay returns every task scheduled on the given day.
func (p *GoalPlan) TasksForDay(day int) []Task {
	var out []Task
	for _, t := range p.Tasks {
		if t.Day == day {
			out = append(out, t)
		}
	}
	return out
}

// UnreadNotifications filters the append-only notification log.
func (p *GoalPlan) UnreadNotifications() []Notification {
	var out []Notification
	for _, n := range p.Notifications {
		if !n.Read {
			out = append(out, n)
		}
	}
	return out
}

func (p *GoalPlan) Notify(kind, message string) {
	p.Notifications = append(p.Notifications, Notification{
		Type:      kind,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// RecalcCompletionRate recomputes the percentage of completed tasks among
// tasks due so far (day <= currentDay).
func (p *GoalPlan) RecalcCompletionRate() {
	done, total := 0, 0
	for _, t := range p.Tasks {
		if t.Day <= p.CurrentDay {
			total++
		}
		if t.Status == StatusCompleted {
			done++
		}
	}
	if total > 0 {
		p.CompletionRate = int(math.Round(float64(done) / float64(total) * 100))
	} else {
		p.CompletionRate = 0
	}
}
