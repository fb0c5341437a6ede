package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"skillsync/internal/discipline"
	"skillsync/internal/models"
	"skillsync/internal/planner"
	"skillsync/internal/repository"
)

const (
	minTimelineDays     = 30
	maxTimelineDays     = 180
	defaultTimelineDays = 90
)

// PlanService owns the plan lifecycle: goal start, the lazy time
// reconciliation on every read, the read-side aggregations, and reset.
type PlanService struct {
	repo  *repository.PlanRepository
	users *repository.UserRepository
	gen   *planner.Generator
	disc  *discipline.Manager
	locks *PlanLocks
}

func NewPlanService(repo *repository.PlanRepository, users *repository.UserRepository, locks *PlanLocks) *PlanService {
	return &PlanService{
		repo:  repo,
		users: users,
		gen:   planner.NewGenerator(),
		disc:  discipline.NewManager(),
		locks: locks,
	}
}

type StartGoalInput struct {
	GoalTitle    string   `json:"goal_title" binding:"required"`
	TimelineDays int      `json:"timeline_days"`
	CustomSkills []string `json:"custom_skills"`
}

type StartGoalResult struct {
	Plan            *models.GoalPlan `json:"plan"`
	AutoAddedSkills []string         `json:"auto_added_skills"`
}

// StartGoal wipes any prior plan, generates the task schedule from the
// catalog template (or a template synthesized from custom skills) and
// persists the fresh plan. Foundation skills are injected into the user
// profile best effort; a failure there never fails the goal start.
func (s *PlanService) StartGoal(ctx context.Context, userID string, in StartGoalInput) (*StartGoalResult, error) {
	if in.GoalTitle == "" {
		return nil, fmt.Errorf("%w: goal title is required", ErrValidation)
	}
	if in.TimelineDays == 0 {
		in.TimelineDays = defaultTimelineDays
	}
	if in.TimelineDays < minTimelineDays || in.TimelineDays > maxTimelineDays {
		return nil, fmt.Errorf("%w: timeline must be between %d and %d days", ErrValidation, minTimelineDays, maxTimelineDays)
	}

	var tpl models.GoalTemplate
	if len(in.CustomSkills) > 0 {
		tpl = planner.CustomTemplate(in.CustomSkills)
	} else {
		var ok bool
		tpl, ok = models.GoalTemplates[in.GoalTitle]
		if !ok {
			return nil, fmt.Errorf("%w: unknown goal %q", ErrValidation, in.GoalTitle)
		}
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.repo.DeleteByUser(ctx, userID); err != nil {
		return nil, err
	}

	tasks, boundaries := s.gen.Generate(tpl, in.TimelineDays)
	now := time.Now()
	plan := &models.GoalPlan{
		UserID:               userID,
		GoalTitle:            in.GoalTitle,
		GoalCategory:         tpl.Category,
		TimelineDays:         in.TimelineDays,
		StartDate:            now,
		Deadline:             now.Add(time.Duration(in.TimelineDays) * 24 * time.Hour),
		LevelBoundaries:      boundaries,
		CurrentLevel:         models.LevelBeginner,
		CurrentDay:           1,
		IsActive:             true,
		Tasks:                tasks,
		PerformanceScore:     50,
		DifficultyMultiplier: 1.0,
		DisciplineScore:      100,
		PenaltyLevel:         models.TierNormal,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	plan.Notify("milestone", fmt.Sprintf("🚀 Your %s journey begins! %d days to become industry-ready.", in.GoalTitle, in.TimelineDays))

	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, err
	}

	// Fire and forget: the plan's correctness does not depend on the
	// profile sync succeeding.
	var autoAdded []string
	if added, err := s.users.AddSkills(ctx, userID, tpl.SkillDetails); err != nil {
		log.Printf("skill auto-injection failed for user %s: %v", userID, err)
	} else {
		autoAdded = added
	}

	return &StartGoalResult{Plan: plan, AutoAddedSkills: autoAdded}, nil
}

type PlanView struct {
	Plan                *models.GoalPlan      `json:"plan"`
	TodayTasks          []models.Task         `json:"today_tasks"`
	UnreadNotifications []models.Notification `json:"unread_notifications"`
}

// GetMyPlan loads the plan, reconciles it against now, persists the result
// when anything moved, and returns the read view. A nil view means the user
// has no plan yet.
func (s *PlanService) GetMyPlan(ctx context.Context, userID string, now time.Time) (*PlanView, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	plan, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, nil
	}

	if s.Reconcile(plan, now) {
		plan.UpdatedAt = now
		if err := s.repo.Save(ctx, plan); err != nil {
			return nil, err
		}
	}

	return &PlanView{
		Plan:                plan,
		TodayTasks:          plan.TasksForDay(plan.CurrentDay),
		UnreadNotifications: plan.UnreadNotifications(),
	}, nil
}

// Reconcile advances the plan's day cursor to match elapsed wall-clock time.
// Idempotent: a second call with the same now is a no-op. Returns whether
// the plan changed.
//
// The cursor is monotone; a clock that appears to have moved backwards
// leaves the plan untouched.
func (s *PlanService) Reconcile(plan *models.GoalPlan, now time.Time) bool {
	elapsed := int(now.Sub(plan.StartDate).Hours()/24) + 1
	syncedDay := min(elapsed, plan.TimelineDays)
	if syncedDay <= plan.CurrentDay {
		return false
	}
	daysJumped := syncedDay - plan.CurrentDay

	var missed []*models.Task
	for i := range plan.Tasks {
		t := &plan.Tasks[i]
		if t.Day < syncedDay && t.Status == models.StatusPending {
			t.Status = models.StatusMissed
			plan.TotalMissed++
			missed = append(missed, t)
		}
	}

	if len(missed) > 0 {
		s.disc.ApplyMissedWork(plan, missed, daysJumped, syncedDay)
	}

	plan.CurrentDay = syncedDay

	if lvl, ok := plan.LevelForDay(syncedDay); ok {
		if plan.CurrentLevel != lvl {
			plan.Notify("milestone", fmt.Sprintf("🏆 Level Up! You've reached %s level!", titleCase(string(lvl))))
			plan.CurrentLevel = lvl
		}
	}
	// Past every window the level keeps its last value.

	if syncedDay >= plan.TimelineDays && !plan.IsCompleted {
		plan.IsCompleted = true
		plan.Notify("milestone", fmt.Sprintf("🎉 You completed your %s journey!", plan.GoalTitle))
	}

	plan.RecalcCompletionRate()
	return true
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

type DailyProgress struct {
	Day       int `json:"day"`
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Rate      int `json:"rate"`
}

type LevelStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	AvgScore  int `json:"avg_score"`
	Rate      int `json:"rate"`
}

type ProgressReport struct {
	GoalTitle             string                              `json:"goal_title"`
	CurrentDay            int                                 `json:"current_day"`
	TimelineDays          int                                 `json:"timeline_days"`
	DaysLeft              int                                 `json:"days_left"`
	Deadline              time.Time                           `json:"deadline"`
	CurrentLevel          models.Level                        `json:"current_level"`
	Streak                int                                 `json:"streak"`
	LongestStreak         int                                 `json:"longest_streak"`
	TotalCompleted        int                                 `json:"total_completed"`
	TotalMissed           int                                 `json:"total_missed"`
	CompletionRate        int                                 `json:"completion_rate"`
	SkillImprovementScore int                                 `json:"skill_improvement_score"`
	PerformanceScore      int                                 `json:"performance_score"`
	DifficultyMultiplier  float64                             `json:"difficulty_multiplier"`
	LevelBoundaries       map[models.Level]models.LevelWindow `json:"level_boundaries"`
	DailyData             []DailyProgress                     `json:"daily_data"`
	LevelStats            map[models.Level]LevelStats         `json:"level_stats"`
	IsCompleted           bool                                `json:"is_completed"`
	DisciplineScore       int                                 `json:"discipline_score"`
	PenaltyLevel          models.PenaltyTier                  `json:"penalty_level"`
	PenaltyPoints         int                                 `json:"penalty_points"`
	ConsecutiveMissedDays int                                 `json:"consecutive_missed_days"`
	IsFrozen              bool                                `json:"is_frozen"`
	PenaltyTasksRequired  int                                 `json:"penalty_tasks_required"`
}

// GetProgress aggregates the trailing 14 days and per-level stats. Pure
// read side; it does not reconcile.
func (s *PlanService) GetProgress(ctx context.Context, userID string) (*ProgressReport, error) {
	plan, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, nil
	}

	var daily []DailyProgress
	for d := max(1, plan.CurrentDay-13); d <= plan.CurrentDay; d++ {
		total, done := 0, 0
		for _, t := range plan.Tasks {
			if t.Day != d {
				continue
			}
			total++
			if t.Status == models.StatusCompleted {
				done++
			}
		}
		rate := 0
		if total > 0 {
			rate = int(math.Round(float64(done) / float64(total) * 100))
		}
		daily = append(daily, DailyProgress{Day: d, Total: total, Completed: done, Rate: rate})
	}

	levelStats := make(map[models.Level]LevelStats, len(models.Levels))
	totalCompleted, totalMissed := 0, 0
	for _, t := range plan.Tasks {
		switch t.Status {
		case models.StatusCompleted:
			totalCompleted++
		case models.StatusMissed:
			totalMissed++
		}
	}
	for _, lvl := range models.Levels {
		var st LevelStats
		scoreSum := 0
		for _, t := range plan.Tasks {
			if t.Level != lvl {
				continue
			}
			st.Total++
			if t.Status == models.StatusCompleted {
				st.Completed++
				scoreSum += t.Score
			}
		}
		if st.Completed > 0 {
			st.AvgScore = int(math.Round(float64(scoreSum) / float64(st.Completed)))
		}
		if st.Total > 0 {
			st.Rate = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
		}
		levelStats[lvl] = st
	}

	return &ProgressReport{
		GoalTitle:             plan.GoalTitle,
		CurrentDay:            plan.CurrentDay,
		TimelineDays:          plan.TimelineDays,
		DaysLeft:              max(0, plan.TimelineDays-plan.CurrentDay),
		Deadline:              plan.Deadline,
		CurrentLevel:          plan.CurrentLevel,
		Streak:                plan.Streak,
		LongestStreak:         plan.LongestStreak,
		TotalCompleted:        totalCompleted,
		TotalMissed:           totalMissed,
		CompletionRate:        plan.CompletionRate,
		SkillImprovementScore: plan.SkillImprovementScore,
		PerformanceScore:      plan.PerformanceScore,
		DifficultyMultiplier:  plan.DifficultyMultiplier,
		LevelBoundaries:       plan.LevelBoundaries,
		DailyData:             daily,
		LevelStats:            levelStats,
		IsCompleted:           plan.IsCompleted,
		DisciplineScore:       plan.DisciplineScore,
		PenaltyLevel:          plan.PenaltyLevel,
		PenaltyPoints:         plan.PenaltyPoints,
		ConsecutiveMissedDays: plan.ConsecutiveMissedDays,
		IsFrozen:              plan.IsFrozen,
		PenaltyTasksRequired:  plan.PenaltyTasksRequired,
	}, nil
}

type DisciplineStatus struct {
	DisciplineScore       int                `json:"discipline_score"`
	PenaltyLevel          models.PenaltyTier `json:"penalty_level"`
	PenaltyLabel          string             `json:"penalty_label"`
	PenaltyPoints         int                `json:"penalty_points"`
	ConsecutiveMissedDays int                `json:"consecutive_missed_days"`
	IsFrozen              bool               `json:"is_frozen"`
	PenaltyTasksRequired  int                `json:"penalty_tasks_required"`
	Streak                int                `json:"streak"`
	TotalMissed           int                `json:"total_missed"`
	TotalCompleted        int                `json:"total_completed"`
}

func (s *PlanService) GetDisciplineStatus(ctx context.Context, userID string) (*DisciplineStatus, error) {
	plan, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, nil
	}
	cfg := discipline.Config(plan.PenaltyLevel)
	return &DisciplineStatus{
		DisciplineScore:       plan.DisciplineScore,
		PenaltyLevel:          plan.PenaltyLevel,
		PenaltyLabel:          cfg.Label,
		PenaltyPoints:         plan.PenaltyPoints,
		ConsecutiveMissedDays: plan.ConsecutiveMissedDays,
		IsFrozen:              plan.IsFrozen,
		PenaltyTasksRequired:  plan.PenaltyTasksRequired,
		Streak:                plan.Streak,
		TotalMissed:           plan.TotalMissed,
		TotalCompleted:        plan.TotalCompleted,
	}, nil
}

// MarkNotificationsRead flips the whole notification log to read.
func (s *PlanService) MarkNotificationsRead(ctx context.Context, userID string) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	plan, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return err
	}
	if plan == nil {
		return ErrNoPlan
	}
	for i := range plan.Notifications {
		plan.Notifications[i].Read = true
	}
	return s.repo.Save(ctx, plan)
}

// ResetGoal deletes the plan outright.
func (s *PlanService) ResetGoal(ctx context.Context, userID string) error {
	unlock := s.locks.Lock(userID)
	defer unlock()
	return s.repo.DeleteByUser(ctx, userID)
}
