package discipline

import (
	"fmt"

	"skillsync/internal/models"
	"skillsync/internal/planner"

	"github.com/google/uuid"
)

// TierConfig defines one penalty severity: the discipline-score deduction
// applied per day jumped, how many penalty/revision tasks the tier injects,
// and a display label.
type TierConfig struct {
	Deduction    int
	PenaltyTasks int
	Label        string
}

// The escalation ladder:
//
//	0–1 consecutive missed days → normal
//	2–3                         → warning  (streak reset + revision tasks)
//	4–5                         → freeze   (account frozen until penalty tasks cleared)
//	6+                          → critical (severe penalties, deadline at risk)
var tierConfigs = map[models.PenaltyTier]TierConfig{
	models.TierNormal:   {Deduction: 5, PenaltyTasks: 1, Label: "Good Standing 🟢"},
	models.TierWarning:  {Deduction: 10, PenaltyTasks: 2, Label: "Warning ⚠️"},
	models.TierFreeze:   {Deduction: 20, PenaltyTasks: 3, Label: "Frozen 🧊"},
	models.TierCritical: {Deduction: 30, PenaltyTasks: 5, Label: "Critical ❌"},
}

const recoveryPoints = 5 // discipline score restored per revision-task completion

// TierFor maps the consecutive-missed-days counter to a penalty tier. Pure
// function, non-decreasing in its argument.
func TierFor(consecutiveMissed int) models.PenaltyTier {
	switch {
	case consecutiveMissed >= 6:
		return models.TierCritical
	case consecutiveMissed >= 4:
		return models.TierFreeze
	case consecutiveMissed >= 2:
		return models.TierWarning
	default:
		return models.TierNormal
	}
}

// Config returns the tier's configuration.
func Config(tier models.PenaltyTier) TierConfig {
	return tierConfigs[tier]
}

// Manager runs the discipline transitions on a plan. It is stateless; all
// state lives in the plan aggregate.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// ApplyMissedWork escalates the discipline state after reconciliation found
// missed tasks. missed holds pointers into the plan's task slice (already
// marked missed); daysJumped is how far the day cursor advanced; syncedDay
// is where it landed. Appends penalty or revision tasks and the tier
// notification.
func (m *Manager) ApplyMissedWork(plan *models.GoalPlan, missed []*models.Task, daysJumped, syncedDay int) {
	plan.ConsecutiveMissedDays += daysJumped
	tier := TierFor(plan.ConsecutiveMissedDays)
	cfg := tierConfigs[tier]

	plan.DisciplineScore = max(0, plan.DisciplineScore-cfg.Deduction*daysJumped)
	plan.PenaltyPoints += cfg.Deduction * daysJumped
	plan.Streak = 0
	plan.PenaltyLevel = tier

	if tier == models.TierFreeze || tier == models.TierCritical {
		plan.IsFrozen = true
		plan.PenaltyTasksRequired = cfg.PenaltyTasks
		m.injectPenaltyTasks(plan, cfg.PenaltyTasks, syncedDay)
	} else {
		// Lighter touch below freeze: one revision task per missed task,
		// capped at the tier's count.
		for i, mt := range missed {
			if i >= cfg.PenaltyTasks {
				break
			}
			skill := "previous topic"
			if len(mt.Skills) > 0 {
				skill = mt.Skills[0]
			}
			plan.Tasks = append(plan.Tasks, models.Task{
				ID:               uuid.NewString(),
				Day:              syncedDay,
				Level:            mt.Level,
				Type:             models.TaskRevision,
				Title:            planner.TaskTitle(models.TaskRevision, skill, mt.Level),
				Description:      planner.TaskDescription(models.TaskRevision, skill),
				Skills:           mt.Skills,
				EstimatedMinutes: models.TaskMinutes[models.TaskRevision],
				Difficulty:       min(10, mt.Difficulty+1),
				IsCompulsory:     true,
				Status:           models.StatusPending,
			})
		}
	}

	plan.Notify("missed", m.tierMessage(plan, tier, cfg, len(missed)))
}

func (m *Manager) tierMessage(plan *models.GoalPlan, tier models.PenaltyTier, cfg TierConfig, missedCount int) string {
	switch tier {
	case models.TierWarning:
		return fmt.Sprintf("⚠️ WARNING: %d days missed in a row! %d revision tasks added. Discipline Score: %d/100.",
			plan.ConsecutiveMissedDays, cfg.PenaltyTasks, plan.DisciplineScore)
	case models.TierFreeze:
		return fmt.Sprintf("🧊 FROZEN: You missed %d consecutive days! Complete %d PENALTY tasks to unfreeze. Discipline Score: %d/100.",
			plan.ConsecutiveMissedDays, cfg.PenaltyTasks, plan.DisciplineScore)
	case models.TierCritical:
		return fmt.Sprintf("❌ CRITICAL: %d days missed! Your goal deadline is at RISK. Complete %d mandatory penalty tasks IMMEDIATELY. Discipline Score: %d/100.",
			plan.ConsecutiveMissedDays, cfg.PenaltyTasks, plan.DisciplineScore)
	default:
		return fmt.Sprintf("😔 You missed %d task(s). Revision tasks added. Streak reset.", missedCount)
	}
}

// injectPenaltyTasks appends the freeze/critical penalty tasks, dated at the
// newly synced day and derived from whatever task already sits on that day.
func (m *Manager) injectPenaltyTasks(plan *models.GoalPlan, count, day int) {
	skill := "previously missed topic"
	level := plan.CurrentLevel
	skills := []string{skill}
	refDifficulty := 3
	if ref := plan.TaskOnDay(day); ref != nil {
		if len(ref.Skills) > 0 {
			skill = ref.Skills[0]
			skills = ref.Skills
		}
		level = ref.Level
		refDifficulty = ref.Difficulty
	}

	for i := 0; i < count; i++ {
		plan.Tasks = append(plan.Tasks, models.Task{
			ID:    uuid.NewString(),
			Day:   day,
			Level: level,
			Type:  models.TaskRevision,
			Title: fmt.Sprintf("🔴 PENALTY Task %d: Urgent revision — %s", i+1, skill),
			Description: fmt.Sprintf("Mandatory penalty task due to missing %d consecutive days. You must complete all penalty tasks to unfreeze your account. Review %s fundamentals thoroughly.",
				plan.ConsecutiveMissedDays, skill),
			Skills:           skills,
			EstimatedMinutes: 45,
			Difficulty:       min(10, refDifficulty+2),
			IsCompulsory:     true,
			Status:           models.StatusPending,
		})
	}
}

// RecoverWithRevision credits one completed revision task against the
// discipline state. Only revision completions count toward unfreezing:
// each one decrements the missed counter and restores discipline score.
// When frozen it also burns down the required penalty tasks. Returns true
// when this completion cleared the freeze.
func (m *Manager) RecoverWithRevision(plan *models.GoalPlan) bool {
	if plan.ConsecutiveMissedDays <= 0 {
		return false
	}
	plan.ConsecutiveMissedDays = max(0, plan.ConsecutiveMissedDays-1)
	plan.DisciplineScore = min(100, plan.DisciplineScore+recoveryPoints)

	if !plan.IsFrozen {
		return false
	}
	plan.PenaltyTasksRequired = max(0, plan.PenaltyTasksRequired-1)
	if plan.PenaltyTasksRequired > 0 {
		return false
	}
	plan.IsFrozen = false
	plan.PenaltyLevel = TierFor(plan.ConsecutiveMissedDays)
	plan.Notify("milestone", fmt.Sprintf("✅ Account Unfrozen! All penalty tasks cleared. Discipline Score: %d/100. Keep going! 💪", plan.DisciplineScore))
	return true
}
