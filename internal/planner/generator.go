package planner

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"skillsync/internal/models"

	"github.com/google/uuid"
)

// Generator synthesizes the day-by-day task schedule for a goal. It owns its
// random source so tests can seed it deterministically.
type Generator struct {
	rand *rand.Rand
}

func NewGenerator() *Generator {
	return &Generator{rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func NewGeneratorWithSource(src rand.Source) *Generator {
	return &Generator{rand: rand.New(src)}
}

// Generate partitions the timeline into the four level windows using the
// template's ratios and produces one task per covered day. Window sizes are
// rounded independently, so the partition may fall short of timelineDays;
// trailing uncovered days simply carry no tasks. The last window is capped
// at timelineDays so no window ever extends past the deadline.
func (g *Generator) Generate(tpl models.GoalTemplate, timelineDays int) ([]models.Task, map[models.Level]models.LevelWindow) {
	boundaries := make(map[models.Level]models.LevelWindow, len(models.Levels))
	dayPointer := 1
	for _, lvl := range models.Levels {
		days := int(math.Round(tpl.Levels[lvl].Ratio * float64(timelineDays)))
		end := dayPointer + days - 1
		if end > timelineDays {
			end = timelineDays
		}
		boundaries[lvl] = models.LevelWindow{StartDay: dayPointer, EndDay: end}
		dayPointer = end + 1
	}

	var tasks []models.Task
	for _, lvl := range models.Levels {
		window := boundaries[lvl]
		lvlPlan := tpl.Levels[lvl]

		for day := window.StartDay; day <= window.EndDay; day++ {
			skill := g.pickSkill(tpl.Skills, lvlPlan.Focus)
			taskType := g.pickType(lvlPlan.TaskTypes)
			difficulty := models.BaseDifficulty[lvl] + g.rand.Intn(2) - 1
			if difficulty < 1 {
				difficulty = 1
			} else if difficulty > 10 {
				difficulty = 10
			}

			tasks = append(tasks, models.Task{
				ID:               uuid.NewString(),
				Day:              day,
				Level:            lvl,
				Type:             taskType,
				Title:            TaskTitle(taskType, skill, lvl),
				Description:      TaskDescription(taskType, skill),
				Skills:           []string{skill},
				EstimatedMinutes: models.TaskMinutes[taskType],
				Difficulty:       difficulty,
				IsCompulsory:     true,
				Status:           models.StatusPending,
			})
		}
	}

	return tasks, boundaries
}

// pickSkill narrows the template's skill list to the skills overlapping the
// level's focus keywords (case-insensitive substring, either direction) and
// draws one uniformly. Falls back to the full list when nothing matches.
func (g *Generator) pickSkill(skills, focus []string) string {
	var candidates []string
	for _, s := range skills {
		sl := strings.ToLower(s)
		for _, f := range focus {
			fl := strings.ToLower(f)
			if strings.Contains(fl, sl) || strings.Contains(sl, fl) {
				candidates = append(candidates, s)
				break
			}
		}
	}
	if len(candidates) == 0 {
		candidates = skills
	}
	return candidates[g.rand.Intn(len(candidates))]
}

// pickType draws a task type by cumulative-probability scan over the level's
// ordered mix. Rounding can leave the scan without a hit; practice is the
// fallback branch.
func (g *Generator) pickType(mix []models.TypeWeight) models.TaskType {
	r := g.rand.Float64()
	cumulative := 0.0
	for _, tw := range mix {
		cumulative += tw.Weight
		if r < cumulative {
			return tw.Type
		}
	}
	return models.TaskPractice
}

// TaskTitle renders the template-generated title for a task.
func TaskTitle(t models.TaskType, skill string, lvl models.Level) string {
	switch t {
	case models.TaskConcept:
		return fmt.Sprintf("📖 Study %s — %s concepts", skill, lvl)
	case models.TaskPractice:
		return fmt.Sprintf("💻 Practice %s exercises (%s)", skill, lvl)
	case models.TaskProject:
		return fmt.Sprintf("🛠️ Build a mini-project using %s", skill)
	case models.TaskAssessment:
		return fmt.Sprintf("📝 Skill assessment: %s (%s level)", skill, lvl)
	default:
		return fmt.Sprintf("🔄 Revision: Reinforce %s concepts", skill)
	}
}

// TaskDescription renders the template-generated description for a task.
func TaskDescription(t models.TaskType, skill string) string {
	switch t {
	case models.TaskConcept:
		return fmt.Sprintf("Learn core theoretical foundations of %s. Watch 1–2 tutorial videos, read documentation, and take notes.", skill)
	case models.TaskPractice:
		return fmt.Sprintf("Complete 5–10 hands-on coding exercises covering %s. Focus on understanding, not just output.", skill)
	case models.TaskProject:
		return fmt.Sprintf("Build a small working project that demonstrates %s. Commit to GitHub when complete.", skill)
	case models.TaskAssessment:
		return fmt.Sprintf("Test your current understanding of %s with a timed quiz and coding challenge.", skill)
	default:
		return fmt.Sprintf("Review your notes and redo 3 failed exercises from previous sessions on %s.", skill)
	}
}

// CustomTemplate synthesizes a goal template from a user-supplied skill
// list: the skills are spread across the four levels as focus areas and the
// catalog's standard per-level task mixes apply.
func CustomTemplate(skills []string) models.GoalTemplate {
	details := make([]models.SkillDetail, 0, len(skills))
	for _, s := range skills {
		details = append(details, models.SkillDetail{Name: s, Proficiency: 1, Category: "Custom"})
	}

	focus := make(map[models.Level][]string, len(models.Levels))
	for i, s := range skills {
		lvl := models.Levels[i*len(models.Levels)/len(skills)]
		focus[lvl] = append(focus[lvl], s)
	}
	for _, lvl := range models.Levels {
		if len(focus[lvl]) == 0 {
			focus[lvl] = skills
		}
	}

	levels := make(map[models.Level]models.LevelPlan, len(models.Levels))
	for _, lvl := range models.Levels {
		levels[lvl] = models.LevelPlan{
			Ratio:     models.StandardRatios[lvl],
			Focus:     focus[lvl],
			TaskTypes: models.StandardMixes[lvl],
		}
	}

	return models.GoalTemplate{
		Category:     "Custom",
		Skills:       skills,
		SkillDetails: details,
		Levels:       levels,
	}
}
