package models

import "testing"

func boundedPlan() *GoalPlan {
	return &GoalPlan{
		TimelineDays: 90,
		CurrentDay:   1,
		LevelBoundaries: map[Level]LevelWindow{
			LevelBeginner:     {StartDay: 1, EndDay: 23},
			LevelIntermediate: {StartDay: 24, EndDay: 50},
			LevelAdvanced:     {StartDay: 51, EndDay: 73},
			LevelProfessional: {StartDay: 74, EndDay: 89},
		},
	}
}

func TestLevelForDay(t *testing.T) {
	plan := boundedPlan()

	tests := []struct {
		day   int
		want  Level
		found bool
	}{
		{1, LevelBeginner, true},
		{23, LevelBeginner, true},
		{24, LevelIntermediate, true},
		{50, LevelIntermediate, true},
		{51, LevelAdvanced, true},
		{74, LevelProfessional, true},
		{89, LevelProfessional, true},
		{90, "", false}, // trailing day past every window
		{0, "", false},
	}
	for _, tt := range tests {
		got, ok := plan.LevelForDay(tt.day)
		if ok != tt.found || got != tt.want {
			t.Errorf("LevelForDay(%d) = (%q, %v), want (%q, %v)", tt.day, got, ok, tt.want, tt.found)
		}
	}
}

func TestTaskByID(t *testing.T) {
	plan := boundedPlan()
	plan.Tasks = []Task{{ID: "a", Day: 1}, {ID: "b", Day: 2}}

	if got := plan.TaskByID("b"); got == nil || got.Day != 2 {
		t.Errorf("TaskByID(b) = %+v, want the day-2 task", got)
	}
	if plan.TaskByID("missing") != nil {
		t.Error("TaskByID on an unknown id must return nil")
	}

	// The pointer aliases the slice element.
	plan.TaskByID("a").Status = StatusCompleted
	if plan.Tasks[0].Status != StatusCompleted {
		t.Error("mutation through TaskByID did not reach the plan")
	}
}

func TestRecalcCompletionRate(t *testing.T) {
	plan := boundedPlan()
	plan.CurrentDay = 4
	plan.Tasks = []Task{
		{ID: "a", Day: 1, Status: StatusCompleted},
		{ID: "b", Day: 2, Status: StatusMissed},
		{ID: "c", Day: 3, Status: StatusCompleted},
		{ID: "d", Day: 4, Status: StatusPending},
		{ID: "e", Day: 50, Status: StatusPending}, // not yet due
	}

	plan.RecalcCompletionRate()
	if plan.CompletionRate != 50 {
		t.Errorf("completion rate = %d, want 50", plan.CompletionRate)
	}

	plan.Tasks = nil
	plan.RecalcCompletionRate()
	if plan.CompletionRate != 0 {
		t.Errorf("completion rate with no tasks = %d, want 0", plan.CompletionRate)
	}
}

func TestUnreadNotifications(t *testing.T) {
	plan := boundedPlan()
	plan.Notify("milestone", "first")
	plan.Notify("streak", "second")
	plan.Notifications[0].Read = true

	unread := plan.UnreadNotifications()
	if len(unread) != 1 || unread[0].Message != "second" {
		t.Errorf("unread = %+v, want only the second notification", unread)
	}
}

func TestTemplateCatalog(t *testing.T) {
	if len(GoalTemplates) != 5 {
		t.Fatalf("catalog holds %d templates, want 5", len(GoalTemplates))
	}
	for title, tpl := range GoalTemplates {
		if len(tpl.Skills) == 0 {
			t.Errorf("%s has no skills", title)
		}
		// Each template injects five foundation skills. The foundation
		// set may reach outside the scheduling skill list (Git for the
		// backend track).
		if len(tpl.SkillDetails) != 5 {
			t.Errorf("%s: %d foundation skills, want 5", title, len(tpl.SkillDetails))
		}
		for _, d := range tpl.SkillDetails {
			if d.Name == "" || d.Category == "" {
				t.Errorf("%s: incomplete foundation skill %+v", title, d)
			}
			if d.Proficiency < 1 {
				t.Errorf("%s: foundation skill %q proficiency = %d", title, d.Name, d.Proficiency)
			}
		}
		sum := 0.0
		for _, lvl := range Levels {
			lp, ok := tpl.Levels[lvl]
			if !ok {
				t.Fatalf("%s misses level %s", title, lvl)
			}
			sum += lp.Ratio

			weightSum := 0.0
			for _, tw := range lp.TaskTypes {
				weightSum += tw.Weight
			}
			if weightSum < 0.99 || weightSum > 1.01 {
				t.Errorf("%s %s task mix sums to %f", title, lvl, weightSum)
			}
		}
		if sum < 0.99 || sum > 1.01 {
			t.Errorf("%s level ratios sum to %f", title, sum)
		}
	}
}

func TestTemplateSummariesSorted(t *testing.T) {
	summaries := TemplateSummaries()
	if len(summaries) != len(GoalTemplates) {
		t.Fatalf("got %d summaries, want %d", len(summaries), len(GoalTemplates))
	}
	for i := 1; i < len(summaries); i++ {
		if summaries[i-1].Name > summaries[i].Name {
			t.Errorf("summaries out of order: %q before %q", summaries[i-1].Name, summaries[i].Name)
		}
	}
}
