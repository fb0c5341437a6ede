package service

import (
	"strings"
	"testing"
	"time"

	"skillsync/internal/models"
)

func newTestTaskService() *TaskService {
	return NewTaskService(nil, NewPlanLocks())
}

func completionPlan(tasks ...models.Task) *models.GoalPlan {
	return &models.GoalPlan{
		UserID:               "u1",
		GoalTitle:            "Frontend Developer",
		TimelineDays:         90,
		CurrentLevel:         models.LevelBeginner,
		CurrentDay:           1,
		IsActive:             true,
		PerformanceScore:     50,
		DifficultyMultiplier: 1.0,
		DisciplineScore:      100,
		PenaltyLevel:         models.TierNormal,
		Tasks:                tasks,
	}
}

func practiceTask(id string, day int) models.Task {
	return models.Task{
		ID:           id,
		Day:          day,
		Level:        models.LevelBeginner,
		Type:         models.TaskPractice,
		Skills:       []string{"HTML"},
		Difficulty:   2,
		IsCompulsory: true,
		Status:       models.StatusPending,
	}
}

func TestApplyCompletion(t *testing.T) {
	svc := newTestTaskService()
	plan := completionPlan(practiceTask("t1", 1))
	task := &plan.Tasks[0]
	now := time.Now()

	svc.applyCompletion(plan, task, 90, "solid session", now)

	if task.Status != models.StatusCompleted {
		t.Errorf("status = %s, want completed", task.Status)
	}
	if task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
		t.Error("completed-at timestamp not recorded")
	}
	if task.Score != 90 {
		t.Errorf("score = %d, want 90", task.Score)
	}
	if task.Notes != "solid session" {
		t.Errorf("notes = %q", task.Notes)
	}
	if plan.TotalCompleted != 1 {
		t.Errorf("total completed = %d, want 1", plan.TotalCompleted)
	}
	// Practice weight 2: round(90/100 * 2 * 10) = 18.
	if plan.SkillImprovementScore != 18 {
		t.Errorf("skill improvement = %d, want 18", plan.SkillImprovementScore)
	}
	// Sole completed task scores 90, above the raise threshold.
	if plan.PerformanceScore != 90 {
		t.Errorf("performance score = %d, want 90", plan.PerformanceScore)
	}
	if plan.DifficultyMultiplier != 1.05 {
		t.Errorf("difficulty multiplier = %f, want 1.05", plan.DifficultyMultiplier)
	}
	// The day's only compulsory task is done.
	if plan.Streak != 1 {
		t.Errorf("streak = %d, want 1", plan.Streak)
	}
	if plan.CompletionRate != 100 {
		t.Errorf("completion rate = %d, want 100", plan.CompletionRate)
	}
}

func TestApplyCompletionClampsScore(t *testing.T) {
	svc := newTestTaskService()

	tests := []struct {
		name  string
		score int
		want  int
	}{
		{"above range", 150, 100},
		{"below range", -10, 0},
		{"in range", 73, 73},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := completionPlan(practiceTask("t1", 1))
			svc.applyCompletion(plan, &plan.Tasks[0], tt.score, "", time.Now())
			if plan.Tasks[0].Score != tt.want {
				t.Errorf("score = %d, want %d", plan.Tasks[0].Score, tt.want)
			}
		})
	}
}

func TestAdaptDifficultyRollingWindow(t *testing.T) {
	svc := newTestTaskService()
	plan := completionPlan()

	// Twelve completed tasks: two old low scores that must age out of the
	// ten-task window, then ten at 90.
	for i := 0; i < 12; i++ {
		task := practiceTask("t", i+1)
		task.Status = models.StatusCompleted
		task.Score = 90
		if i < 2 {
			task.Score = 10
		}
		plan.Tasks = append(plan.Tasks, task)
	}

	svc.adaptDifficulty(plan)

	if plan.PerformanceScore != 90 {
		t.Errorf("performance score = %d, want window average 90", plan.PerformanceScore)
	}
}

func TestAdaptDifficultyZeroScoreDefaults(t *testing.T) {
	svc := newTestTaskService()
	plan := completionPlan()
	task := practiceTask("t1", 1)
	task.Status = models.StatusCompleted
	task.Score = 0
	plan.Tasks = append(plan.Tasks, task)

	svc.adaptDifficulty(plan)

	if plan.PerformanceScore != 80 {
		t.Errorf("performance score = %d, want the 80-point default for a zero score", plan.PerformanceScore)
	}
}

func TestAdaptDifficultyMultiplierBounds(t *testing.T) {
	svc := newTestTaskService()

	t.Run("ceiling", func(t *testing.T) {
		plan := completionPlan()
		task := practiceTask("t1", 1)
		task.Status = models.StatusCompleted
		task.Score = 95
		plan.Tasks = append(plan.Tasks, task)
		plan.DifficultyMultiplier = 1.48

		svc.adaptDifficulty(plan)
		if plan.DifficultyMultiplier != 1.5 {
			t.Errorf("multiplier = %f, want ceiling 1.5", plan.DifficultyMultiplier)
		}
	})

	t.Run("floor", func(t *testing.T) {
		plan := completionPlan()
		task := practiceTask("t1", 1)
		task.Status = models.StatusCompleted
		task.Score = 30
		plan.Tasks = append(plan.Tasks, task)
		plan.DifficultyMultiplier = 0.72

		svc.adaptDifficulty(plan)
		if plan.DifficultyMultiplier != 0.7 {
			t.Errorf("multiplier = %f, want floor 0.7", plan.DifficultyMultiplier)
		}
	})

	t.Run("steady in the middle band", func(t *testing.T) {
		plan := completionPlan()
		task := practiceTask("t1", 1)
		task.Status = models.StatusCompleted
		task.Score = 70
		plan.Tasks = append(plan.Tasks, task)

		svc.adaptDifficulty(plan)
		if plan.DifficultyMultiplier != 1.0 {
			t.Errorf("multiplier = %f, want unchanged 1.0", plan.DifficultyMultiplier)
		}
	})
}

func TestCheckDayStreak(t *testing.T) {
	svc := newTestTaskService()

	t.Run("incomplete day holds the streak", func(t *testing.T) {
		plan := completionPlan(practiceTask("t1", 1), practiceTask("t2", 1))
		svc.applyCompletion(plan, &plan.Tasks[0], 80, "", time.Now())
		if plan.Streak != 0 {
			t.Errorf("streak = %d, want 0 with a task still pending", plan.Streak)
		}
	})

	t.Run("finishing the day clears missed state", func(t *testing.T) {
		plan := completionPlan(practiceTask("t1", 1))
		plan.ConsecutiveMissedDays = 1
		plan.Streak = 3
		plan.LongestStreak = 3

		svc.applyCompletion(plan, &plan.Tasks[0], 80, "", time.Now())

		if plan.Streak != 4 {
			t.Errorf("streak = %d, want 4", plan.Streak)
		}
		if plan.LongestStreak != 4 {
			t.Errorf("longest streak = %d, want 4", plan.LongestStreak)
		}
		if plan.ConsecutiveMissedDays != 0 {
			t.Errorf("consecutive missed = %d, want 0", plan.ConsecutiveMissedDays)
		}
		if plan.PenaltyLevel != models.TierNormal {
			t.Errorf("tier = %s, want normal", plan.PenaltyLevel)
		}
	})

	t.Run("milestone notification", func(t *testing.T) {
		plan := completionPlan(practiceTask("t1", 1))
		plan.Streak = 6

		svc.applyCompletion(plan, &plan.Tasks[0], 80, "", time.Now())

		if plan.Streak != 7 {
			t.Fatalf("streak = %d, want 7", plan.Streak)
		}
		found := false
		for _, n := range plan.Notifications {
			if n.Type == "streak" && strings.Contains(n.Message, "7-day streak") {
				found = true
			}
		}
		if !found {
			t.Error("7-day milestone notification missing")
		}
	})
}

func TestApplyCompletionRevisionRecovers(t *testing.T) {
	svc := newTestTaskService()
	revision := practiceTask("r1", 3)
	revision.Type = models.TaskRevision
	plan := completionPlan(revision)
	plan.ConsecutiveMissedDays = 2
	plan.DisciplineScore = 80
	plan.PenaltyLevel = models.TierWarning

	svc.applyCompletion(plan, &plan.Tasks[0], 80, "", time.Now())

	if plan.ConsecutiveMissedDays != 1 {
		t.Errorf("consecutive missed = %d, want 1 after one recovery", plan.ConsecutiveMissedDays)
	}
	if plan.DisciplineScore != 85 {
		t.Errorf("discipline score = %d, want 85", plan.DisciplineScore)
	}
}

func quizTask(id string, questions []models.QuizQuestion) models.Task {
	task := practiceTask(id, 1)
	task.Difficulty = 4
	task.Quiz = &models.TaskQuiz{Questions: questions, GeneratedAt: time.Now()}
	return task
}

func fiveQuestions() []models.QuizQuestion {
	qs := make([]models.QuizQuestion, 5)
	for i := range qs {
		qs[i] = models.QuizQuestion{
			Question:     "q",
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: i % 4,
			Explanation:  "e",
		}
	}
	return qs
}

func correctAnswers(qs []models.QuizQuestion) []int {
	out := make([]int, len(qs))
	for i, q := range qs {
		out[i] = q.CorrectIndex
	}
	return out
}

func TestApplyQuizSubmissionPass(t *testing.T) {
	svc := newTestTaskService()
	plan := completionPlan(quizTask("t1", fiveQuestions()))
	task := &plan.Tasks[0]
	now := time.Now()

	result := svc.applyQuizSubmission(plan, task, correctAnswers(task.Quiz.Questions), now)

	if !result.Passed {
		t.Fatal("all-correct submission must pass")
	}
	if result.Score != 100 {
		t.Errorf("score = %d, want 100", result.Score)
	}
	if task.Status != models.StatusCompleted {
		t.Errorf("status = %s, want completed", task.Status)
	}
	if task.Score != 100 {
		t.Errorf("task score = %d, want 100", task.Score)
	}
	if plan.TotalCompleted != 1 {
		t.Errorf("total completed = %d, want 1", plan.TotalCompleted)
	}
	// Difficulty 4 earns 20 skill points on a quiz pass.
	if plan.SkillImprovementScore != 20 {
		t.Errorf("skill improvement = %d, want 20", plan.SkillImprovementScore)
	}
	if task.Quiz.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", task.Quiz.Attempts)
	}
	if task.Quiz.LastScore != 100 {
		t.Errorf("last score = %d, want 100", task.Quiz.LastScore)
	}
	if len(result.Results) != 5 {
		t.Fatalf("got %d reviews, want 5", len(result.Results))
	}
	for i, r := range result.Results {
		if !r.IsCorrect {
			t.Errorf("review %d marked incorrect on an all-correct run", i)
		}
	}
}

func TestApplyQuizSubmissionFail(t *testing.T) {
	svc := newTestTaskService()
	plan := completionPlan(quizTask("t1", fiveQuestions()))
	plan.Streak = 3
	task := &plan.Tasks[0]

	// Every answer off by one.
	answers := correctAnswers(task.Quiz.Questions)
	for i := range answers {
		answers[i] = (answers[i] + 1) % 4
	}
	result := svc.applyQuizSubmission(plan, task, answers, time.Now())

	if result.Passed {
		t.Fatal("all-wrong submission must fail")
	}
	if result.Score != 0 {
		t.Errorf("score = %d, want 0", result.Score)
	}
	if task.Status != models.StatusPending {
		t.Errorf("status = %s, want still pending for retry", task.Status)
	}
	if plan.TotalCompleted != 0 {
		t.Errorf("total completed = %d, want 0", plan.TotalCompleted)
	}
	if plan.Streak != 2 {
		t.Errorf("streak = %d, want 2 after the one-point penalty", plan.Streak)
	}
	// Failing a quiz is not missing a day.
	if plan.ConsecutiveMissedDays != 0 {
		t.Errorf("consecutive missed = %d, want untouched 0", plan.ConsecutiveMissedDays)
	}
	if plan.DisciplineScore != 100 {
		t.Errorf("discipline score = %d, want untouched 100", plan.DisciplineScore)
	}
}

func TestApplyQuizSubmissionStreakFloor(t *testing.T) {
	svc := newTestTaskService()
	plan := completionPlan(quizTask("t1", fiveQuestions()))
	task := &plan.Tasks[0]

	svc.applyQuizSubmission(plan, task, []int{-1, -1, -1, -1, -1}, time.Now())
	if plan.Streak != 0 {
		t.Errorf("streak = %d, want floor of 0", plan.Streak)
	}
}

func TestApplyQuizSubmissionBoundary(t *testing.T) {
	svc := newTestTaskService()
	plan := completionPlan(quizTask("t1", fiveQuestions()))
	task := &plan.Tasks[0]

	// Three of five correct lands exactly on the 60-point threshold.
	answers := correctAnswers(task.Quiz.Questions)
	answers[3] = (answers[3] + 1) % 4
	answers[4] = (answers[4] + 1) % 4
	result := svc.applyQuizSubmission(plan, task, answers, time.Now())

	if result.Score != 60 {
		t.Fatalf("score = %d, want 60", result.Score)
	}
	if !result.Passed {
		t.Error("a 60-point score must pass")
	}
}

func TestApplyQuizSubmissionShortAnswers(t *testing.T) {
	svc := newTestTaskService()
	plan := completionPlan(quizTask("t1", fiveQuestions()))
	task := &plan.Tasks[0]

	// Two answers for five questions: the missing three count as wrong.
	answers := correctAnswers(task.Quiz.Questions)[:2]
	result := svc.applyQuizSubmission(plan, task, answers, time.Now())

	if result.Score != 40 {
		t.Errorf("score = %d, want 40", result.Score)
	}
	for i := 2; i < 5; i++ {
		if result.Results[i].YourAnswer != -1 {
			t.Errorf("review %d answer = %d, want -1 for unanswered", i, result.Results[i].YourAnswer)
		}
		if result.Results[i].IsCorrect {
			t.Errorf("review %d marked correct without an answer", i)
		}
	}
}

func TestApplyQuizSubmissionAttemptsAccumulate(t *testing.T) {
	svc := newTestTaskService()
	plan := completionPlan(quizTask("t1", fiveQuestions()))
	task := &plan.Tasks[0]

	wrong := []int{-1, -1, -1, -1, -1}
	svc.applyQuizSubmission(plan, task, wrong, time.Now())
	svc.applyQuizSubmission(plan, task, wrong, time.Now())
	svc.applyQuizSubmission(plan, task, correctAnswers(task.Quiz.Questions), time.Now())

	if task.Quiz.Attempts != 3 {
		t.Errorf("attempts = %d, want 3", task.Quiz.Attempts)
	}
	if task.Status != models.StatusCompleted {
		t.Errorf("status = %s, want completed after the passing retry", task.Status)
	}
}
