package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"skillsync/internal/discipline"
	"skillsync/internal/models"
	"skillsync/internal/quizbank"
	"skillsync/internal/repository"
)

const (
	defaultTaskScore  = 80
	quizQuestionCount = 5
	quizPassThreshold = 60
	performanceWindow = 10
	multiplierStep    = 0.05
	multiplierFloor   = 0.7
	multiplierCeiling = 1.5
	raiseDifficultyAt = 85
	lowerDifficultyAt = 60
)

// Streak checkpoints that earn a milestone notification.
var streakMilestones = map[int]bool{7: true, 14: true, 30: true, 60: true, 90: true}

// TaskService runs the task-level state transitions: direct completion with
// adaptive difficulty, and the quiz-gated completion protocol.
type TaskService struct {
	repo  *repository.PlanRepository
	bank  *quizbank.Bank
	disc  *discipline.Manager
	locks *PlanLocks
}

func NewTaskService(repo *repository.PlanRepository, locks *PlanLocks) *TaskService {
	return &TaskService{
		repo:  repo,
		bank:  quizbank.NewBank(),
		disc:  discipline.NewManager(),
		locks: locks,
	}
}

type CompleteTaskResult struct {
	Task *models.Task     `json:"task"`
	Plan *models.GoalPlan `json:"plan"`
}

// CompleteTask is the direct (non-quiz) completion path.
func (s *TaskService) CompleteTask(ctx context.Context, userID, taskID string, score *int, notes string) (*CompleteTaskResult, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	plan, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrNoPlan
	}
	task := plan.TaskByID(taskID)
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if task.Status == models.StatusCompleted {
		return nil, ErrTaskCompleted
	}

	taskScore := defaultTaskScore
	if score != nil {
		taskScore = *score
	}
	s.applyCompletion(plan, task, taskScore, notes, time.Now())

	if err := s.repo.Save(ctx, plan); err != nil {
		return nil, err
	}
	return &CompleteTaskResult{Task: task, Plan: plan}, nil
}

// applyCompletion runs the whole direct-completion protocol on the
// in-memory plan: status flip, discipline recovery for revision tasks,
// rolling-performance adaptation, skill scoring, and the day-streak check.
func (s *TaskService) applyCompletion(plan *models.GoalPlan, task *models.Task, score int, notes string, now time.Time) {
	task.Status = models.StatusCompleted
	task.CompletedAt = &now
	task.Score = min(100, max(0, score))
	task.Notes = notes
	plan.TotalCompleted++

	if task.Type == models.TaskRevision {
		s.disc.RecoverWithRevision(plan)
	}

	s.adaptDifficulty(plan)

	weight, ok := models.TypeWeights[task.Type]
	if !ok {
		weight = 1
	}
	plan.SkillImprovementScore += int(math.Round(float64(task.Score) / 100 * weight * 10))

	s.checkDayStreak(plan)
	plan.RecalcCompletionRate()
}

// adaptDifficulty recomputes the rolling performance score over the last
// ten completed tasks and nudges the difficulty multiplier. A stored zero
// score counts as the 80-point default.
func (s *TaskService) adaptDifficulty(plan *models.GoalPlan) {
	var scores []int
	for _, t := range plan.Tasks {
		if t.Status == models.StatusCompleted {
			sc := t.Score
			if sc == 0 {
				sc = defaultTaskScore
			}
			scores = append(scores, sc)
		}
	}
	if len(scores) == 0 {
		return
	}
	if len(scores) > performanceWindow {
		scores = scores[len(scores)-performanceWindow:]
	}
	sum := 0
	for _, sc := range scores {
		sum += sc
	}
	avg := float64(sum) / float64(len(scores))
	plan.PerformanceScore = int(math.Round(avg))

	if avg >= raiseDifficultyAt {
		plan.DifficultyMultiplier = math.Min(multiplierCeiling, plan.DifficultyMultiplier+multiplierStep)
	} else if avg < lowerDifficultyAt {
		plan.DifficultyMultiplier = math.Max(multiplierFloor, plan.DifficultyMultiplier-multiplierStep)
	}
}

// checkDayStreak increments the streak when every compulsory task of the
// current day is completed, and clears the missed-day state.
func (s *TaskService) checkDayStreak(plan *models.GoalPlan) {
	allDone := true
	seen := false
	for _, t := range plan.Tasks {
		if t.Day != plan.CurrentDay || !t.IsCompulsory {
			continue
		}
		seen = true
		if t.Status != models.StatusCompleted {
			allDone = false
			break
		}
	}
	if !seen || !allDone {
		return
	}

	plan.Streak++
	if plan.Streak > plan.LongestStreak {
		plan.LongestStreak = plan.Streak
	}
	plan.ConsecutiveMissedDays = 0
	plan.PenaltyLevel = models.TierNormal
	if streakMilestones[plan.Streak] {
		plan.Notify("streak", fmt.Sprintf("🔥 %d-day streak! You're on fire! Discipline Score: %d/100", plan.Streak, plan.DisciplineScore))
	}
}

// QuestionView is a quiz question with the answer key stripped.
type QuestionView struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type StartQuizResult struct {
	AlreadyCompleted bool           `json:"already_completed"`
	Questions        []QuestionView `json:"questions,omitempty"`
	Attempts         int            `json:"attempts"`
}

// StartTaskQuiz generates a task's quiz on first call and returns the
// questions without correct indexes or explanations. Calling it on a
// completed task is not an error, just a signal.
func (s *TaskService) StartTaskQuiz(ctx context.Context, userID, taskID string) (*StartQuizResult, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	plan, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrNoPlan
	}
	task := plan.TaskByID(taskID)
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if task.Status == models.StatusCompleted {
		return &StartQuizResult{AlreadyCompleted: true}, nil
	}

	if task.Quiz == nil {
		topic := task.Title
		if len(task.Skills) > 0 {
			topic = task.Skills[0]
		}
		task.Quiz = &models.TaskQuiz{
			Questions:   s.bank.Generate(topic, quizQuestionCount),
			GeneratedAt: time.Now(),
		}
		if err := s.repo.Save(ctx, plan); err != nil {
			return nil, err
		}
	}

	views := make([]QuestionView, 0, len(task.Quiz.Questions))
	for _, q := range task.Quiz.Questions {
		views = append(views, QuestionView{Question: q.Question, Options: q.Options})
	}
	return &StartQuizResult{Questions: views, Attempts: task.Quiz.Attempts}, nil
}

type AnswerReview struct {
	Question     string `json:"question"`
	YourAnswer   int    `json:"your_answer"`
	CorrectIndex int    `json:"correct_index"`
	IsCorrect    bool   `json:"is_correct"`
	Explanation  string `json:"explanation"`
}

type SubmitQuizResult struct {
	Passed  bool           `json:"passed"`
	Score   int            `json:"score"`
	Results []AnswerReview `json:"results"`
	Streak  int            `json:"streak"`
}

// SubmitTaskQuiz scores the attempt. Passing completes the task; failing
// costs one streak point and leaves the task open for retry. Quiz failure
// never touches the discipline track; failing is not missing.
func (s *TaskService) SubmitTaskQuiz(ctx context.Context, userID, taskID string, answers []int) (*SubmitQuizResult, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	plan, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrNoPlan
	}
	task := plan.TaskByID(taskID)
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if task.Status == models.StatusCompleted {
		return nil, ErrTaskCompleted
	}
	if task.Quiz == nil {
		return nil, ErrQuizNotStarted
	}

	result := s.applyQuizSubmission(plan, task, answers, time.Now())

	if err := s.repo.Save(ctx, plan); err != nil {
		return nil, err
	}
	return result, nil
}

// applyQuizSubmission is the pure core of the submit path.
func (s *TaskService) applyQuizSubmission(plan *models.GoalPlan, task *models.Task, answers []int, now time.Time) *SubmitQuizResult {
	quiz := task.Quiz
	quiz.Attempts++

	correct := 0
	reviews := make([]AnswerReview, 0, len(quiz.Questions))
	for i, q := range quiz.Questions {
		answer := -1
		if i < len(answers) {
			answer = answers[i]
		}
		isCorrect := answer == q.CorrectIndex
		if isCorrect {
			correct++
		}
		reviews = append(reviews, AnswerReview{
			Question:     q.Question,
			YourAnswer:   answer,
			CorrectIndex: q.CorrectIndex,
			IsCorrect:    isCorrect,
			Explanation:  q.Explanation,
		})
	}

	score := 0
	if len(quiz.Questions) > 0 {
		score = int(math.Round(float64(correct) / float64(len(quiz.Questions)) * 100))
	}
	quiz.LastScore = score
	passed := score >= quizPassThreshold

	if passed {
		task.Status = models.StatusCompleted
		task.CompletedAt = &now
		task.Score = score
		plan.TotalCompleted++
		plan.SkillImprovementScore += task.Difficulty * 5
		s.checkDayStreak(plan)
	} else if plan.Streak > 0 {
		plan.Streak--
	}

	plan.RecalcCompletionRate()

	return &SubmitQuizResult{
		Passed:  passed,
		Score:   score,
		Results: reviews,
		Streak:  plan.Streak,
	}
}
