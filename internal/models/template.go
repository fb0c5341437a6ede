package models

import "sort"

// TypeWeight is one branch of a level's task-type mix. The mix is kept as an
// ordered slice so the cumulative-probability draw is reproducible under a
// fixed random source.
type TypeWeight struct {
	Type   TaskType
	Weight float64
}

// LevelPlan describes how one proficiency level of a goal is scheduled.
type LevelPlan struct {
	Ratio     float64
	Focus     []string
	TaskTypes []TypeWeight
}

type SkillDetail struct {
	Name        string `bson:"name" json:"name"`
	Proficiency int    `bson:"proficiency" json:"proficiency"`
	Category    string `bson:"category" json:"category"`
}

// GoalTemplate is a static goal archetype: the skill list the plan draws
// from, the foundation skills injected into the student profile, and the
// per-level scheduling rows.
type GoalTemplate struct {
	Category     string
	Skills       []string
	SkillDetails []SkillDetail
	Levels       map[Level]LevelPlan
}

// StandardRatios is the fixed level partition shared by every template.
var StandardRatios = map[Level]float64{
	LevelBeginner:     0.25,
	LevelIntermediate: 0.30,
	LevelAdvanced:     0.25,
	LevelProfessional: 0.20,
}

// StandardMixes are the task-type mixes shared by every catalog template:
// concept heavy at the start, project heavy at the end.
var StandardMixes = map[Level][]TypeWeight{
	LevelBeginner:     {{TaskConcept, 0.5}, {TaskPractice, 0.35}, {TaskProject, 0.1}, {TaskAssessment, 0.05}},
	LevelIntermediate: {{TaskConcept, 0.35}, {TaskPractice, 0.35}, {TaskProject, 0.2}, {TaskAssessment, 0.1}},
	LevelAdvanced:     {{TaskConcept, 0.25}, {TaskPractice, 0.30}, {TaskProject, 0.30}, {TaskAssessment, 0.15}},
	LevelProfessional: {{TaskConcept, 0.15}, {TaskPractice, 0.20}, {TaskProject, 0.45}, {TaskAssessment, 0.20}},
}

var (
	beginnerMix     = StandardMixes[LevelBeginner]
	intermediateMix = StandardMixes[LevelIntermediate]
	advancedMix     = StandardMixes[LevelAdvanced]
	professionalMix = StandardMixes[LevelProfessional]
)

// GoalTemplates is the goal archetype catalog. Loaded once, never mutated,
// safe to share across requests.
var GoalTemplates = map[string]GoalTemplate{
	"Frontend Developer": {
		Category: "Frontend",
		Skills:   []string{"HTML", "CSS", "JavaScript", "React", "TypeScript", "Git", "REST APIs", "Tailwind CSS", "Testing", "Deployment"},
		SkillDetails: []SkillDetail{
			{Name: "HTML", Proficiency: 1, Category: "Frontend"},
			{Name: "CSS", Proficiency: 1, Category: "Frontend"},
			{Name: "JavaScript", Proficiency: 1, Category: "Programming"},
			{Name: "React", Proficiency: 1, Category: "Frontend"},
			{Name: "Git", Proficiency: 1, Category: "Tools"},
		},
		Levels: map[Level]LevelPlan{
			LevelBeginner:     {Ratio: 0.25, Focus: []string{"HTML", "CSS", "JavaScript basics"}, TaskTypes: beginnerMix},
			LevelIntermediate: {Ratio: 0.30, Focus: []string{"JavaScript advanced", "DOM", "Git", "REST APIs"}, TaskTypes: intermediateMix},
			LevelAdvanced:     {Ratio: 0.25, Focus: []string{"React", "React Hooks", "TypeScript", "Tailwind CSS"}, TaskTypes: advancedMix},
			LevelProfessional: {Ratio: 0.20, Focus: []string{"Testing", "Deployment", "Performance", "Portfolio Projects"}, TaskTypes: professionalMix},
		},
	},
	"Data Analyst": {
		Category: "Data Science",
		Skills:   []string{"Python", "Pandas", "NumPy", "SQL", "Data Visualization", "Statistics", "Excel", "Power BI", "EDA", "ML Basics"},
		SkillDetails: []SkillDetail{
			{Name: "Python", Proficiency: 1, Category: "Programming"},
			{Name: "SQL", Proficiency: 1, Category: "Database"},
			{Name: "Excel", Proficiency: 1, Category: "Tools"},
			{Name: "Statistics", Proficiency: 1, Category: "Data Science"},
			{Name: "Data Visualization", Proficiency: 1, Category: "Data Science"},
		},
		Levels: map[Level]LevelPlan{
			LevelBeginner:     {Ratio: 0.25, Focus: []string{"Python basics", "Excel", "SQL fundamentals"}, TaskTypes: beginnerMix},
			LevelIntermediate: {Ratio: 0.30, Focus: []string{"Pandas", "NumPy", "SQL advanced", "Statistics"}, TaskTypes: intermediateMix},
			LevelAdvanced:     {Ratio: 0.25, Focus: []string{"Data Viz", "Power BI", "EDA", "Storytelling"}, TaskTypes: advancedMix},
			LevelProfessional: {Ratio: 0.20, Focus: []string{"ML Basics", "Real Datasets", "Dashboard Projects"}, TaskTypes: professionalMix},
		},
	},
	"Backend Developer": {
		Category: "Backend",
		Skills:   []string{"Node.js", "Express", "MongoDB", "REST API Design", "Authentication", "SQL", "System Design", "Docker", "Testing", "Cloud"},
		SkillDetails: []SkillDetail{
			{Name: "Node.js", Proficiency: 1, Category: "Backend"},
			{Name: "Express", Proficiency: 1, Category: "Backend"},
			{Name: "MongoDB", Proficiency: 1, Category: "Database"},
			{Name: "SQL", Proficiency: 1, Category: "Database"},
			{Name: "Git", Proficiency: 1, Category: "Tools"},
		},
		Levels: map[Level]LevelPlan{
			LevelBeginner:     {Ratio: 0.25, Focus: []string{"Node.js basics", "HTTP", "Express"}, TaskTypes: beginnerMix},
			LevelIntermediate: {Ratio: 0.30, Focus: []string{"MongoDB", "REST API Design", "Authentication"}, TaskTypes: intermediateMix},
			LevelAdvanced:     {Ratio: 0.25, Focus: []string{"SQL", "System Design", "Testing"}, TaskTypes: advancedMix},
			LevelProfessional: {Ratio: 0.20, Focus: []string{"Docker", "Cloud", "Performance", "Production Apps"}, TaskTypes: professionalMix},
		},
	},
	"Full Stack Developer": {
		Category: "Full Stack",
		Skills:   []string{"HTML/CSS", "JavaScript", "React", "Node.js", "Express", "MongoDB", "Git", "REST APIs", "Auth", "Deployment"},
		SkillDetails: []SkillDetail{
			{Name: "JavaScript", Proficiency: 1, Category: "Programming"},
			{Name: "React", Proficiency: 1, Category: "Frontend"},
			{Name: "Node.js", Proficiency: 1, Category: "Backend"},
			{Name: "MongoDB", Proficiency: 1, Category: "Database"},
			{Name: "Git", Proficiency: 1, Category: "Tools"},
		},
		Levels: map[Level]LevelPlan{
			LevelBeginner:     {Ratio: 0.25, Focus: []string{"HTML/CSS", "JS basics", "Git"}, TaskTypes: beginnerMix},
			LevelIntermediate: {Ratio: 0.30, Focus: []string{"React", "Node.js", "Express", "MongoDB"}, TaskTypes: intermediateMix},
			LevelAdvanced:     {Ratio: 0.25, Focus: []string{"Full Stack App", "Auth", "REST APIs"}, TaskTypes: advancedMix},
			LevelProfessional: {Ratio: 0.20, Focus: []string{"Deployment", "CI/CD", "Portfolio", "Open Source"}, TaskTypes: professionalMix},
		},
	},
	"Data Scientist": {
		Category: "AI/ML",
		Skills:   []string{"Python", "Statistics", "Pandas", "Scikit-Learn", "Machine Learning", "Deep Learning", "NLP", "Model Deployment", "Feature Engineering", "Research"},
		SkillDetails: []SkillDetail{
			{Name: "Python", Proficiency: 1, Category: "Programming"},
			{Name: "Statistics", Proficiency: 1, Category: "Data Science"},
			{Name: "Machine Learning", Proficiency: 1, Category: "AI/ML"},
			{Name: "Pandas", Proficiency: 1, Category: "Data Science"},
			{Name: "Deep Learning", Proficiency: 1, Category: "AI/ML"},
		},
		Levels: map[Level]LevelPlan{
			LevelBeginner:     {Ratio: 0.25, Focus: []string{"Python", "Statistics", "Math foundations"}, TaskTypes: beginnerMix},
			LevelIntermediate: {Ratio: 0.30, Focus: []string{"Pandas", "Scikit-Learn", "ML algorithms"}, TaskTypes: intermediateMix},
			LevelAdvanced:     {Ratio: 0.25, Focus: []string{"Deep Learning", "NLP", "Feature Engineering"}, TaskTypes: advancedMix},
			LevelProfessional: {Ratio: 0.20, Focus: []string{"Model Deployment", "Research Papers", "Kaggle"}, TaskTypes: professionalMix},
		},
	},
}

// TemplateSummary is the catalog listing shape returned to clients.
type TemplateSummary struct {
	Name         string        `json:"name"`
	Category     string        `json:"category"`
	Skills       []string      `json:"skills"`
	SkillDetails []SkillDetail `json:"skill_details"`
	Levels       []Level       `json:"levels"`
}

func TemplateSummaries() []TemplateSummary {
	names := make([]string, 0, len(GoalTemplates))
	for name := range GoalTemplates {
		names = append(names, name)
	}
	// Stable listing order for clients.
	sort.Strings(names)
	out := make([]TemplateSummary, 0, len(names))
	for _, name := range names {
		t := GoalTemplates[name]
		out = append(out, TemplateSummary{
			Name:         name,
			Category:     t.Category,
			Skills:       t.Skills,
			SkillDetails: t.SkillDetails,
			Levels:       Levels,
		})
	}
	return out
}
