package quizbank

import (
	"math/rand"
	"strings"
	"time"

	"skillsync/internal/models"
)

type entry struct {
	q string
	o []string
	a int
}

// Topic pools. Topic match is a lowercase substring test of the pool key
// inside the requested topic, so "React Hooks" lands on the react pool.
var pools = map[string][]entry{
	"html": {
		{"What does HTML stand for?", []string{"Hyper Text Markup Language", "Hyperlinks and Text Markup Language", "Home Tool Markup Language", "Hyper Text Makeup Language"}, 0},
		{"Which tag is used for the largest heading?", []string{"<h6>", "<head>", "<h1>", "<header>"}, 2},
		{"Which attribute specifies an image source?", []string{"alt", "src", "href", "link"}, 1},
		{"Which tag defines an unordered list?", []string{"<ol>", "<ul>", "<li>", "<list>"}, 1},
		{"What is the correct HTML element for inserting a line break?", []string{"<lb>", "<break>", "<br>", "<newline>"}, 2},
	},
	"css": {
		{"What does CSS stand for?", []string{"Cascading Style Sheets", "Creative Style Sheets", "Computer Style Sheets", "Colorful Style Sheets"}, 0},
		{"Which property is used to change the background color?", []string{"color", "bgcolor", "background-color", "background"}, 2},
		{"How do you select an element with id \"demo\"?", []string{".demo", "#demo", "*demo", "demo"}, 1},
		{"Which property controls the text size?", []string{"font-style", "text-size", "font-size", "text-style"}, 2},
		{"How do you make a list that lists its items with squares?", []string{"list-type: square", "list-style-type: square", "list: square", "list-s: square"}, 1},
	},
	"javascript": {
		{"Inside which HTML element do we put the JavaScript?", []string{"<javascript>", "<scripting>", "<js>", "<script>"}, 3},
		{"How do you write \"Hello World\" in an alert box?", []string{"msg(\"Hello World\");", "alert(\"Hello World\");", "msgBox(\"Hello World\");", "alertBox(\"Hello World\");"}, 1},
		{"How do you create a function in JavaScript?", []string{"function = myFunction()", "function myFunction()", "function:myFunction()", "create myFunction()"}, 1},
		{"How do you call a function named \"myFunction\"?", []string{"call myFunction()", "call function myFunction()", "myFunction()", "Run.myFunction()"}, 2},
		{"How to write an IF statement in JavaScript?", []string{"if i = 5 then", "if i == 5 then", "if (i == 5)", "if i = 5"}, 2},
	},
	"react": {
		{"What is a React Component?", []string{"A function that returns HTML", "A class that extends HTML", "A CSS file", "A database model"}, 0},
		{"Which hook is used for state management?", []string{"useEffect", "useState", "useContext", "useReducer"}, 1},
		{"What is the virtual DOM?", []string{"A direct copy of the real DOM", "A lightweight copy of the DOM", "A separate browser window", "A server-side process"}, 1},
		{"How do you pass data to a child component?", []string{"State", "Props", "Context", "Redux"}, 1},
		{"What is JSX?", []string{"JavaScript XML", "Java Syntax Extension", "JSON XML", "JavaScript Extension"}, 0},
	},
	"node": {
		{"What is Node.js?", []string{"A frontend framework", "A database", "A JavaScript runtime environment", "A text editor"}, 2},
		{"Which module is used to create a web server?", []string{"http", "fs", "url", "path"}, 0},
		{"How do you install a package using NPM?", []string{"npm get <package>", "npm install <package>", "npm download <package>", "npm add <package>"}, 1},
		{"What is callback hell?", []string{"Excessive nesting of callbacks", "A failed API call", "A database error", "A syntax error"}, 0},
		{"Which object is global in Node.js?", []string{"window", "document", "process", "navigator"}, 2},
	},
	"python": {
		{"What is the correct file extension for Python files?", []string{".pt", ".pyt", ".py", ".p"}, 2},
		{"How do you create a variable with the numeric value 5?", []string{"x = 5", "x = int(5)", "int x = 5", "Both A and B"}, 3},
		{"Which method returns a string without whitespace at the beginning or the end?", []string{"trim()", "strip()", "len()", "ptrim()"}, 1},
		{"Which collection is ordered, changeable, and allows duplicate members?", []string{"List", "Tuple", "Set", "Dictionary"}, 0},
		{"How do you start a for loop?", []string{"for x in y:", "for x in y", "forEach x in y:", "for x loop y:"}, 0},
	},
	"sql": {
		{"What does SQL stand for?", []string{"Structured Question Language", "Structured Query Language", "Strong Question Language", "Structured Query List"}, 1},
		{"Which statement is used to extract data from a database?", []string{"GET", "OPEN", "EXTRACT", "SELECT"}, 3},
		{"Which statement is used to update data in a database?", []string{"SAVE", "MODIFY", "UPDATE", "CHANGE"}, 2},
		{"Which statement is used to delete data from a database?", []string{"REMOVE", "DELETE", "COLLAPSE", "DROP"}, 1},
		{"Which operator is used to select values within a range?", []string{"BETWEEN", "RANGE", "WITHIN", "IN"}, 0},
	},
	"git": {
		{"What connects a local repo to a remote one?", []string{"git push", "git remote add origin", "git clone", "git pull"}, 1},
		{"Which command creates a new branch?", []string{"git branch <name>", "git checkout -b <name>", "Both A and B", "git create <name>"}, 2},
		{"What is a \"commit\"?", []string{"Sending code to server", "Saving code changes locally", "Deleting code", "Merging branches"}, 1},
		{"Which command downloads dependencies?", []string{"git install", "npm install", "python install", "make install"}, 1},
		{"What does \"git pull\" do?", []string{"Uploads changes", "Downloads and merges changes", "Deletes local changes", "Creates a backup"}, 1},
	},
}

// poolOrder fixes the lookup order so topics matching several keys (for
// example "HTML/CSS") always resolve to the same pool.
var poolOrder = []string{"html", "css", "javascript", "react", "node", "python", "sql", "git"}

// Fallback pool for topics without a dedicated bank.
var generic = []entry{
	{"What is the primary goal of this topic?", []string{"To confuse developers", "To solve a specific problem efficiently", "To increase code complexity", "To use more memory"}, 1},
	{"Which is a best practice regarding this topic?", []string{"Write code quickly without testing", "Keep code modular and readable", "Use copy-paste exclusively", "Ignore documentation"}, 1},
	{"Why is testing important?", []string{"It slows down development", "It ensures code reliability", "It is optional", "It checks spelling"}, 1},
	{"What is the first step in debugging?", []string{"Rewrite the whole code", "Blame the compiler", "Reproduce the issue", "Ask on StackOverflow immediately"}, 2},
	{"Why use version control?", []string{"To look cool", "To track changes and collaborate", "To use more disk space", "To slow down deployment"}, 1},
}

const defaultExplanation = "Review the topic documentation for more details."

// Bank generates fixed-size shuffled question sets from the static pools.
// It owns its random source so tests can seed it.
type Bank struct {
	rand *rand.Rand
}

func NewBank() *Bank {
	return &Bank{rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func NewBankWithSource(src rand.Source) *Bank {
	return &Bank{rand: rand.New(src)}
}

// Generate returns count shuffled questions for the topic, falling back to
// the generic pool when no topic key matches. The pool is copied before
// shuffling; the catalog itself never mutates.
func (b *Bank) Generate(topic string, count int) []models.QuizQuestion {
	lower := strings.ToLower(topic)
	pool := generic
	for _, key := range poolOrder {
		if strings.Contains(lower, key) {
			pool = pools[key]
			break
		}
	}

	shuffled := make([]entry, len(pool))
	copy(shuffled, pool)
	b.rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if count > len(shuffled) {
		count = len(shuffled)
	}
	out := make([]models.QuizQuestion, 0, count)
	for _, e := range shuffled[:count] {
		out = append(out, models.QuizQuestion{
			Question:     e.q,
			Options:      e.o,
			CorrectIndex: e.a,
			Explanation:  defaultExplanation,
		})
	}
	return out
}
