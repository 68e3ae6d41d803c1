package interviews

import "time"

const (
	CategoryTechnical = "Technical"
	QuizSize          = 10
)

type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Quiz is the generated question batch with its provenance.
type Quiz struct {
	Questions []Question `json:"questions"`
	Source    string     `json:"source"`
}

type QuestionResult struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	UserAnswer  string `json:"userAnswer"`
	IsCorrect   bool   `json:"isCorrect"`
	Explanation string `json:"explanation"`
}

// Assessment is a graded quiz attempt. It is immutable once stored.
type Assessment struct {
	ID             string           `json:"id"`
	UserID         string           `json:"userId"`
	QuizScore      float64          `json:"quizScore"`
	Questions      []QuestionResult `json:"questions"`
	Category       string           `json:"category"`
	ImprovementTip *string          `json:"improvementTip"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// Submission is a completed quiz sent for grading.
type Submission struct {
	Questions []Question `json:"questions" validate:"required,min=1,dive"`
	Answers   []string   `json:"answers" validate:"required,min=1"`
}
