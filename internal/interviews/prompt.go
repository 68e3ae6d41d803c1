package interviews

import (
	"fmt"
	"strconv"
	"strings"

	"career-coach-backend/internal/llm"
	"career-coach-backend/internal/shared/util"
	"career-coach-backend/internal/users"
)

// BuildQuizPrompt asks for QuizSize questions tailored to the profile.
func BuildQuizPrompt(user users.User) string {
	expertise := ""
	if skills := util.CleanList(user.Skills); len(skills) > 0 {
		expertise = " with expertise in " + strings.Join(skills, ", ")
	}
	return llm.Render(llm.PromptInterviewQuiz, map[string]string{
		"COUNT":     strconv.Itoa(QuizSize),
		"INDUSTRY":  util.Placeholder(user.Industry, "N/A"),
		"EXPERTISE": expertise,
	})
}

// BuildTipPrompt lists the missed questions for the improvement tip.
func BuildTipPrompt(industry string, wrong []QuestionResult) string {
	blocks := make([]string, 0, len(wrong))
	for _, r := range wrong {
		blocks = append(blocks, fmt.Sprintf("Question: %q\nCorrect Answer: %q\nUser Answer: %q", r.Question, r.Answer, r.UserAnswer))
	}
	return llm.Render(llm.PromptImprovementTip, map[string]string{
		"INDUSTRY":      util.Placeholder(industry, "N/A"),
		"WRONG_ANSWERS": strings.Join(blocks, "\n\n"),
	})
}
