package llm

import (
	_ "embed"
	"strings"
)

// Template names.
const (
	PromptCoverLetter      = "cover_letter"
	PromptIndustryInsights = "industry_insights"
	PromptInterviewQuiz    = "interview_quiz"
	PromptImprovementTip   = "improvement_tip"
)

var (
	//go:embed prompts/cover_letter.txt
	promptCoverLetter string
	//go:embed prompts/industry_insights.txt
	promptIndustryInsights string
	//go:embed prompts/interview_quiz.txt
	promptInterviewQuiz string
	//go:embed prompts/improvement_tip.txt
	promptImprovementTip string
)

// PromptTemplate returns the template text and whether the name was recognized.
func PromptTemplate(name string) (string, bool) {
	switch name {
	case PromptCoverLetter:
		return promptCoverLetter, true
	case PromptIndustryInsights:
		return promptIndustryInsights, true
	case PromptInterviewQuiz:
		return promptInterviewQuiz, true
	case PromptImprovementTip:
		return promptImprovementTip, true
	default:
		return "", false
	}
}

// Render fills {{KEY}} tokens in the named template. Values are inserted
// verbatim in a single pass, so tokens inside values are not expanded.
// Unknown names render as an empty string.
func Render(name string, vars map[string]string) string {
	tmpl, ok := PromptTemplate(name)
	if !ok {
		return ""
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.TrimSpace(strings.NewReplacer(pairs...).Replace(tmpl))
}
