package coverletters

import (
	"strconv"
	"strings"

	"career-coach-backend/internal/llm"
	"career-coach-backend/internal/shared/util"
	"career-coach-backend/internal/users"
)

const fallbackTemplate = `Dear Hiring Manager,

I am excited to apply for the {{JOB_TITLE}} role at {{COMPANY_NAME}}. With {{EXPERIENCE}} years of experience and strengths in {{SKILLS}}, I believe I can contribute meaningfully to your team.

In my recent work, I have delivered measurable outcomes through collaboration, ownership, and continuous improvement. I am particularly drawn to this opportunity because it aligns with my background in {{INDUSTRY}} and my interest in driving impact for {{COMPANY_NAME}}.

Highlights:

- Built solutions that improved efficiency and customer outcomes.
- Communicated clearly with cross-functional partners to deliver on goals.
- Continuously learned new tools and best practices to raise quality.

I would welcome the opportunity to discuss how my skills can support {{COMPANY_NAME}}. Thank you for your time and consideration.

Sincerely,
{{NAME}}`

const fallbackSkillCount = 5

// sanitize trims and bounds the request fields.
func sanitize(req Request) Request {
	return Request{
		JobTitle:       util.Truncate(req.JobTitle, MaxTitleLength),
		CompanyName:    util.Truncate(req.CompanyName, MaxCompanyLength),
		JobDescription: util.Truncate(req.JobDescription, MaxDescriptionLength),
	}
}

// BuildPrompt assembles the provider prompt from a sanitized request.
func BuildPrompt(user users.User, req Request) string {
	return llm.Render(llm.PromptCoverLetter, map[string]string{
		"JOB_TITLE":       req.JobTitle,
		"COMPANY_NAME":    req.CompanyName,
		"INDUSTRY":        util.Placeholder(user.Industry, "N/A"),
		"EXPERIENCE":      experienceOr(user.Experience, "N/A"),
		"SKILLS":          strings.Join(util.CleanList(user.Skills), ", "),
		"BIO":             strings.TrimSpace(user.Bio),
		"JOB_DESCRIPTION": req.JobDescription,
	})
}

// BuildFallback fills the static letter template. Identical inputs give
// byte-identical output.
func BuildFallback(user users.User, req Request) string {
	skills := util.CleanList(user.Skills)
	if len(skills) > fallbackSkillCount {
		skills = skills[:fallbackSkillCount]
	}
	skillText := strings.Join(skills, ", ")
	if skillText == "" {
		skillText = "a broad set of skills"
	}
	return strings.NewReplacer(
		"{{JOB_TITLE}}", req.JobTitle,
		"{{COMPANY_NAME}}", req.CompanyName,
		"{{EXPERIENCE}}", experienceOr(user.Experience, "relevant"),
		"{{SKILLS}}", skillText,
		"{{INDUSTRY}}", util.Placeholder(strings.TrimSpace(user.Industry), "the industry"),
		"{{NAME}}", util.Placeholder(strings.TrimSpace(user.Name), "Candidate"),
	).Replace(fallbackTemplate)
}

func experienceOr(exp *int, def string) string {
	if exp == nil {
		return def
	}
	return strconv.Itoa(*exp)
}
