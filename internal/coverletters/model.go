package coverletters

import "time"

const StatusCompleted = "completed"

// Input bounds in runes, applied after trimming.
const (
	MaxTitleLength       = 120
	MaxCompanyLength     = 120
	MaxDescriptionLength = 4000
)

type CoverLetter struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Content        string    `json:"content"`
	JobDescription string    `json:"jobDescription"`
	CompanyName    string    `json:"companyName"`
	JobTitle       string    `json:"jobTitle"`
	Status         string    `json:"status"`
	Source         string    `json:"source"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type Request struct {
	JobTitle       string `json:"jobTitle" validate:"required"`
	CompanyName    string `json:"companyName" validate:"required"`
	JobDescription string `json:"jobDescription"`
}
