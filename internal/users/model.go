package users

import "time"

// User is a profile row. ID is the internal owner id referenced by
// generated artifacts; Subject is the identity-provider subject.
type User struct {
	ID         string    `json:"id"`
	Subject    string    `json:"-"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	Industry   string    `json:"industry,omitempty"`
	Experience *int      `json:"experience,omitempty"`
	Skills     []string  `json:"skills"`
	Bio        string    `json:"bio,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Identity is what the identity provider knows about the caller.
type Identity struct {
	Subject  string
	Email    string
	Name     string
	ImageURL string
}

// Profile holds the user-editable career fields.
type Profile struct {
	Industry   string   `json:"industry" validate:"required,max=120"`
	Experience *int     `json:"experience" validate:"omitempty,min=0,max=60"`
	Skills     []string `json:"skills" validate:"max=50,dive,max=80"`
	Bio        string   `json:"bio" validate:"max=2000"`
}
