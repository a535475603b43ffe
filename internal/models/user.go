package models

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// User represents the single authenticated identity held by the session
// container. At most one User exists at a time.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// LoginRequest represents the credentials for a mock login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents the data needed to register a new user
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// ProfileUpdate carries partial profile fields. Nil fields are left
// untouched by the merge.
type ProfileUpdate struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// Validate validates the login credentials
func (req *LoginRequest) Validate() error {
	if req.Email == "" {
		return NewValidationError("email", "email is required")
	}

	if req.Password == "" {
		return NewValidationError("password", "password is required")
	}

	if len(req.Password) < 6 {
		return NewValidationError("password", "password must be at least 6 characters long")
	}

	return nil
}

// Validate validates the registration data
func (req *RegisterRequest) Validate() error {
	if req.Name == "" {
		return NewValidationError("name", "name is required")
	}

	if req.Email == "" {
		return NewValidationError("email", "email is required")
	}

	if req.Password == "" {
		return NewValidationError("password", "password is required")
	}

	if len(req.Password) < 6 {
		return NewValidationError("password", "password must be at least 6 characters long")
	}

	if !strings.Contains(req.Email, "@") {
		return NewValidationError("email", "email format is invalid")
	}

	return nil
}

// Apply merges the non-nil fields of the update into the user
func (u *User) Apply(update ProfileUpdate) {
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	if update.Avatar != nil {
		u.Avatar = *update.Avatar
	}
}

// GenerateUserID generates a fresh identity id
func GenerateUserID() string {
	return "user-" + uuid.NewString()
}

// DisplayNameFromEmail derives a display name from the local part of an
// email address, so a mock login without a registration still gets a
// plausible name.
func DisplayNameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

// AvatarURL returns a generated avatar image URL for a display name
func AvatarURL(name string) string {
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random", url.QueryEscape(name))
}
