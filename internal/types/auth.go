package types

import "strings"

// CreateUserRequest represents a registration request.
type CreateUserRequest struct {
	Email       string     `json:"email" validate:"required,email"`
	Name        string     `json:"name" validate:"required,min=1"`
	Role        Role       `json:"role" validate:"required,oneof=engineer manager"`
	Password    string     `json:"password" validate:"required,min=8"`
	Skills      []string   `json:"skills,omitempty" validate:"omitempty,dive,required"`
	Seniority   *Seniority `json:"seniority,omitempty" validate:"omitempty,oneof=junior mid senior"`
	MaxCapacity *int       `json:"maxCapacity,omitempty" validate:"omitempty,min=0,max=100"`
	Department  *string    `json:"department,omitempty"`
}

// LoginRequest represents the login request. Username is the account email.
type LoginRequest struct {
	Username string `json:"username" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned by the token endpoint.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user,omitempty"`
}

// Normalize trims the identity fields and lowercases the email so that
// validation sees the values that will be stored.
func (r *CreateUserRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
}

// Normalize trims and lowercases the username, which is an email.
func (r *LoginRequest) Normalize() {
	r.Username = strings.ToLower(strings.TrimSpace(r.Username))
}

// Validate validates the CreateUserRequest using the validator.
func (r *CreateUserRequest) Validate() error {
	return Validator().Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	return Validator().Struct(r)
}
