package model

// UserProfile is the authenticated user record as returned by the auth
// backend. The console never assigns ids, roles or ministries itself.
type UserProfile struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Phone      string `json:"phone,omitempty"`
	Position   string `json:"position"`
	MinistryID int    `json:"ministry_id"`
	RoleID     int    `json:"role_id"`
	Role       string `json:"role,omitempty"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignUpData struct {
	Username   string `json:"username" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	FullName   string `json:"full_name" validate:"required"`
	Position   string `json:"position" validate:"required"`
	MinistryID int    `json:"ministry_id" validate:"required"`
	RoleID     int    `json:"role_id" validate:"required"`
	Phone      string `json:"phone,omitempty"`
}

// AuthResult is the payload of a successful signin/signup call.
type AuthResult struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}
