package dto

// LoginRequest payload for POST /api/auth.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserInfo is the user block returned alongside the token.
type UserInfo struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// LoginResponse is the successful login payload.
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}
