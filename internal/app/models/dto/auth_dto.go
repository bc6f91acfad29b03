package dto

// LoginRequest represents a staff sign-in request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginResponse carries the issued token and the signed-in user
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresIn   int       `json:"expiresIn"`
	User        *UserInfo `json:"user"`
}

// UserInfo is the public view of a staff account
type UserInfo struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	RoleType string `json:"roleType" enums:"ADMIN,STAFF"`
}
