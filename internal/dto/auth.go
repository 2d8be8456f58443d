package dto

// LoginRequest carries the credentials for /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the bearer token issued on login or registration.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}
