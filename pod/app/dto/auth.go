package dto

import "panda-gate/pod/app/models"

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type BootstrapRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type BootstrapStatus struct {
	Allowed bool `json:"allowed"`
}

// AuthResponse carries the signed session token next to the user it
// was issued for. The BFF moves access_token into the session cookie.
type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

type UserResponse struct {
	User *models.User `json:"user"`
}
