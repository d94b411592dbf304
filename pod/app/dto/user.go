package dto

type ProfileUpdateRequest struct {
	Username  *string `json:"username"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
}

type RoleChangeRequest struct {
	Role string `json:"role"`
}

type TokenCreateRequest struct {
	Name string `json:"name"`
}
