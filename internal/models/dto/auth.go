package dto

type RegisterRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	Name              string `json:"name"`
	Bio               string `json:"bio"`
	ProfilePictureURL string `json:"profilePictureUrl"`
}

type RegisterResponse struct {
	Success bool  `json:"success"`
	UserID  int64 `json:"userId"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}
