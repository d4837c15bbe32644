package response

type RegisterResponse struct {
	UserID string `json:"user_id"`
}

type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}
