package auth

type CredentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Role     string `json:"role"`
	Username string `json:"username"`
	Message  string `json:"message"`
}
