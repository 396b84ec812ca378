package circulation

type UsernamePayload struct {
	Username string `json:"username"`
}

type UsernameQuery struct {
	Username string `query:"username" json:"username"`
}

type ListRequestsQuery struct {
	Status string `query:"status" json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
}
