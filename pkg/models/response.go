package models

// MessageResponse is the body of routes that only report an outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreatedResponse reports the id of a newly created document.
type CreatedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}
