package models

// FormResponse is the reply to a booking submission.
type FormResponse struct {
	Message string            `json:"message"`
	Ok      bool              `json:"ok"`
	BID     string            `json:"bid,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// LoginResponse carries the issued token for clients that do not keep cookies.
type LoginResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
}

type SessionStatus struct {
	LoggedIn bool `json:"loggedIn"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func Message(msg string) MessageResponse {
	return MessageResponse{Message: msg}
}
