package dto

type CreateSessionResponse struct {
	SessionId string `json:"session_id"`
}

type DeleteSessionResponse struct {
	Status string `json:"status"`
}
