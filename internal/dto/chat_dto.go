package dto

type UploadResponse struct {
	Status string `json:"status"`
	Chunks int    `json:"chunks"`
}

type AskRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Question  string `json:"question" validate:"required"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}
