package dto

import "github.com/google/uuid"

type QueryRequest struct {
	Query        string     `json:"query" validate:"required"`
	Collection   string     `json:"collection"`
	K            int        `json:"k" validate:"omitempty,min=1,max=20"`
	SessionToken *uuid.UUID `json:"session_id"`
}

type QueryResponse struct {
	Answer       string     `json:"answer"`
	Sources      []string   `json:"sources"`
	SessionToken *uuid.UUID `json:"session_id,omitempty"`
}
