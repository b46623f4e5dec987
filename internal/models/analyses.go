package models

import "time"

// Analysis is one persisted completion-service round trip. Rows are never updated.
type Analysis struct {
	ID         string    `json:"id" db:"id"`
	OwnerID    *string   `json:"-" db:"owner_id"`
	InputText  string    `json:"content" db:"input_text"`
	ResultText string    `json:"analysis_result" db:"result_text"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type AnalyzeTextRequest struct {
	Text string `json:"text"`
}

type AnalysisResponse struct {
	ID      string `json:"id,omitempty"`
	Result  string `json:"result"`
	Message string `json:"message"`
}
