package types

type GenerateLetterRequest struct {
	IncidentID     string `json:"incidentId" validate:"required,uuid"`
	SeverityRating *int   `json:"severityRating" validate:"omitempty,min=1,max=10"`
}

type UpdateComplaintRequest struct {
	LetterContent  string `json:"letterContent" validate:"required,min=50"`
	SeverityRating *int   `json:"severityRating" validate:"omitempty,min=1,max=10"`
}

type RecordResponseRequest struct {
	ResponseText string `json:"responseText" validate:"required,max=20000"`
}

// DispatchTask is published to the complaint dispatch stream and consumed
// by the dispatch workers.
type DispatchTask struct {
	TaskID      string `json:"taskId"`
	ComplaintID string `json:"complaintId"`
	AccountID   string `json:"accountId"`
	// CreatedAt is the unix microsecond timestamp of the send request.
	CreatedAt int64 `json:"createdAt"`
}
