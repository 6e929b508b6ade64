package types

type IncidentListQuery struct {
	OutletID       string `query:"outletId" validate:"omitempty,max=64"`
	PresenterName  string `query:"presenterName" validate:"omitempty,max=256"`
	InfractionType string `query:"infractionType" validate:"omitempty,infractiontype"`
	StartDate      string `query:"startDate"`
	EndDate        string `query:"endDate"`
	Page           int    `query:"page" validate:"omitempty,min=1"`
	Limit          int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

type CreateIncidentRequest struct {
	OutletID       string `json:"outletId" validate:"required,max=64"`
	Date           string `json:"date" validate:"required"`
	Time           string `json:"time" validate:"omitempty,max=16"`
	ProgramName    string `json:"programName" validate:"omitempty,max=256"`
	PresenterName  string `json:"presenterName" validate:"omitempty,max=256"`
	Description    string `json:"description" validate:"required,min=10"`
	MediaURL       string `json:"mediaUrl" validate:"omitempty,url"`
	InfractionType string `json:"infractionType" validate:"omitempty,infractiontype"`
}

// UpdateIncidentRequest is a partial update: nil fields are left as they are,
// an empty string clears an optional field.
type UpdateIncidentRequest struct {
	Date           *string `json:"date"`
	Time           *string `json:"time" validate:"omitempty,max=16"`
	ProgramName    *string `json:"programName" validate:"omitempty,max=256"`
	PresenterName  *string `json:"presenterName" validate:"omitempty,max=256"`
	Description    *string `json:"description" validate:"omitempty,min=10"`
	MediaURL       *string `json:"mediaUrl" validate:"omitempty,url"`
	InfractionType *string `json:"infractionType" validate:"omitempty,infractiontype"`
}
