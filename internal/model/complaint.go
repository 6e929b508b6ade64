package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

type Complaint struct {
	bun.BaseModel `bun:"complaints,alias:c"`

	ComplaintID   string `bun:",pk" json:"id"`
	IncidentID    string `bun:",notnull" json:"incidentId"`
	AccountID     string `bun:",notnull" json:"userId"`
	LetterContent string `bun:",notnull" json:"letterContent"`
	// SeverityRating is a 1-10 rating given by the complainant. Ratings are
	// validated on write only: aggregation takes stored values as they are.
	SeverityRating null.Int    `json:"severityRating"`
	Status         string      `bun:",notnull,default:'draft'" json:"status"`
	SentAt         null.Time   `json:"sentAt"`
	SentTo         null.String `json:"sentTo"`
	ResponseText   null.String `json:"responseText"`
	ResponseAt     null.Time   `json:"responseAt"`
	CreatedAt      time.Time   `bun:",notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt      time.Time   `bun:",notnull,default:current_timestamp" json:"updatedAt"`

	Incident  *Incident   `bun:"rel:belongs-to,join:incident_id=incident_id" json:"incident,omitempty"`
	Submitter *AccountRef `bun:"rel:belongs-to,join:account_id=account_id" json:"user,omitempty"`
}

// ComplaintFacet is the projection of a complaint the platform overview needs.
type ComplaintFacet struct {
	bun.BaseModel `bun:"complaints,alias:c"`

	Status         string   `json:"status"`
	SeverityRating null.Int `json:"severityRating"`
}
