package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

type Outlet struct {
	bun.BaseModel `bun:"outlets,alias:o"`

	OutletID string `bun:",pk" json:"id"`
	Name     string `bun:",notnull" json:"name"`
	// Type is one of tv, radio, print, online. Outlets created before
	// categorization may have none.
	Type           null.String `json:"type"`
	ComplaintEmail null.String `json:"complaintEmail"`
	ComplaintURL   null.String `bun:"complaint_url" json:"complaintUrl"`
	Notes          null.String `json:"notes"`
	CreatedAt      time.Time   `bun:",notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt      time.Time   `bun:",notnull,default:current_timestamp" json:"updatedAt"`

	Incidents []*Incident `bun:"rel:has-many,join:outlet_id=outlet_id" json:"incidents,omitempty"`
}

// OutletContact is the subset of an outlet needed to file a complaint.
type OutletContact struct {
	OutletID       string      `json:"id"`
	Name           string      `json:"name"`
	ComplaintEmail null.String `json:"complaintEmail"`
	ComplaintURL   null.String `json:"complaintUrl"`
	Notes          null.String `json:"notes"`
}
