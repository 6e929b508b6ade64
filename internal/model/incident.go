package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

type Incident struct {
	bun.BaseModel `bun:"incidents,alias:i"`

	IncidentID     string      `bun:",pk" json:"id"`
	OutletID       string      `bun:",notnull" json:"outletId"`
	Date           time.Time   `bun:",notnull" json:"date"`
	Time           null.String `json:"time"`
	ProgramName    null.String `json:"programName"`
	PresenterName  null.String `json:"presenterName"`
	Description    string      `bun:",notnull" json:"description"`
	MediaURL       null.String `bun:"media_url" json:"mediaUrl"`
	InfractionType null.String `json:"infractionType"`
	CreatedBy      string      `bun:",notnull" json:"createdById"`
	CreatedAt      time.Time   `bun:",notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt      time.Time   `bun:",notnull,default:current_timestamp" json:"updatedAt"`

	// ComplaintCount is only populated by listing queries.
	ComplaintCount *int `bun:",scanonly" json:"complaintCount,omitempty"`

	Outlet     *Outlet      `bun:"rel:belongs-to,join:outlet_id=outlet_id" json:"outlet,omitempty"`
	Creator    *AccountRef  `bun:"rel:belongs-to,join:created_by=account_id" json:"createdBy,omitempty"`
	Complaints []*Complaint `bun:"rel:has-many,join:incident_id=incident_id" json:"complaints,omitempty"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
