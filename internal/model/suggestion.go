package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

type OutletSuggestion struct {
	bun.BaseModel `bun:"outlet_suggestions,alias:os"`

	SuggestionID   string      `bun:",pk" json:"id"`
	OutletName     string      `bun:",notnull" json:"outletName"`
	OutletType     null.String `json:"outletType"`
	WebsiteURL     null.String `bun:"website_url" json:"websiteUrl"`
	SuggestedBy    null.String `json:"suggestedBy"`
	AdditionalInfo null.String `json:"additionalInfo"`
	Status         string      `bun:",notnull,default:'pending'" json:"status"`
	CreatedAt      time.Time   `bun:",notnull,default:current_timestamp" json:"createdAt"`
}
