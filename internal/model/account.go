package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

type Account struct {
	bun.BaseModel `bun:"accounts,alias:a"`

	AccountID     string      `bun:",pk" json:"id"`
	Email         string      `bun:",notnull,unique" json:"email"`
	PasswordHash  string      `bun:",notnull" json:"-" msgpack:"-"`
	AccessToken   string      `bun:",notnull,unique" json:"-"`
	Name          null.String `json:"name"`
	PreferredTone string      `bun:",notnull" json:"preferredTone"`
	CreatedAt     time.Time   `bun:",notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt     time.Time   `bun:",notnull,default:current_timestamp" json:"updatedAt"`
}

// AccountView is the representation of an account returned to its owner.
type AccountView struct {
	AccountID     string      `json:"id"`
	Email         string      `json:"email"`
	Name          null.String `json:"name"`
	PreferredTone string      `json:"preferredTone"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// AccountRef is the public projection of an account embedded into other
// resources, such as the creator of an incident.
type AccountRef struct {
	bun.BaseModel `bun:"accounts,alias:ar"`

	AccountID string      `bun:",pk" json:"id"`
	Name      null.String `json:"name"`
}
