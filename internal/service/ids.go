package service

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// newTaskID returns a lexically sortable id for queued tasks.
func newTaskID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// newShortID returns the random tail of a ulid, used to disambiguate slugs.
func newShortID() string {
	id := newTaskID()
	return id[len(id)-6:]
}
