package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CalendarToken is a long-lived capability for one calendar subscription feed
type CalendarToken struct {
	Token        uuid.UUID    `json:"token"`
	Kind         ResourceKind `json:"type"` // student or teacher
	Identifier   string       `json:"identifier"`
	Semester     string       `json:"semester"`
	CreateTime   time.Time    `json:"create_time"`
	LastUsedTime *time.Time   `json:"last_used_time"` // nil until the feed is fetched once
}

// CacheKey is the file name under which the generated feed is cached
func (t *CalendarToken) CacheKey() string {
	return fmt.Sprintf("%s_%s_%s.ics", t.Kind, t.Identifier, t.Semester)
}
