package model

import "time"

// GrantStatus is the lifecycle state of a Grant
type GrantStatus string

// Grant status constants
const (
	GrantStatusPending  GrantStatus = "pending"
	GrantStatusValid    GrantStatus = "valid"
	GrantStatusRevoked  GrantStatus = "revoked"
	GrantStatusRejected GrantStatus = "rejected"
)

// GrantTypeViewing is the only grant type: permission to view a timetable
const GrantTypeViewing = "viewing"

// Grant is a directed permission: GranteeID may view GrantorID's timetable.
// GrantorID is stored as user_id, GranteeID as to_user_id.
type Grant struct {
	RecordID  int64       `json:"record_id"`
	GrantType string      `json:"grant_type"`
	Status    GrantStatus `json:"status"`
	GrantTime time.Time   `json:"grant_time"`
	GrantorID string      `json:"grantor_id"` // owner of the timetable, approves the request
	GranteeID string      `json:"grantee_id"` // viewer who asked for access
}

// IsPending checks if grant is waiting for the grantor's answer
func (g *Grant) IsPending() bool {
	return g.Status == GrantStatusPending
}

// IsValid checks if grant is currently in force
func (g *Grant) IsValid() bool {
	return g.Status == GrantStatusValid
}
