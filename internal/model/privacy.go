package model

import "time"

// PrivacyLevel controls who may view a user's timetable
type PrivacyLevel int

const (
	PrivacyPublic   PrivacyLevel = 0 // anyone, including anonymous visitors
	PrivacyMutual   PrivacyLevel = 1 // logged-in users who are not self-only themselves
	PrivacySelfOnly PrivacyLevel = 2 // nobody but the owner (and explicit grantees)
)

// IsValid reports whether l is one of the known levels
func (l PrivacyLevel) IsValid() bool {
	return l >= PrivacyPublic && l <= PrivacySelfOnly
}

func (l PrivacyLevel) String() string {
	switch l {
	case PrivacyPublic:
		return "public"
	case PrivacyMutual:
		return "mutual"
	case PrivacySelfOnly:
		return "self_only"
	default:
		return "unknown"
	}
}

// PrivacySetting is one row of privacy_settings
type PrivacySetting struct {
	UserID     string       `json:"user_id"`
	Level      PrivacyLevel `json:"level"`
	CreateTime time.Time    `json:"create_time"`
}
