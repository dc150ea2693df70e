package model

// DenyReason explains why an access check failed
type DenyReason string

const (
	DenyNone                    DenyReason = ""
	DenySelfOnly                DenyReason = "self_only"
	DenyRequireLogin            DenyReason = "require_login"
	DenyRequirePermissionAdjust DenyReason = "require_permission_adjust"
)

// Decision is the outcome of an access check
type Decision struct {
	Allowed bool       `json:"allowed"`
	Reason  DenyReason `json:"deny_reason,omitempty"`
}

// Viewer identifies who is looking at a timetable.
// UserID is empty for anonymous visitors, who are tracked by AnonymousID instead.
type Viewer struct {
	UserID      string
	AnonymousID string
}

// IsLoggedIn reports whether the viewer is authenticated
func (v Viewer) IsLoggedIn() bool {
	return v.UserID != ""
}

// VisitorKey is the identity counted by the visitor counter
func (v Viewer) VisitorKey() string {
	if v.IsLoggedIn() {
		return v.UserID
	}
	if v.AnonymousID == "" {
		return ""
	}
	return "anm" + v.AnonymousID
}
