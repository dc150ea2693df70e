package model

import "time"

// VisitTrack is the last time VisitorID looked at HostID's timetable
type VisitTrack struct {
	HostID        string    `json:"host_id"`
	VisitorID     string    `json:"visitor_id"`
	LastVisitTime time.Time `json:"last_visit_time"`
}
