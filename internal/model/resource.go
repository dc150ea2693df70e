package model

// ResourceKind is the type prefix carried by an opaque resource identifier
type ResourceKind string

const (
	KindStudent ResourceKind = "student"
	KindTeacher ResourceKind = "teacher"
	KindClass   ResourceKind = "klass"
	KindRoom    ResourceKind = "room"
	KindPeople  ResourceKind = "people" // student or teacher, when the caller doesn't care which
)

// ResourceKinds lists every kind an identifier may carry
var ResourceKinds = []ResourceKind{KindStudent, KindTeacher, KindClass, KindRoom, KindPeople}

// IsValid reports whether k belongs to the closed set of kinds
func (k ResourceKind) IsValid() bool {
	for _, known := range ResourceKinds {
		if k == known {
			return true
		}
	}
	return false
}

// IsPerson reports whether k can own a timetable and a calendar subscription
func (k ResourceKind) IsPerson() bool {
	return k == KindStudent || k == KindTeacher
}
