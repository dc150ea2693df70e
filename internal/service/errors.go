package service

import "errors"

type errorKind int

const (
	kindInvalidRequest errorKind = iota + 1
	kindPermission
	kindNotFound
)

// Error ошибка бизнес-логики с видом, по которому вызывающий выбирает ответ
type Error struct {
	kind errorKind
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func invalidRequest(msg string) *Error { return &Error{kind: kindInvalidRequest, msg: msg} }
func permission(msg string) *Error     { return &Error{kind: kindPermission, msg: msg} }
func notFound(msg string) *Error       { return &Error{kind: kindNotFound, msg: msg} }

var (
	// granting
	ErrHasPendingRequest    = invalidRequest("pending grant request already exists")
	ErrAlreadyGranted       = invalidRequest("access already granted")
	ErrSelfGrant            = invalidRequest("cannot request access to own timetable")
	ErrGrantNotPending      = invalidRequest("grant is not pending")
	ErrGrantNotValid        = invalidRequest("grant is not valid")
	ErrGrantNotFound        = notFound("grant not found")
	ErrNoPermissionToAccept = permission("grant is not addressed to this user")

	// privacy
	ErrInvalidPrivacyLevel = invalidRequest("privacy level is not valid")

	// calendar
	ErrInvalidToken        = invalidRequest("calendar token is not valid")
	ErrTokenNotFound       = invalidRequest("calendar token does not exist")
	ErrInvalidCalendarKind = invalidRequest("calendar is only available for students and teachers")
)

func hasKind(err error, kind errorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.kind == kind
}

// IsInvalidRequest проверяет, что ошибка вызвана некорректным запросом
func IsInvalidRequest(err error) bool {
	return hasKind(err, kindInvalidRequest)
}

// IsPermissionError проверяет, что у пользователя нет прав на действие
func IsPermissionError(err error) bool {
	return hasKind(err, kindPermission)
}

// IsNotFound проверяет, что запрошенная запись не существует
func IsNotFound(err error) bool {
	return hasKind(err, kindNotFound)
}
