package settings

import (
	barerrors "github.com/ytget/prodbar/internal/errors"
)

// NoticeLevel says how a notice should be presented
type NoticeLevel string

const (
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a non-blocking message for the user
type Notice struct {
	Level   NoticeLevel
	Code    string
	Message string
}

// Notifier shows notices to the user
type Notifier interface {
	Notify(notice Notice)
}

// NoticeFor turns an error from the selection store or preferences into a
// notice. Persistence problems are warnings; everything else is an error.
func NoticeFor(err error) Notice {
	level := NoticeError
	if barerrors.IsWarning(err) {
		level = NoticeWarning
	}
	return Notice{
		Level:   level,
		Code:    barerrors.Code(err),
		Message: err.Error(),
	}
}
