package services

import "github.com/sirupsen/logrus"

// Notification levels, matching the storefront's transient toast kinds.
const (
	NotifySuccess = "success"
	NotifyError   = "error"
	NotifyWarning = "warning"
	NotifyInfo    = "info"
)

// Notifier receives the transient user-facing messages the components emit.
// The front end shows them; tests assert on them.
type Notifier interface {
	Notify(level, message string)
}

// LogNotifier routes notifications to a logrus logger, used when no front
// end is attached.
type LogNotifier struct {
	Logger *logrus.Logger
}

func (n *LogNotifier) Notify(level, message string) {
	switch level {
	case NotifyError:
		n.Logger.Error(message)
	case NotifyWarning:
		n.Logger.Warn(message)
	default:
		n.Logger.Info(message)
	}
}
