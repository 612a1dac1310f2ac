// internal/notice/log.go
package notice

import "go.uber.org/zap"

// LogNotifier writes notices to the structured log.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Name() string { return "log" }

func (l *LogNotifier) Notify(n Notice) {
	fields := []zap.Field{
		zap.String("title", n.Title),
		zap.String("description", n.Description),
	}
	if n.Severity == SeverityError {
		l.logger.Warn("notice", fields...)
		return
	}
	l.logger.Info("notice", fields...)
}
