package activity

import (
	"time"

	"backend/internal/domain"

	"go.uber.org/zap"
)

// Logger appends audit records off the request path. Record never
// blocks and never returns an error: a full buffer drops the record
// with a warning, a failed insert is logged and swallowed. The primary
// mutation is committed by the time anything reaches here.
type Logger struct {
	repo    Repository
	records chan domain.Activity
	done    chan struct{}
	logger  *zap.SugaredLogger
}

func NewLogger(repo Repository, logger *zap.Logger) *Logger {
	return &Logger{
		repo:    repo,
		records: make(chan domain.Activity, 256),
		done:    make(chan struct{}),
		logger:  logger.Sugar(),
	}
}

func (l *Logger) Record(a domain.Activity) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	select {
	case l.records <- a:
	default:
		l.logger.Warnw("Activity buffer full, dropping record",
			"action", a.Action,
			"entity_type", a.EntityType,
		)
	}
}

// Run drains the record channel until Close. Started as a goroutine
// from bootstrap, like the websocket hub.
func (l *Logger) Run() {
	for a := range l.records {
		if err := l.repo.Create(&a); err != nil {
			l.logger.Errorw("Failed to write activity record",
				"action", a.Action,
				"entity_type", a.EntityType,
				"workspace_id", a.WorkspaceID,
				"error", err,
			)
		}
	}
	close(l.done)
}

// Close stops accepting records and waits for the writer to drain.
func (l *Logger) Close() {
	close(l.records)
	<-l.done
}
