package notice

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Level classifies a user-facing notice.
type Level string

const (
	LevelTransient Level = "transient" // short-lived toast, e.g. one entity set failed to load
	LevelWarning   Level = "warning"
	LevelError     Level = "error"
)

// Notice is a single user-facing message produced by the pipeline.
type Notice struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Center collects notices for the rendering layer to display. It keeps a
// bounded window of the most recent entries; older notices are discarded.
type Center struct {
	logger *zap.Logger

	mu      sync.Mutex
	notices []Notice
	limit   int
	now     func() time.Time
}

// NewCenter creates a notice center retaining up to limit entries.
func NewCenter(limit int, logger *zap.Logger) *Center {
	if limit <= 0 {
		limit = 50
	}
	return &Center{
		logger: logger,
		limit:  limit,
		now:    time.Now,
	}
}

// Toastf publishes a transient notice.
func (c *Center) Toastf(format string, args ...any) {
	c.publish(LevelTransient, fmt.Sprintf(format, args...))
}

// Warnf publishes a warning notice.
func (c *Center) Warnf(format string, args ...any) {
	c.publish(LevelWarning, fmt.Sprintf(format, args...))
}

// Errorf publishes an error notice.
func (c *Center) Errorf(format string, args ...any) {
	c.publish(LevelError, fmt.Sprintf(format, args...))
}

// Recent returns a copy of the retained notices, oldest first.
func (c *Center) Recent() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notice, len(c.notices))
	copy(out, c.notices)
	return out
}

// Drain returns the retained notices and clears the feed.
func (c *Center) Drain() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.notices
	c.notices = nil
	return out
}

func (c *Center) publish(level Level, message string) {
	c.mu.Lock()
	c.notices = append(c.notices, Notice{Level: level, Message: message, Time: c.now()})
	if len(c.notices) > c.limit {
		c.notices = c.notices[len(c.notices)-c.limit:]
	}
	c.mu.Unlock()

	c.logger.Info("User notice published",
		zap.String("level", string(level)),
		zap.String("message", message))
}
