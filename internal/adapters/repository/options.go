package repository

import (
	"time"

	"github.com/okian/catalog/pkg/logger"
)

// Option applies a configuration option to the GormStore.
type Option func(*GormStore)

// WithLogger routes gorm's SQL logging through l.
func WithLogger(l logger.Logger) Option {
	return func(s *GormStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSlowQueryThreshold sets the duration above which queries are logged as warnings.
func WithSlowQueryThreshold(d time.Duration) Option {
	return func(s *GormStore) {
		if d > 0 {
			s.slowThreshold = d
		}
	}
}

// WithSQLTrace logs every statement at debug level.
func WithSQLTrace(enabled bool) Option {
	return func(s *GormStore) {
		s.traceSQL = enabled
	}
}
