package kv

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds each Lenient call.
const DefaultTimeout = 2 * time.Second

// Lenient adapts a Store to callers that cannot handle errors, such as
// puzzle sessions. Failed reads are reported as absent and failed writes are
// dropped; both are logged.
type Lenient struct {
	store   Store
	log     zerolog.Logger
	timeout time.Duration
}

// NewLenient wraps store, logging failures to log.
func NewLenient(store Store, log zerolog.Logger) *Lenient {
	return &Lenient{
		store:   store,
		log:     log.With().Str("component", "kv").Logger(),
		timeout: DefaultTimeout,
	}
}

func (l *Lenient) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	v, err := l.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, false
	}
	if err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("read failed, treating as absent")
		return nil, false
	}
	return v, true
}

func (l *Lenient) Set(key string, value []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	if err := l.store.Set(ctx, key, value); err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("write failed")
	}
}
