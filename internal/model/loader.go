package model

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/jonathan/fairpath/internal/logger"
)

// State is the availability of the learned model
type State int32

const (
	// StateNotLoaded means no load has been attempted
	StateNotLoaded State = iota
	// StateLoaded means an artifact is available; it stays loaded for the process
	StateLoaded
	// StateLoadFailed means the artifact was missing or corrupt; only Reload leaves it
	StateLoadFailed
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateLoadFailed:
		return "load_failed"
	default:
		return "not_loaded"
	}
}

// ErrModelUnavailable is returned by Get while the loader is in StateLoadFailed
var ErrModelUnavailable = errors.New("model unavailable")

// Validator performs extra checks on a freshly loaded artifact
type Validator func(ctx context.Context, a *Artifact) error

// Loader lazily loads an artifact at most once and tracks model availability.
type Loader struct {
	store     Store
	validate  Validator
	logger    *zap.Logger
	group     singleflight.Group
	state     atomic.Int32
	artifact  atomic.Pointer[Artifact]
	lastError atomic.Pointer[string]
}

// Option configures a Loader
type Option func(*Loader)

// WithValidator adds a check run after each successful fetch. A failing check
// is treated like a corrupt artifact.
func WithValidator(v Validator) Option {
	return func(l *Loader) { l.validate = v }
}

// WithLogger sets the loader's logger.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) { l.logger = log }
}

// NewLoader returns a loader in StateNotLoaded.
func NewLoader(store Store, opts ...Option) *Loader {
	l := &Loader{store: store}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = logger.OrNop(l.logger)
	return l
}

// State returns the current availability state.
func (l *Loader) State() State {
	return State(l.state.Load())
}

// Get returns the artifact, loading it on first use. In StateLoadFailed it
// returns ErrModelUnavailable without touching the store.
func (l *Loader) Get(ctx context.Context) (*Artifact, error) {
	switch l.State() {
	case StateLoaded:
		return l.artifact.Load(), nil
	case StateLoadFailed:
		return nil, l.unavailable()
	}

	v, err, _ := l.group.Do("load", func() (any, error) {
		switch l.State() {
		case StateLoaded:
			return l.artifact.Load(), nil
		case StateLoadFailed:
			return nil, l.unavailable()
		}
		return l.load(context.WithoutCancel(ctx), false)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Artifact), nil
}

// Reload fetches the artifact again. From StateLoadFailed a success moves to
// StateLoaded. From StateLoaded a failure keeps the current artifact.
func (l *Loader) Reload(ctx context.Context) (*Artifact, error) {
	v, err, _ := l.group.Do("reload", func() (any, error) {
		return l.load(context.WithoutCancel(ctx), true)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Artifact), nil
}

// Version returns the loaded artifact version, or "" when none is loaded.
func (l *Loader) Version() string {
	if a := l.artifact.Load(); a != nil && l.State() == StateLoaded {
		return a.Version
	}
	return ""
}

// LastError returns the message of the most recent failed load.
func (l *Loader) LastError() string {
	if msg := l.lastError.Load(); msg != nil {
		return *msg
	}
	return ""
}

func (l *Loader) load(ctx context.Context, reload bool) (*Artifact, error) {
	a, err := l.store.Load(ctx)
	if err == nil && l.validate != nil {
		err = l.validate(ctx, a)
	}
	if err != nil {
		msg := err.Error()
		l.lastError.Store(&msg)

		if reload && l.State() == StateLoaded {
			l.logger.Warn("model reload failed, keeping current artifact",
				zap.String(logger.FieldModelVersion, l.Version()), zap.Error(err))
			return nil, err
		}

		l.state.Store(int32(StateLoadFailed))
		if errors.Is(err, ErrArtifactNotFound) {
			l.logger.Info("no model artifact, ranking will use baseline", zap.Error(err))
		} else {
			l.logger.Warn("model artifact rejected, ranking will use baseline", zap.Error(err))
		}
		return nil, err
	}

	l.artifact.Store(a)
	l.state.Store(int32(StateLoaded))
	l.lastError.Store(nil)
	l.logger.Info("model loaded",
		zap.String(logger.FieldModelVersion, a.Version),
		zap.Int("features", a.Dim()),
	)
	return a, nil
}

func (l *Loader) unavailable() error {
	if msg := l.LastError(); msg != "" {
		return fmt.Errorf("%w: %s", ErrModelUnavailable, msg)
	}
	return ErrModelUnavailable
}
