package animator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/savibeshop/savibe/internal/particles"
)

var (
	ErrAlreadyRunning = errors.New("animator: already running")
	ErrCount          = errors.New("animator: particle count out of range")
)

// Config describes the field an Animator owns.
type Config struct {
	Count    int
	Palette  particles.Palette
	Interval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Count:    particles.DefaultCount,
		Palette:  particles.DefaultPalette,
		Interval: particles.TickInterval,
	}
}

// Observer is called after every tick with the new field.
type Observer func(particles.Field)

type Option func(*Animator)

func WithClock(c Clock) Option { return func(a *Animator) { a.clock = c } }

func WithSource(s particles.Source) Option { return func(a *Animator) { a.src = s } }

func WithLogger(l *zap.Logger) Option { return func(a *Animator) { a.log = l } }

func WithObserver(o Observer) Option {
	return func(a *Animator) { a.observers = append(a.observers, o) }
}

// Animator owns a particle field and the periodic tick that advances it.
// Start acquires the ticker and Stop releases it; a stopped Animator never
// advances its field again until restarted.
type Animator struct {
	cfg       Config
	clock     Clock
	src       particles.Source
	log       *zap.Logger
	observers []Observer

	mu    sync.RWMutex
	field particles.Field
	ticks int

	runMu  sync.Mutex
	parent context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// New builds the initial field immediately; the tick does not run until
// Start.
func New(cfg Config, opts ...Option) *Animator {
	if cfg.Interval <= 0 {
		cfg.Interval = particles.TickInterval
	}
	a := &Animator{
		cfg:   cfg,
		clock: RealClock{},
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.src == nil {
		a.src = particles.NewSource(0)
	}
	a.field = particles.Initialize(cfg.Count, cfg.Palette, a.src)
	return a
}

// Field returns the current field. Fields are never modified after they are
// published, so the value is safe to keep.
func (a *Animator) Field() particles.Field {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.field
}

// Ticks is the number of advances applied to the current generation.
func (a *Animator) Ticks() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.ticks
}

func (a *Animator) Config() Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg
}

func (a *Animator) Running() bool {
	a.runMu.Lock()
	defer a.runMu.Unlock()
	return a.runningLocked()
}

func (a *Animator) runningLocked() bool {
	if a.done == nil {
		return false
	}
	select {
	case <-a.done:
		return false
	default:
		return true
	}
}

// Start begins ticking until ctx is done or Stop is called.
func (a *Animator) Start(ctx context.Context) error {
	a.runMu.Lock()
	defer a.runMu.Unlock()
	return a.startLocked(ctx)
}

func (a *Animator) startLocked(ctx context.Context) error {
	if a.runningLocked() {
		return ErrAlreadyRunning
	}
	a.parent = ctx
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	ticker := a.clock.NewTicker(a.cfg.Interval)
	a.cancel = cancel
	a.done = done

	a.log.Debug("particle tick started",
		zap.Int("count", a.Field().Len()),
		zap.Duration("interval", a.cfg.Interval))

	go a.loop(runCtx, ticker, done)
	return nil
}

func (a *Animator) loop(ctx context.Context, ticker Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			// a tick racing with cancellation loses
			if ctx.Err() != nil {
				return
			}
			a.Step(1)
		}
	}
}

// Stop cancels the tick and waits for the loop to exit. It is safe to call
// on a stopped Animator.
func (a *Animator) Stop() {
	a.runMu.Lock()
	defer a.runMu.Unlock()
	a.stopLocked()
}

func (a *Animator) stopLocked() {
	if a.cancel == nil {
		return
	}
	a.cancel()
	<-a.done
	a.cancel = nil
	a.log.Debug("particle tick stopped", zap.Int("ticks", a.Ticks()))
}

// Step advances the field n times synchronously and notifies observers once.
func (a *Animator) Step(n int) particles.Field {
	a.mu.Lock()
	f := particles.AdvanceN(a.field, n)
	a.field = f
	if n > 0 {
		a.ticks += n
	}
	a.mu.Unlock()

	for _, o := range a.observers {
		o(f)
	}
	return f
}

// Reinitialize discards the field and samples a new generation. A running
// tick is torn down first and started again on the new field. Observers see
// the new field before its first tick.
func (a *Animator) Reinitialize(count int, palette particles.Palette) error {
	if count < 0 || count > particles.MaxCount {
		return fmt.Errorf("%w: %d", ErrCount, count)
	}

	a.runMu.Lock()
	defer a.runMu.Unlock()

	wasRunning := a.runningLocked()
	a.stopLocked()

	// src is only touched under runMu; readers keep seeing the old field
	// until the swap.
	next := particles.Reinitialize(a.Field(), count, palette, a.src)
	gen := next.Generation

	a.mu.Lock()
	a.cfg.Count = count
	a.cfg.Palette = palette
	a.field = next
	a.ticks = 0
	a.mu.Unlock()

	a.log.Info("particle field reinitialized",
		zap.Int("count", count),
		zap.Strings("palette", palette.Strings()),
		zap.Uint64("generation", gen))

	for _, o := range a.observers {
		o(next)
	}

	if wasRunning {
		return a.startLocked(a.parent)
	}
	return nil
}
