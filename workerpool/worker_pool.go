package workerpool

import (
	"context"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/pitabwire/util"

	"github.com/itoolpack/itoolpack/config"
)

// Options defines configurable options for a worker pool.
type Options struct {
	PoolCount          int
	SinglePoolCapacity int
	ExpiryDuration     time.Duration
	Nonblocking        bool
	PanicHandler       func(any)
	Logger             *util.LogEntry
}

// Option defines a function that configures worker pool options.
type Option func(*Options)

// WithPoolCount sets the number of worker pools.
func WithPoolCount(count int) Option {
	return func(opts *Options) {
		opts.PoolCount = count
	}
}

// WithSinglePoolCapacity sets the capacity for a single worker pool.
func WithSinglePoolCapacity(capacity int) Option {
	return func(opts *Options) {
		opts.SinglePoolCapacity = capacity
	}
}

// WithPoolExpiryDuration sets the expiry duration for idle workers.
func WithPoolExpiryDuration(duration time.Duration) Option {
	return func(opts *Options) {
		opts.ExpiryDuration = duration
	}
}

// WithPoolNonblocking makes Submit fail instead of waiting when the pool is full.
func WithPoolNonblocking(nonblocking bool) Option {
	return func(opts *Options) {
		opts.Nonblocking = nonblocking
	}
}

// WithPoolPanicHandler sets a panic handler for the pool.
func WithPoolPanicHandler(handler func(any)) Option {
	return func(opts *Options) {
		opts.PanicHandler = handler
	}
}

// WithPoolLogger sets a logger for the pool.
func WithPoolLogger(logger *util.LogEntry) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// FromConfig converts pool settings from configuration into options.
func FromConfig(cfg config.ConfigurationWorkerPool) []Option {
	return []Option{
		WithSinglePoolCapacity(cfg.GetCapacity()),
		WithPoolCount(cfg.GetCount()),
		WithPoolExpiryDuration(cfg.GetExpiryDuration()),
	}
}

func defaultWorkerPoolOpts(ctx context.Context) *Options {
	return &Options{
		PoolCount:          1,
		SinglePoolCapacity: runtime.NumCPU(),
		ExpiryDuration:     time.Second,
		Nonblocking:        false,
		Logger:             util.Log(ctx),
	}
}

// New creates a pool. Submit blocks while every worker is busy unless
// WithPoolNonblocking is set.
func New(ctx context.Context, opts ...Option) (WorkerPool, error) {
	wopts := defaultWorkerPoolOpts(ctx)
	for _, opt := range opts {
		opt(wopts)
	}
	if wopts.SinglePoolCapacity <= 0 {
		wopts.SinglePoolCapacity = runtime.NumCPU()
	}
	if wopts.Logger == nil {
		wopts.Logger = util.Log(ctx)
	}

	var antsOpts []ants.Option
	if wopts.ExpiryDuration > 0 {
		antsOpts = append(antsOpts, ants.WithExpiryDuration(wopts.ExpiryDuration))
	}
	antsOpts = append(antsOpts, ants.WithNonblocking(wopts.Nonblocking))
	if wopts.PanicHandler != nil {
		antsOpts = append(antsOpts, ants.WithPanicHandler(wopts.PanicHandler))
	}
	antsOpts = append(antsOpts, ants.WithLogger(wopts.Logger))

	if wopts.PoolCount <= 1 {
		p, err := ants.NewPool(wopts.SinglePoolCapacity, antsOpts...)
		if err != nil {
			return nil, err
		}
		return &singlePoolWrapper{pool: p}, nil
	}

	mp, err := ants.NewMultiPool(wopts.PoolCount, wopts.SinglePoolCapacity, ants.LeastTasks, antsOpts...)
	if err != nil {
		return nil, err
	}
	return &multiPoolWrapper{multiPool: mp}, nil
}

// singlePoolWrapper adapts *ants.Pool to the WorkerPool interface.
type singlePoolWrapper struct {
	pool *ants.Pool
}

func (w *singlePoolWrapper) Submit(ctx context.Context, task func()) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	return w.pool.Submit(task)
}

func (w *singlePoolWrapper) Shutdown() {
	w.pool.Release()
}

// multiPoolWrapper adapts *ants.MultiPool to the WorkerPool interface.
type multiPoolWrapper struct {
	multiPool *ants.MultiPool
}

func (w *multiPoolWrapper) Submit(ctx context.Context, task func()) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	return w.multiPool.Submit(task)
}

func (w *multiPoolWrapper) Shutdown() {
	_ = w.multiPool.ReleaseTimeout(time.Second)
}
