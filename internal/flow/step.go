package flow

import "context"

// Tx is the store transaction handle a durable step runs against. The runner
// owns its lifecycle: commit after the step returns nil, rollback otherwise.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Beginner opens store transactions for durable steps.
type Beginner[TX Tx] interface {
	BeginTx(ctx context.Context) (TX, error)
}

// DurableFunc runs inside a local atomic transaction.
type DurableFunc[TX Tx] func(ctx context.Context, tx TX, c *Context) error

// ExternalFunc runs with no transaction open; it is where network I/O
// belongs, so a slow remote call never holds a store lock.
type ExternalFunc func(ctx context.Context, c *Context) error

// Step is one unit of work over the flow Context.
type Step[TX Tx] struct {
	name     string
	durable  DurableFunc[TX]
	external ExternalFunc
	detached bool
}

// StepOpt configures a step.
type StepOpt func(*stepConfig)

type stepConfig struct {
	detached bool
}

// Detached makes the runner execute the step even after the caller's context
// is cancelled. Reconciliation steps use it so an in-flight payment always
// reaches a terminal state.
func Detached() StepOpt {
	return func(c *stepConfig) { c.detached = true }
}

// Durable builds a step the runner wraps in a store transaction.
func Durable[TX Tx](name string, fn DurableFunc[TX], opts ...StepOpt) Step[TX] {
	cfg := applyOpts(opts)
	return Step[TX]{name: name, durable: fn, detached: cfg.detached}
}

// External builds a step that runs outside any transaction.
func External[TX Tx](name string, fn ExternalFunc, opts ...StepOpt) Step[TX] {
	cfg := applyOpts(opts)
	return Step[TX]{name: name, external: fn, detached: cfg.detached}
}

// Name identifies the step in logs.
func (s Step[TX]) Name() string { return s.name }

func applyOpts(opts []StepOpt) stepConfig {
	var cfg stepConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
