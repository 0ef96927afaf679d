package flow

import (
	"context"
	"log"
)

// Runner executes steps strictly in order against one Context. Each durable
// step gets its own transaction, committed before the next step runs; the
// first error aborts the remaining steps. The flow as a whole is therefore
// not atomic: a committed step before a failing one keeps its effect. That is
// deliberate — a pending payment row that is later marked ERROR is a better
// outcome than no audit trail at all.
type Runner[TX Tx] struct {
	db Beginner[TX]
}

func NewRunner[TX Tx](db Beginner[TX]) *Runner[TX] {
	return &Runner[TX]{db: db}
}

// Execute runs the steps over c. It returns the first step error; c holds
// whatever the completed steps staged.
func (r *Runner[TX]) Execute(ctx context.Context, c *Context, steps ...Step[TX]) error {
	for _, step := range steps {
		stepCtx := ctx
		if step.detached {
			stepCtx = context.WithoutCancel(ctx)
		}
		if err := r.runStep(stepCtx, step, c); err != nil {
			log.Printf("[flow][runner] step failed step=%s err=%v", step.name, err)
			return err
		}
	}
	return nil
}

func (r *Runner[TX]) runStep(ctx context.Context, step Step[TX], c *Context) error {
	if step.external != nil {
		return step.external(ctx, c)
	}

	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	if err := step.durable(ctx, tx, c); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			log.Printf("[flow][runner] rollback failed step=%s err=%v", step.name, rbErr)
		}
		return err
	}
	return tx.Commit(ctx)
}
