package wallet

import (
	"context"

	"github.com/rs/zerolog/log"
)

// The store offers single-row atomicity only, so each multi-write operation
// runs as a saga: an ordered list of steps, each with an optional
// compensation. When a step fails, compensations of the completed steps run
// in reverse order. A compensation that itself fails is logged and dropped;
// that residual imbalance is an accepted risk, and the ledger entry written
// by the original step remains as the audit trail.
type sagaStep struct {
	name       string
	run        func(ctx context.Context) error
	compensate func(ctx context.Context) error
	// bestEffort steps may fail without failing the saga and are never
	// compensated for. Used for the trailing redemption-record append.
	bestEffort bool
}

func runSaga(ctx context.Context, op string, steps []sagaStep) error {
	completed := make([]sagaStep, 0, len(steps))
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			if step.bestEffort {
				log.Error().Err(err).
					Str("op", op).
					Str("step", step.name).
					Msg("best-effort saga step failed; continuing")
				continue
			}
			rollback(ctx, op, step.name, completed)
			return err
		}
		completed = append(completed, step)
	}
	return nil
}

func rollback(ctx context.Context, op, failedStep string, completed []sagaStep) {
	for i := len(completed) - 1; i >= 0; i-- {
		step := completed[i]
		if step.compensate == nil {
			continue
		}
		if err := step.compensate(ctx); err != nil {
			log.Error().Err(err).
				Str("op", op).
				Str("failed_step", failedStep).
				Str("compensating_step", step.name).
				Msg("saga compensation failed; balance may be inconsistent")
		}
	}
}
