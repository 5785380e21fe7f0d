// Package saga runs a sequence of forward steps, each paired with a
// compensating action. When a step fails, the compensations of every
// completed step run in reverse order. Compensation is best-effort:
// a failed undo is logged and the remaining undos still run, so the
// caller always gets the original step error back.
package saga

import (
	"context"
	"log/slog"
)

type Step struct {
	Name       string
	Run        func(ctx context.Context) error
	Compensate func(ctx context.Context) error // nil when the step has no undo
}

type Saga struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Saga { return &Saga{log: log} }

func (s *Saga) Execute(ctx context.Context, steps []Step) error {
	done := make([]Step, 0, len(steps))
	for _, st := range steps {
		if err := st.Run(ctx); err != nil {
			s.rollback(ctx, done, st.Name)
			return err
		}
		done = append(done, st)
	}
	return nil
}

func (s *Saga) rollback(ctx context.Context, done []Step, failed string) {
	for i := len(done) - 1; i >= 0; i-- {
		st := done[i]
		if st.Compensate == nil {
			continue
		}
		if err := st.Compensate(ctx); err != nil {
			// Leaves an orphan behind; reconciliation has to pick it up.
			s.log.Error("saga compensation failed",
				"step", st.Name, "failed_step", failed, "err", err)
		}
	}
}
