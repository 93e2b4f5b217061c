package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/flowgridgo/internal/ctxlog"
	"github.com/specialistvlad/flowgridgo/internal/diag"
	"github.com/specialistvlad/flowgridgo/internal/graph"
)

// ErrRunFailed is returned when a run reported error diagnostics.
var ErrRunFailed = errors.New("run reported errors")

// Run loads, compiles and executes the configured graph, then stops it and
// prints its diagnostics.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx, a.config.HealthcheckPort)
		defer func() {
			err = errors.Join(err, a.closeHealthcheckServer(ctx))
		}()
	}

	model, err := a.Load(ctx)
	if err != nil {
		return err
	}
	asset, err := graph.Compile(ctx, model, a.registry)
	if err != nil {
		return fmt.Errorf("failed to compile graph: %w", err)
	}

	run, err := graph.NewRun(ctx, asset, graph.Options{
		Deferred: a.config.Deferred,
		MaxDepth: a.config.MaxDepth,
		Owner:    a,
	})
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	a.lastRun.Store(run)

	a.logger.Info("🚀 Starting run...", "run_id", run.ID().String(), "entry", asset.Entry)
	execErr := run.Execute(ctx)
	stopErr := run.Stop(ctx)
	a.logger.Info("🏁 Run finished.", "run_id", run.ID().String(), "events", len(run.Trace(ctx)))

	errCount := a.printDiagnostics(run.Messages())
	if err := errors.Join(execErr, stopErr); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	if errCount > 0 {
		return fmt.Errorf("%w: %d error(s)", ErrRunFailed, errCount)
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) printDiagnostics(msgs []diag.Message) int {
	errCount := 0
	for _, m := range msgs {
		if m.Severity == diag.Error {
			errCount++
		}
		fmt.Fprintln(a.outW, m.String())
	}
	return errCount
}
