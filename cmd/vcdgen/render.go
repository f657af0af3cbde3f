package main

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newRenderCmd() *cobra.Command {
	var jobs int
	cmd := &cobra.Command{
		Use:   "render SCENARIO.toml...",
		Short: "Render TOML scenarios to VCD files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderAll(cmd.Context(), args, jobs)
		},
	}
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "number of scenarios rendered in parallel")
	return cmd
}

// renderAll renders each scenario with its own writer. The first failure
// cancels scenarios that have not started yet.
func renderAll(ctx context.Context, paths []string, jobs int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sc, err := loadScenario(path)
			if err != nil {
				return err
			}
			log.Debugf("rendering %s to %s", path, sc.Output)
			if err := sc.render(); err != nil {
				return errors.WithMessage(err, path)
			}
			log.Infof("wrote %s", sc.Output)
			return nil
		})
	}
	return g.Wait()
}
