package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/prodbar/internal/metrics"
	"github.com/ytget/prodbar/internal/model"
	"github.com/ytget/prodbar/internal/termbar"
)

func addWatch(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show the bar as a live table in the terminal",
		Long: `Show the selected queues and metrics as a table that refreshes every
refresh_interval. Changes made by another prodbar on the same disk store
show up on the next refresh.

Keys:
  r        refresh now
  q, esc   quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			c, err := openHeadless(e)
			if err != nil {
				return err
			}
			return runWatch(ctx, e, c, cmd)
		},
	}
	topLevel.AddCommand(cmd)
}

func runWatch(ctx context.Context, e *env, c *core, cmd *cobra.Command) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var program *tea.Program
	poller := metrics.NewPoller(
		metrics.NewRandomSource(),
		func() []model.QueueID { return c.store.State().Queues },
		func(snapshot model.MetricsSnapshot) {
			program.Send(termbar.SnapshotMsg{State: c.store.State(), Snapshot: snapshot})
		},
		e.cfg.RefreshInterval,
		e.logger,
	)

	m := termbar.NewWatchModel(c.catalog, c.store.State(), func() { poller.RefreshNow() })
	program = tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithInput(cmd.InOrStdin()),
	)

	group, groupCtx := errgroup.WithContext(ctx)

	if c.disk != nil {
		keys, err := c.disk.Watch(groupCtx, e.logger)
		if err != nil {
			return err
		}
		group.Go(func() error {
			followStore(groupCtx, keys, func() {
				if _, changed := c.store.Reload(); changed {
					program.Send(termbar.NoticeMsg("selection changed elsewhere"))
					poller.RefreshNow()
				}
			}, nil)
			return nil
		})
	}

	group.Go(func() error {
		poller.Start()
		return nil
	})

	_, runErr := program.Run()
	cancel()
	waitErr := group.Wait()
	<-poller.Stop().Done()

	if errors.Is(runErr, tea.ErrProgramKilled) {
		runErr = nil
	}
	return errors.Join(runErr, waitErr)
}
