package cli

import (
	"context"
	"sync"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/prodbar/internal/config"
	"github.com/ytget/prodbar/internal/metrics"
	"github.com/ytget/prodbar/internal/model"
	"github.com/ytget/prodbar/internal/render"
	"github.com/ytget/prodbar/internal/settings"
	"github.com/ytget/prodbar/internal/ui"
)

// AppID identifies the application to fyne, which keys preferences by it
const AppID = "com.ytget.prodbar"

func addRun(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the metrics bar (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBar(cmd.Context(), e)
		},
	}
	topLevel.AddCommand(cmd)
}

// windowOptions converts the window config into coordinator sizing
func windowOptions(w config.WindowConfig) render.Options {
	return render.Options{
		Padding: w.Padding,
		MinSize: model.Size{Width: w.MinWidth, Height: w.MinHeight},
		MaxSize: model.Size{Width: w.MaxWidth},
	}
}

// runBar opens the bar and blocks until it is closed or ctx is cancelled
func runBar(ctx context.Context, e *env) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := e.logger

	a := app.NewWithID(AppID)
	a.SetIcon(ui.LoadAppIcon())

	storage, disk, err := openStorage(e.cfg, a)
	if err != nil {
		return err
	}
	c := newCore(storage, disk, logger)

	shell := ui.NewShell(a, e.cfg.Language, logger)
	coord := render.NewCoordinator(c.catalog, shell.Bar(), shell.Bar(), windowOptions(e.cfg.Window))
	shell.Bar().SetSizer(coord.WindowSize)

	ctrl := settings.NewController(settings.Deps{
		Catalog:      c.catalog,
		Store:        c.store,
		Preferences:  c.prefs,
		Coordinator:  coord,
		View:         shell.Settings(),
		Notifier:     shell,
		OnAppearance: shell.ApplyAppearance,
		Logger:       logger,
	})
	shell.Bind(ctrl)

	poller := metrics.NewPoller(
		metrics.NewRandomSource(),
		func() []model.QueueID { return ctrl.State().Queues },
		ctrl.OnSnapshot,
		e.cfg.RefreshInterval,
		logger,
	)
	ctrl.SetRefresher(poller)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, groupCtx := errgroup.WithContext(ctx)

	if disk != nil {
		keys, err := disk.Watch(groupCtx, logger)
		if err != nil {
			return err
		}
		group.Go(func() error {
			followStore(groupCtx, keys,
				func() { ctrl.ReloadSelection() },
				func() { ctrl.ReloadAppearance() })
			return nil
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()
		shell.Quit()
		return nil
	})

	var starting sync.WaitGroup
	a.Lifecycle().SetOnStarted(func() {
		starting.Add(1)
		go func() {
			defer starting.Done()
			ctrl.Start()
			poller.Start()
		}()
	})

	logger.Info("prodbar starting", "store", e.cfg.Storage.Backend, "interval", poller.Interval().String())
	shell.Run()

	cancel()
	stopPoller(&starting, poller)
	return group.Wait()
}

// stopPoller waits for a start still in progress, then stops the poller and
// its in-flight pull
func stopPoller(starting *sync.WaitGroup, poller *metrics.Poller) {
	starting.Wait()
	<-poller.Stop().Done()
}
