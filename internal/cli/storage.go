package cli

import (
	"context"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"

	"github.com/ytget/prodbar/internal/catalog"
	"github.com/ytget/prodbar/internal/config"
	barerrors "github.com/ytget/prodbar/internal/errors"
	"github.com/ytget/prodbar/internal/kvstore"
	"github.com/ytget/prodbar/internal/selection"
)

// core is the state shared by every command: catalog, selection and
// appearance preferences over one storage backend
type core struct {
	catalog *catalog.Catalog
	store   *selection.Store
	prefs   *config.Preferences
	disk    *kvstore.Disk
}

func newCore(storage kvstore.Storage, disk *kvstore.Disk, logger *slog.Logger) *core {
	cat := catalog.New()
	return &core{
		catalog: cat,
		store:   selection.NewStore(storage, cat, logger),
		prefs:   config.NewPreferences(storage, logger),
		disk:    disk,
	}
}

// openStorage returns the configured backend. The preferences backend
// needs the fyne app; the disk backend is also returned as *kvstore.Disk so
// callers can watch it.
func openStorage(cfg *config.Config, app fyne.App) (kvstore.Storage, *kvstore.Disk, error) {
	switch cfg.Storage.Backend {
	case config.BackendDisk:
		disk, err := kvstore.NewDisk(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, barerrors.WrapWithCode(err, barerrors.ErrConfig,
				"Cannot open the disk store at "+cfg.Storage.Dir,
				"check storage.dir or pass --state-dir")
		}
		return disk, disk, nil
	case config.BackendPreferences:
		if app == nil {
			return nil, nil, barerrors.New(barerrors.ErrConfig,
				"This command needs the disk store",
				"set storage.backend: disk or pass --store disk")
		}
		return kvstore.NewPreferences(app), nil, nil
	default:
		return nil, nil, barerrors.New(barerrors.ErrConfig,
			fmt.Sprintf("unknown storage backend %q", cfg.Storage.Backend), "")
	}
}

// openHeadless opens the core for commands that run without a display
func openHeadless(e *env) (*core, error) {
	storage, disk, err := openStorage(e.cfg, nil)
	if err != nil {
		return nil, err
	}
	return newCore(storage, disk, e.logger), nil
}

// followStore calls onSelection or onAppearance when another process writes
// the matching keys, until ctx is done or keys is closed
func followStore(ctx context.Context, keys <-chan string, onSelection, onAppearance func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case key, ok := <-keys:
			if !ok {
				return
			}
			switch key {
			case selection.KeyQueues, selection.KeyMetrics:
				if onSelection != nil {
					onSelection()
				}
			case config.KeyTheme, config.KeyFontSize:
				if onAppearance != nil {
					onAppearance()
				}
			}
		}
	}
}
