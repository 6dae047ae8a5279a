package cli

import (
	"context"
	"log"
	"time"

	"github.com/sandeepkv93/taskpad/internal/config"
	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/notify"
	"github.com/sandeepkv93/taskpad/internal/storage"
	"github.com/sandeepkv93/taskpad/internal/tracker"
)

// session is one opened store plus the tracker that owns it.
type session struct {
	cfg     config.Config
	loc     *time.Location
	store   storage.SlotStore
	tracker *tracker.Tracker
	badge   *notify.Counter
}

// open loads config, opens the configured backend and builds a tracker.
// host receives notifications in addition to the desktop notifier, when that
// is enabled and supported.
func (o *rootOptions) open(ctx context.Context, host notify.Notifier) (*session, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	store, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return nil, err
	}

	var targets notify.Fanout
	if host != nil {
		targets = append(targets, host)
	}
	if cfg.Notifications.Desktop {
		desktop := notify.NewDesktop()
		if desktop.Supported() {
			targets = append(targets, desktop)
		} else {
			log.Printf("warning: %v", notify.ErrUnsupported)
		}
	}
	if len(targets) == 0 {
		targets = append(targets, notify.Log{})
	}

	badge := &notify.Counter{}
	slots := storage.NewSlots(store, model.Sanitizer{Now: o.now, NewID: o.newID})
	tr := tracker.New(ctx, slots, tracker.Options{
		Now:                  o.now,
		Location:             loc,
		NewID:                o.newID,
		Badge:                badge,
		Notifier:             targets,
		NotificationsEnabled: cfg.Notifications.Enabled,
	})
	return &session{cfg: cfg, loc: loc, store: store, tracker: tr, badge: badge}, nil
}

func (s *session) Close() error {
	if s == nil || s.store == nil {
		return nil
	}
	return s.store.Close()
}
