package commands

import (
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/toast/internal/core/config"
	"github.com/colonyops/toast/internal/core/notify"
	queue "github.com/colonyops/toast/internal/notify"
)

// newNotifier wires a Store, Debouncer and Notifier from the notifications
// config. The debug broadcast logger is attached when debug logging is on.
func newNotifier(cfg config.NotificationsConfig, clock clockwork.Clock) *queue.Notifier {
	store := queue.NewStore(
		queue.WithClock(clock),
		queue.WithDuplicateWindow(cfg.DuplicateWindow),
		queue.WithDefaultDuration(cfg.DefaultDuration),
		queue.WithTypeDuration(notify.TypeError, cfg.ErrorDuration),
		queue.WithTypeDuration(notify.TypePasswordChange, cfg.PasswordChangeDuration),
	)

	if log.Logger.GetLevel() <= zerolog.DebugLevel {
		queue.RegisterDebugLogger(store, log.Logger)
	}

	debouncer := queue.NewDebouncer(store, queue.WithDebounceClock(clock))

	return queue.NewNotifier(store, debouncer, queue.NotifierConfig{
		ErrorDebounce:  cfg.ErrorDebounce,
		DebounceWindow: cfg.DebounceWindow,
	})
}
