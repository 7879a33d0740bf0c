package notify

import (
	"github.com/rs/zerolog"

	"github.com/colonyops/toast/internal/core/notify"
)

// RegisterDebugLogger subscribes an observer that logs every broadcast at
// debug level. It returns the unsubscribe func.
func RegisterDebugLogger(s *Store, logger zerolog.Logger) func() {
	return s.Subscribe(func(items []notify.Notification) {
		ev := logger.Debug().Int("count", len(items))
		if len(items) > 0 {
			ev = ev.Int64("newest_id", items[len(items)-1].ID)
		}
		ev.Msg("notifications broadcast")
	})
}
