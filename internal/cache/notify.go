package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// PGNotifier broadcasts a catalog change to every instance listening on Channel.
type PGNotifier struct {
	DB      *gorm.DB
	Channel string
}

func (n *PGNotifier) Notify(ctx context.Context, payload string) error {
	return n.DB.WithContext(ctx).Exec("SELECT pg_notify(?, ?)", n.Channel, payload).Error
}

// Listen subscribes to channel with a lib/pq listener and calls onNotify for
// every notification. A reconnect also calls onNotify with an empty payload,
// since notifications may have been missed while disconnected.
func Listen(ctx context.Context, dsn, channel string, logger *slog.Logger, onNotify func(payload string)) error {
	l := pq.NewListener(dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn("notify_listener_event", "event", int(ev), "error", err)
		}
	})
	if err := l.Listen(channel); err != nil {
		_ = l.Close()
		return err
	}

	go func() {
		defer l.Close()
		ping := time.NewTicker(90 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case n := <-l.Notify:
				if n == nil {
					onNotify("")
					continue
				}
				onNotify(n.Extra)
			case <-ping.C:
				if err := l.Ping(); err != nil {
					logger.Warn("notify_listener_ping_failed", "error", err)
				}
			}
		}
	}()

	logger.Info("notify_listener_started", "channel", channel)
	return nil
}
