package main

import (
	"context"
	"time"

	"builders-panel/pkg/log"

	"github.com/coreos/go-systemd/v22/daemon"
)

// notify sends state to systemd. Outside a notify unit it does nothing.
func notify(ctx context.Context, l log.Logger, state string) {
	sent, err := daemon.SdNotify(false, state)
	if err != nil {
		l.Warnf(ctx, "cmd.panel.notify: %s: %v", state, err)
		return
	}
	if sent {
		l.Debugf(ctx, "cmd.panel.notify: sent %s", state)
	}
}

// watchdog pings systemd at half of WatchdogSec until ctx is done.
func watchdog(ctx context.Context, l log.Logger) {
	interval, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		l.Warnf(ctx, "cmd.panel.watchdog: %v", err)
		return
	}
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			notify(ctx, l, daemon.SdNotifyWatchdog)
		}
	}
}
