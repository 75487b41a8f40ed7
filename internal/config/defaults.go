package config

import (
	"time"

	"github.com/spf13/viper"
)

// Defaults for the batched favicon reload; tuned to keep the host
// responsive while a large batch completes in bounded time.
const (
	DefaultReloadBatchSize       = 5
	DefaultReloadPerTabDelay     = 500 * time.Millisecond
	DefaultReloadInterBatchDelay = time.Second
)

func applyDefaults(v *viper.Viper) {
	v.SetDefault("database.path", "tabnap.db")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("bridge.listen_addr", "127.0.0.1:7829")
	v.SetDefault("bridge.extension_origin", "chrome-extension://tabnap")

	v.SetDefault("watchdog.ceiling", 10*time.Minute)

	v.SetDefault("reload.batch_size", DefaultReloadBatchSize)
	v.SetDefault("reload.per_tab_delay", DefaultReloadPerTabDelay)
	v.SetDefault("reload.inter_batch_delay", DefaultReloadInterBatchDelay)

	v.SetDefault("timers.suspension_scan", time.Minute)
	v.SetDefault("timers.cleanup", 5*time.Minute)
	v.SetDefault("timers.reconcile", 5*time.Minute)
	v.SetDefault("timers.session_autosave", time.Minute)
}
