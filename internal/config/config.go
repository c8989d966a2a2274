package config

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/example/bitpop/internal/instance"
	"github.com/example/bitpop/internal/system"
)

const (
	envPrefix = "BITPOP"
	appDir    = "bitpop"

	KeyLockFile   = "lock_file"
	KeyBatteryDir = "battery_dir"
	KeyLogFile    = "log_file"
	KeyDebug      = "debug"
)

// Options holds the runtime settings. There is no configuration file; every
// value comes from a BITPOP_* environment variable or a default.
type Options struct {
	LockFile   string
	BatteryDir string
	LogFile    string
	Debug      bool
}

// New returns a viper instance with the environment binding and defaults
// applied. Callers may bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyLockFile, instance.DefaultPath())
	v.SetDefault(KeyBatteryDir, system.DefaultBatteryDir)
	v.SetDefault(KeyLogFile, DefaultLogFile())
	v.SetDefault(KeyDebug, false)
	return v
}

// Load resolves Options from v.
func Load(v *viper.Viper) Options {
	if v == nil {
		v = New()
	}
	return Options{
		LockFile:   v.GetString(KeyLockFile),
		BatteryDir: v.GetString(KeyBatteryDir),
		LogFile:    v.GetString(KeyLogFile),
		Debug:      v.GetBool(KeyDebug),
	}
}

// DefaultLogFile is the rotating log location under the XDG state directory.
func DefaultLogFile() string {
	return filepath.Join(xdg.StateHome, appDir, appDir+".log")
}
