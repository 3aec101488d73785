package helpers

import (
	"errors"

	"github.com/metalstrap/metalstrap/pkg/utils/timer"
	"github.com/spf13/cobra"
)

// TimingFlagName is the name of the persistent flag that toggles timing output.
const TimingFlagName = "timing"

// ConfigFlagName is the name of the flag selecting the machine configuration file.
const ConfigFlagName = "config"

var (
	// ErrNilCommand indicates a flag lookup was attempted on a nil command.
	ErrNilCommand = errors.New("command is nil")

	// ErrTimingFlagNotFound indicates the timing flag is not registered on the command chain.
	ErrTimingFlagNotFound = errors.New("timing flag not found")
)

// IsTimingEnabled reports whether the timing flag is set. The flag is looked
// up on the command's own flags, its persistent flags, and every parent's
// persistent flags.
func IsTimingEnabled(cmd *cobra.Command) (bool, error) {
	if cmd == nil {
		return false, ErrNilCommand
	}

	flag := cmd.Flag(TimingFlagName)
	if flag == nil {
		return false, ErrTimingFlagNotFound
	}

	return flag.Value.String() == "true", nil
}

// MaybeTimer returns the timer when timing output is enabled for cmd, and nil
// otherwise. A nil command, a nil timer, a disabled flag, and a missing flag
// all yield nil, so the result can be passed straight to notify messages.
func MaybeTimer(cmd *cobra.Command, tmr timer.Timer) timer.Timer {
	if cmd == nil || tmr == nil {
		return nil
	}

	enabled, err := IsTimingEnabled(cmd)
	if err != nil || !enabled {
		return nil
	}

	return tmr
}

// ConfigFilePath returns the value of the config flag when it is registered
// on the command chain, or the empty string otherwise.
func ConfigFilePath(cmd *cobra.Command) string {
	if cmd == nil {
		return ""
	}

	flag := cmd.Flag(ConfigFlagName)
	if flag == nil {
		return ""
	}

	return flag.Value.String()
}
