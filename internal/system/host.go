package system

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"strings"

	"github.com/example/bitpop/internal/logging"
)

// Host queries and toggles the local machine. Every call recomputes state
// from scratch.
type Host struct {
	Runner     CommandRunner
	BatteryDir string
	// User is passed to loginctl on log out.
	User string
}

// NewHost returns a Host running real commands against batteryDir.
func NewHost(batteryDir string) *Host {
	if batteryDir == "" {
		batteryDir = DefaultBatteryDir
	}
	return &Host{
		Runner:     ExecRunner{},
		BatteryDir: batteryDir,
		User:       currentUser(),
	}
}

// Wifi reports the wireless radio state and the active connection name.
func (h *Host) Wifi(ctx context.Context) Snapshot {
	radio, err := h.Runner.Output(ctx, "nmcli", "radio", "wifi")
	if err != nil {
		logging.Debugf("nmcli radio query failed: %v", err)
		return Snapshot{}
	}
	if !strings.Contains(string(radio), wifiEnabledMarker) {
		return ParseWifi(string(radio), "")
	}

	active, err := h.Runner.Output(ctx, "nmcli", "connection", "show", "--active")
	if err != nil {
		logging.Debugf("nmcli active connection query failed: %v", err)
		active = nil
	}
	return ParseWifi(string(radio), string(active))
}

// Bluetooth reports the controller power state and the first connected device.
func (h *Host) Bluetooth(ctx context.Context) Snapshot {
	show, err := h.Runner.Output(ctx, "bluetoothctl", "show")
	if err != nil {
		logging.Debugf("bluetoothctl show failed: %v", err)
		return Snapshot{}
	}
	if !strings.Contains(string(show), bluetoothPoweredMarker) {
		return ParseBluetooth(string(show), "")
	}

	devices, err := h.Runner.Output(ctx, "bluetoothctl", "devices", "Connected")
	if err != nil {
		logging.Debugf("bluetoothctl devices failed: %v", err)
		devices = nil
	}
	return ParseBluetooth(string(show), string(devices))
}

// Battery reads the charge readout.
func (h *Host) Battery() Battery {
	return ReadBattery(h.BatteryDir)
}

// ToggleWifi flips the wireless radio. Nothing happens when the current state
// cannot be read.
func (h *Host) ToggleWifi(ctx context.Context) error {
	radio, err := h.Runner.Output(ctx, "nmcli", "radio", "wifi")
	if err != nil {
		return fmt.Errorf("query wifi radio: %w", err)
	}
	state := "on"
	if strings.Contains(string(radio), wifiEnabledMarker) {
		state = "off"
	}
	if _, err := h.Runner.Output(ctx, "nmcli", "radio", "wifi", state); err != nil {
		return fmt.Errorf("switch wifi %s: %w", state, err)
	}
	return nil
}

// ToggleBluetooth flips controller power. Nothing happens when the current
// state cannot be read.
func (h *Host) ToggleBluetooth(ctx context.Context) error {
	show, err := h.Runner.Output(ctx, "bluetoothctl", "show")
	if err != nil {
		return fmt.Errorf("query bluetooth: %w", err)
	}
	state := "on"
	if strings.Contains(string(show), bluetoothPoweredMarker) {
		state = "off"
	}
	if _, err := h.Runner.Output(ctx, "bluetoothctl", "power", state); err != nil {
		return fmt.Errorf("switch bluetooth %s: %w", state, err)
	}
	return nil
}

// Airplane switches every radio off.
func (h *Host) Airplane(ctx context.Context) error {
	if _, err := h.Runner.Output(ctx, "nmcli", "radio", "all", "off"); err != nil {
		return fmt.Errorf("airplane mode: %w", err)
	}
	return nil
}

// Power starts a session or machine power action without waiting for it.
func (h *Host) Power(action PowerAction) error {
	name, args, err := action.command(h.User)
	if err != nil {
		return err
	}
	if err := h.Runner.Start(name, args...); err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	return nil
}

// Start spawns a detached command, letting Host launch applications.
func (h *Host) Start(name string, args ...string) error {
	return h.Runner.Start(name, args...)
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
