package system

import (
	"strings"
)

const (
	wifiEnabledMarker      = "enabled"
	bluetoothPoweredMarker = "Powered: yes"

	labelSeparator = " • "
)

// Snapshot is a freshly computed view of one subsystem. Available is false
// when the state could not be queried at all.
type Snapshot struct {
	Available bool
	Enabled   bool
	Detail    string
}

// Label renders the snapshot for display.
func (s Snapshot) Label() string {
	switch {
	case !s.Available:
		return "Status unknown"
	case !s.Enabled:
		return "Off"
	case s.Detail != "":
		return "On" + labelSeparator + s.Detail
	default:
		return "On"
	}
}

// ParseWifi reads `nmcli radio wifi` output and, when the radio is enabled,
// takes the first column of the first row of `nmcli connection show
// --active` as the network name.
func ParseWifi(radio, active string) Snapshot {
	if !strings.Contains(radio, wifiEnabledMarker) {
		return Snapshot{Available: true}
	}
	snap := Snapshot{Available: true, Enabled: true}

	lines := splitLines(active)
	if len(lines) > 1 {
		if fields := strings.Fields(lines[1]); len(fields) > 0 {
			snap.Detail = fields[0]
		}
	}
	return snap
}

// ParseBluetooth reads `bluetoothctl show` output and, when the controller is
// powered, takes the device name from the first line of `bluetoothctl
// devices Connected` ("Device <addr> <name>").
func ParseBluetooth(show, devices string) Snapshot {
	if !strings.Contains(show, bluetoothPoweredMarker) {
		return Snapshot{Available: true}
	}
	snap := Snapshot{Available: true, Enabled: true}

	lines := splitLines(devices)
	if len(lines) > 0 && lines[0] != "" {
		if parts := strings.SplitN(lines[0], " ", 3); len(parts) == 3 {
			snap.Detail = parts[2]
		}
	}
	return snap
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
