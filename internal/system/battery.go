package system

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultBatteryDir is the sysfs directory of the primary battery.
const DefaultBatteryDir = "/sys/class/power_supply/BAT0"

// Battery is the charge readout. Available is false when either readout file
// is missing, which is distinct from a 0% charge.
type Battery struct {
	Available bool
	Capacity  string
	Status    string
}

// ReadBattery loads capacity and status from dir.
func ReadBattery(dir string) Battery {
	capacity, err := os.ReadFile(filepath.Join(dir, "capacity"))
	if err != nil {
		return Battery{}
	}
	status, err := os.ReadFile(filepath.Join(dir, "status"))
	if err != nil {
		return Battery{}
	}
	return ParseBattery(string(capacity), string(status))
}

// ParseBattery builds a Battery from the raw file contents.
func ParseBattery(capacity, status string) Battery {
	capacity = strings.TrimSpace(capacity)
	if capacity == "" {
		return Battery{}
	}
	return Battery{
		Available: true,
		Capacity:  capacity,
		Status:    strings.TrimSpace(status),
	}
}

// Phase maps the kernel status word to display text.
func (b Battery) Phase() string {
	switch b.Status {
	case "Charging":
		return "Charging"
	case "Discharging":
		return "On Battery"
	default:
		return b.Status
	}
}

// Label renders the readout, e.g. "76% • On Battery".
func (b Battery) Label() string {
	if !b.Available {
		return "Battery N/A"
	}
	return b.Capacity + "%" + labelSeparator + b.Phase()
}
