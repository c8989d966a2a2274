package system

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const activeConnections = `NAME        UUID                                  TYPE      DEVICE
MyHomeWifi  3f2a3a5e-8c1b-4a5e-9d4c-1b2c3d4e5f60  wifi      wlp2s0
lo          9a8b7c6d-5e4f-3a2b-1c0d-ffeeddccbbaa  loopback  lo
`

func TestParseWifi(t *testing.T) {
	tests := []struct {
		name   string
		radio  string
		active string
		want   Snapshot
	}{
		{
			name:   "enabled with connection",
			radio:  "wifi radio: enabled\n",
			active: activeConnections,
			want:   Snapshot{Available: true, Enabled: true, Detail: "MyHomeWifi"},
		},
		{
			name:  "disabled",
			radio: "wifi radio: disabled\n",
			want:  Snapshot{Available: true},
		},
		{
			name:   "enabled header only",
			radio:  "enabled",
			active: "NAME UUID TYPE DEVICE\n",
			want:   Snapshot{Available: true, Enabled: true},
		},
		{
			name:   "enabled blank data line",
			radio:  "enabled",
			active: "NAME UUID TYPE DEVICE\n   \n",
			want:   Snapshot{Available: true, Enabled: true},
		},
		{
			name:  "enabled no table",
			radio: "enabled",
			want:  Snapshot{Available: true, Enabled: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseWifi(tt.radio, tt.active))
		})
	}
}

func TestParseBluetooth(t *testing.T) {
	show := "Controller 00:11:22:33:44:55 (public)\n\tName: laptop\n\tPowered: yes\n\tDiscoverable: no\n"

	tests := []struct {
		name    string
		show    string
		devices string
		want    Snapshot
	}{
		{
			name:    "powered with device",
			show:    show,
			devices: "Device AA:BB:CC:DD:EE:FF MyHeadphones\n",
			want:    Snapshot{Available: true, Enabled: true, Detail: "MyHeadphones"},
		},
		{
			name:    "device name with spaces",
			show:    show,
			devices: "Device AA:BB:CC:DD:EE:FF Living Room Speaker\nDevice 11:22:33:44:55:66 Mouse\n",
			want:    Snapshot{Available: true, Enabled: true, Detail: "Living Room Speaker"},
		},
		{
			name:    "powered no devices",
			show:    show,
			devices: "",
			want:    Snapshot{Available: true, Enabled: true},
		},
		{
			name:    "powered short line",
			show:    show,
			devices: "Device AA:BB:CC:DD:EE:FF\n",
			want:    Snapshot{Available: true, Enabled: true},
		},
		{
			name: "unpowered",
			show: "Controller 00:11:22:33:44:55\n\tPowered: no\n",
			want: Snapshot{Available: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBluetooth(tt.show, tt.devices))
		})
	}
}

func TestSnapshotLabel(t *testing.T) {
	assert.Equal(t, "Status unknown", Snapshot{}.Label())
	assert.Equal(t, "Off", Snapshot{Available: true}.Label())
	assert.Equal(t, "On", Snapshot{Available: true, Enabled: true}.Label())
	assert.Equal(t, "On • MyHomeWifi", Snapshot{Available: true, Enabled: true, Detail: "MyHomeWifi"}.Label())
}

func TestBatteryLabel(t *testing.T) {
	assert.Equal(t, "76% • On Battery", ParseBattery("76\n", "Discharging\n").Label())
	assert.Equal(t, "40% • Charging", ParseBattery("40", "Charging").Label())
	assert.Equal(t, "100% • Full", ParseBattery("100\n", "Full\n").Label())
	assert.Equal(t, "0% • On Battery", ParseBattery("0\n", "Discharging\n").Label())
	assert.Equal(t, "Battery N/A", ParseBattery("", "Charging").Label())
}

func TestReadBattery(t *testing.T) {
	dir := t.TempDir()

	missing := ReadBattery(dir)
	assert.False(t, missing.Available)
	assert.Equal(t, "Battery N/A", missing.Label())

	assert.NoError(t, os.WriteFile(filepath.Join(dir, "capacity"), []byte("76\n"), 0o644))
	assert.False(t, ReadBattery(dir).Available, "status file still missing")

	assert.NoError(t, os.WriteFile(filepath.Join(dir, "status"), []byte("Discharging\n"), 0o644))
	got := ReadBattery(dir)
	assert.True(t, got.Available)
	assert.Equal(t, "76% • On Battery", got.Label())
}
