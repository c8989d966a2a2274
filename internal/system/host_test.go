package system

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	outputs map[string]string
	fail    map[string]bool
	calls   []string
	started []string
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, key)
	if f.fail[key] {
		return nil, errors.New("exit status 1")
	}
	out, ok := f.outputs[key]
	if !ok {
		return nil, errors.New("executable file not found in $PATH")
	}
	return []byte(out), nil
}

func (f *fakeRunner) Start(name string, args ...string) error {
	key := strings.Join(append([]string{name}, args...), " ")
	if f.fail[key] {
		return errors.New("start failed")
	}
	f.started = append(f.started, key)
	return nil
}

func newFakeHost(outputs map[string]string) (*Host, *fakeRunner) {
	runner := &fakeRunner{outputs: outputs, fail: map[string]bool{}}
	return &Host{Runner: runner, User: "alice"}, runner
}

func TestHostWifi(t *testing.T) {
	host, runner := newFakeHost(map[string]string{
		"nmcli radio wifi":                "enabled\n",
		"nmcli connection show --active": activeConnections,
	})

	assert.Equal(t, "On • MyHomeWifi", host.Wifi(context.Background()).Label())

	runner.fail["nmcli connection show --active"] = true
	assert.Equal(t, "On", host.Wifi(context.Background()).Label())

	runner.outputs["nmcli radio wifi"] = "disabled\n"
	runner.calls = nil
	assert.Equal(t, "Off", host.Wifi(context.Background()).Label())
	assert.Equal(t, []string{"nmcli radio wifi"}, runner.calls, "disabled radio skips the connection query")
}

func TestHostWifiUnknown(t *testing.T) {
	host, _ := newFakeHost(map[string]string{})
	snap := host.Wifi(context.Background())
	assert.False(t, snap.Available)
	assert.Equal(t, "Status unknown", snap.Label())
}

func TestHostBluetooth(t *testing.T) {
	host, runner := newFakeHost(map[string]string{
		"bluetoothctl show":              "Controller 00:11:22:33:44:55\n\tPowered: yes\n",
		"bluetoothctl devices Connected": "Device AA:BB:CC:DD:EE:FF MyHeadphones\n",
	})
	assert.Equal(t, "On • MyHeadphones", host.Bluetooth(context.Background()).Label())

	runner.fail["bluetoothctl show"] = true
	assert.Equal(t, "Status unknown", host.Bluetooth(context.Background()).Label())
}

func TestHostBatteryMissing(t *testing.T) {
	host, _ := newFakeHost(nil)
	host.BatteryDir = t.TempDir()
	assert.Equal(t, "Battery N/A", host.Battery().Label())
}

func TestToggleWifi(t *testing.T) {
	host, runner := newFakeHost(map[string]string{
		"nmcli radio wifi":     "enabled\n",
		"nmcli radio wifi off": "",
		"nmcli radio wifi on":  "",
	})

	require.NoError(t, host.ToggleWifi(context.Background()))
	assert.Equal(t, "nmcli radio wifi off", runner.calls[len(runner.calls)-1])

	runner.outputs["nmcli radio wifi"] = "disabled\n"
	require.NoError(t, host.ToggleWifi(context.Background()))
	assert.Equal(t, "nmcli radio wifi on", runner.calls[len(runner.calls)-1])
}

func TestToggleSkipsWhenQueryFails(t *testing.T) {
	host, runner := newFakeHost(map[string]string{})

	assert.Error(t, host.ToggleWifi(context.Background()))
	assert.Error(t, host.ToggleBluetooth(context.Background()))
	assert.Equal(t, []string{"nmcli radio wifi", "bluetoothctl show"}, runner.calls)
}

func TestToggleBluetooth(t *testing.T) {
	host, runner := newFakeHost(map[string]string{
		"bluetoothctl show":      "Controller 00:11:22:33:44:55\n\tPowered: no\n",
		"bluetoothctl power on":  "",
		"bluetoothctl power off": "",
	})

	require.NoError(t, host.ToggleBluetooth(context.Background()))
	assert.Equal(t, "bluetoothctl power on", runner.calls[len(runner.calls)-1])

	runner.outputs["bluetoothctl show"] = "\tPowered: yes\n"
	require.NoError(t, host.ToggleBluetooth(context.Background()))
	assert.Equal(t, "bluetoothctl power off", runner.calls[len(runner.calls)-1])
}

func TestAirplane(t *testing.T) {
	host, runner := newFakeHost(map[string]string{"nmcli radio all off": ""})
	require.NoError(t, host.Airplane(context.Background()))
	assert.Equal(t, []string{"nmcli radio all off"}, runner.calls)

	runner.fail["nmcli radio all off"] = true
	assert.Error(t, host.Airplane(context.Background()))
}

func TestPower(t *testing.T) {
	host, runner := newFakeHost(nil)

	for _, action := range PowerActions {
		require.NoError(t, host.Power(action))
	}
	assert.Equal(t, []string{
		"loginctl terminate-user alice",
		"systemctl suspend",
		"systemctl reboot",
		"systemctl poweroff",
	}, runner.started)

	assert.Error(t, host.Power(PowerAction("hibernate")))

	runner.fail["systemctl reboot"] = true
	assert.Error(t, host.Power(PowerReboot))
}

func TestParsePowerAction(t *testing.T) {
	action, err := ParsePowerAction("suspend")
	require.NoError(t, err)
	assert.Equal(t, PowerSuspend, action)
	assert.Equal(t, "Suspend", action.Label())
	assert.Equal(t, "system-suspend", action.Icon())

	_, err = ParsePowerAction("halt")
	assert.Error(t, err)
}
