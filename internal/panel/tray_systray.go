//go:build cgo || windows
// +build cgo windows

package panel

import (
	"context"
	"sync"

	"github.com/getlantern/systray"

	"github.com/example/bitpop/internal/desktop"
	"github.com/example/bitpop/internal/logging"
	"github.com/example/bitpop/internal/system"
)

type systrayController struct {
	actions actions

	mu        sync.Mutex
	clock     *systray.MenuItem
	date      *systray.MenuItem
	battery   *systray.MenuItem
	wifi      *systray.MenuItem
	bluetooth *systray.MenuItem
}

func newTrayController(a actions) trayController {
	return &systrayController{actions: a}
}

func (c *systrayController) Run(ctx context.Context, updates <-chan State) error {
	done := make(chan struct{})
	itemCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go systray.Run(func() {
		if icon := trayIcon(); icon != nil {
			systray.SetIcon(icon)
		}
		systray.SetTooltip("BitPop")

		c.build(itemCtx)
		go c.listen(itemCtx, updates)
	}, func() {
		cancel()
		close(done)
	})

	select {
	case <-ctx.Done():
		systray.Quit()
		<-done
		return ctx.Err()
	case <-done:
		return nil
	}
}

func (c *systrayController) build(ctx context.Context) {
	c.mu.Lock()
	c.clock = disabledItem("")
	c.date = disabledItem("")
	systray.AddSeparator()
	c.battery = disabledItem(system.Battery{}.Label())
	c.wifi = systray.AddMenuItem("Wi-Fi: "+system.Snapshot{}.Label(), "Toggle the wireless radio")
	c.bluetooth = systray.AddMenuItem("Bluetooth: "+system.Snapshot{}.Label(), "Toggle bluetooth power")
	wifi, bluetooth := c.wifi, c.bluetooth
	c.mu.Unlock()

	onClick(ctx, wifi.ClickedCh, c.actions.ToggleWifi)
	onClick(ctx, bluetooth.ClickedCh, c.actions.ToggleBluetooth)

	airplane := systray.AddMenuItem("Airplane Mode", "Switch every radio off")
	onClick(ctx, airplane.ClickedCh, c.actions.Airplane)

	systray.AddSeparator()
	c.buildApps(ctx)
	c.buildPower(ctx)

	systray.AddSeparator()
	closeItem := systray.AddMenuItem("Close", "Close the panel")
	onClick(ctx, closeItem.ClickedCh, systray.Quit)
}

func (c *systrayController) buildApps(ctx context.Context) {
	apps := c.actions.Apps()
	parent := systray.AddMenuItem("Applications", "Launch an application")
	if len(apps) == 0 {
		parent.Disable()
		return
	}
	for _, rec := range apps {
		mi := parent.AddSubMenuItem(rec.Name, rec.Exec)
		onClick(ctx, mi.ClickedCh, func(rec desktop.Record) func() {
			return func() {
				if err := c.actions.Launch(rec); err == nil {
					systray.Quit()
				}
			}
		}(rec))
	}
}

func (c *systrayController) buildPower(ctx context.Context) {
	parent := systray.AddMenuItem("Power", "Session and power actions")
	for _, action := range system.PowerActions {
		mi := parent.AddSubMenuItem(action.Label(), string(action))
		onClick(ctx, mi.ClickedCh, func(action system.PowerAction) func() {
			return func() {
				if err := c.actions.Power(action); err == nil {
					systray.Quit()
				}
			}
		}(action))
	}
}

func (c *systrayController) listen(ctx context.Context, updates <-chan State) {
	for {
		select {
		case <-ctx.Done():
			return
		case state, ok := <-updates:
			if !ok {
				systray.Quit()
				return
			}
			c.render(state)
		}
	}
}

func (c *systrayController) render(state State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.clock == nil {
		return
	}
	logging.Debugf("rendering panel state at %s", state.Clock)

	c.clock.SetTitle(state.Clock)
	c.date.SetTitle(state.Date)
	c.battery.SetTitle(state.Battery.Label())
	c.wifi.SetTitle("Wi-Fi: " + state.Wifi.Label())
	c.bluetooth.SetTitle("Bluetooth: " + state.Bluetooth.Label())
	setChecked(c.wifi, state.Wifi.Enabled)
	setChecked(c.bluetooth, state.Bluetooth.Enabled)
	systray.SetTooltip("BitPop " + state.Clock)
}

func disabledItem(title string) *systray.MenuItem {
	mi := systray.AddMenuItem(title, "")
	mi.Disable()
	return mi
}

func setChecked(mi *systray.MenuItem, on bool) {
	if on {
		mi.Check()
		return
	}
	mi.Uncheck()
}

func onClick(ctx context.Context, ch <-chan struct{}, fn func()) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				fn()
			}
		}
	}()
}
