// Package panel drives the tray popup: it keeps the clock, battery and radio
// readouts current and routes menu clicks to the host.
package panel

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/example/bitpop/internal/desktop"
	"github.com/example/bitpop/internal/logging"
	"github.com/example/bitpop/internal/system"
)

const (
	defaultClockInterval   = 60 * time.Second
	defaultBatteryInterval = 30 * time.Second
	defaultSettleDelay     = time.Second
	commandTimeout         = 5 * time.Second
)

// ErrUnavailable is returned when the binary was built without tray support.
var ErrUnavailable = errors.New("system tray is unavailable without cgo support")

// Host is the machine the panel reports on and controls.
type Host interface {
	Wifi(ctx context.Context) system.Snapshot
	Bluetooth(ctx context.Context) system.Snapshot
	Battery() system.Battery
	ToggleWifi(ctx context.Context) error
	ToggleBluetooth(ctx context.Context) error
	Airplane(ctx context.Context) error
	Power(action system.PowerAction) error
	Start(name string, args ...string) error
}

// State is everything the tray displays.
type State struct {
	Clock     string
	Date      string
	Battery   system.Battery
	Wifi      system.Snapshot
	Bluetooth system.Snapshot
}

type trayController interface {
	Run(ctx context.Context, updates <-chan State) error
}

// actions are the callbacks menu items invoke.
type actions interface {
	Apps() []desktop.Record
	Launch(rec desktop.Record) error
	ToggleWifi()
	ToggleBluetooth()
	Airplane()
	Power(action system.PowerAction) error
}

// Runner owns the refresh loop and publishes State to the tray.
type Runner struct {
	host Host
	apps *desktop.Repository
	now  func() time.Time

	clockInterval   time.Duration
	batteryInterval time.Duration
	settleDelay     time.Duration

	mu    sync.RWMutex
	state State

	tray            trayController
	updates         chan State
	refreshRequests chan struct{}
}

// NewRunner constructs a Runner backed by the platform tray.
func NewRunner(host Host, apps *desktop.Repository) *Runner {
	r := &Runner{
		host:            host,
		apps:            apps,
		now:             time.Now,
		clockInterval:   defaultClockInterval,
		batteryInterval: defaultBatteryInterval,
		settleDelay:     defaultSettleDelay,
		updates:         make(chan State, 1),
		refreshRequests: make(chan struct{}, 1),
	}
	r.tray = newTrayController(r)
	return r
}

// Start shows the tray and refreshes it until ctx is canceled or the tray
// exits. A tray that closes normally returns nil.
func (r *Runner) Start(ctx context.Context) error {
	log.Printf("bitpop panel starting with %d applications", r.apps.Len())
	logging.Debugf("panel intervals: clock=%s battery=%s", r.clockInterval, r.batteryInterval)

	trayErr := make(chan error, 1)
	go func() {
		trayErr <- r.tray.Run(ctx, r.updates)
	}()
	defer close(r.updates)

	r.refreshAll(ctx)

	clock := time.NewTicker(r.clockInterval)
	defer clock.Stop()
	battery := time.NewTicker(r.batteryInterval)
	defer battery.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("bitpop panel stopping")
			return ctx.Err()
		case <-clock.C:
			r.refreshClock()
		case <-battery.C:
			r.refreshBattery()
		case <-r.refreshRequests:
			logging.Debugf("status refresh requested")
			r.refreshAll(ctx)
		case err := <-trayErr:
			return err
		}
	}
}

// Latest returns the most recently published state.
func (r *Runner) Latest() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Apps lists every launchable application.
func (r *Runner) Apps() []desktop.Record {
	return r.apps.All()
}

// Launch starts rec through the host.
func (r *Runner) Launch(rec desktop.Record) error {
	if err := desktop.Launch(r.host, rec); err != nil {
		log.Printf("launch %s failed: %v", rec.Name, err)
		return err
	}
	logging.Debugf("launched %s from %s", rec.Name, rec.Path)
	return nil
}

// ToggleWifi flips the wireless radio and schedules a re-check.
func (r *Runner) ToggleWifi() {
	r.toggle("wifi", r.host.ToggleWifi)
}

// ToggleBluetooth flips bluetooth power and schedules a re-check.
func (r *Runner) ToggleBluetooth() {
	r.toggle("bluetooth", r.host.ToggleBluetooth)
}

// Airplane switches all radios off and schedules a re-check.
func (r *Runner) Airplane() {
	r.toggle("airplane mode", r.host.Airplane)
}

// Power runs a session or machine power action.
func (r *Runner) Power(action system.PowerAction) error {
	if err := r.host.Power(action); err != nil {
		log.Printf("power action failed: %v", err)
		return err
	}
	return nil
}

func (r *Runner) toggle(name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		logging.Debugf("%s toggle skipped: %v", name, err)
	}
	time.AfterFunc(r.settleDelay, r.requestRefresh)
}

func (r *Runner) refreshAll(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	now := r.now()
	next := State{
		Clock:     ClockText(now),
		Date:      DateText(now),
		Battery:   r.host.Battery(),
		Wifi:      r.host.Wifi(ctx),
		Bluetooth: r.host.Bluetooth(ctx),
	}
	r.setState(func(s *State) { *s = next })
}

func (r *Runner) refreshClock() {
	now := r.now()
	r.setState(func(s *State) {
		s.Clock = ClockText(now)
		s.Date = DateText(now)
	})
}

func (r *Runner) refreshBattery() {
	battery := r.host.Battery()
	r.setState(func(s *State) { s.Battery = battery })
}

func (r *Runner) setState(apply func(*State)) {
	r.mu.Lock()
	next := r.state
	apply(&next)
	if next == r.state {
		r.mu.Unlock()
		return
	}
	r.state = next
	r.mu.Unlock()
	logging.Debugf("publishing panel state: wifi=%q bluetooth=%q battery=%q", next.Wifi.Label(), next.Bluetooth.Label(), next.Battery.Label())
	r.publish(next)
}

func (r *Runner) requestRefresh() {
	if r.refreshRequests == nil {
		return
	}
	select {
	case r.refreshRequests <- struct{}{}:
	default:
	}
}

func (r *Runner) publish(state State) {
	if r.updates == nil {
		return
	}

	select {
	case r.updates <- state:
	default:
		select {
		case <-r.updates:
		default:
		}
		select {
		case r.updates <- state:
		default:
		}
	}
}
