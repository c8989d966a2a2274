//go:build !cgo && !windows
// +build !cgo,!windows

package panel

import "context"

type unavailableTray struct{}

func newTrayController(actions) trayController {
	return unavailableTray{}
}

func (unavailableTray) Run(context.Context, <-chan State) error {
	return ErrUnavailable
}
