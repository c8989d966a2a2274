package instance

import (
	"os"
	"os/signal"
	"syscall"
)

// HandleTermination releases the claim and calls exit(0) as soon as the
// process receives SIGTERM or an interrupt. Nothing else runs on that path;
// ordinary shutdown goes through Release. The returned func uninstalls the
// handler.
func (c *Claim) HandleTermination(exit func(code int)) (stop func()) {
	if exit == nil {
		exit = os.Exit
	}
	signals := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(signals, syscall.SIGTERM, os.Interrupt)

	go func() {
		select {
		case <-signals:
			c.Release()
			exit(0)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(signals)
		select {
		case <-done:
		default:
			close(done)
		}
	}
}
