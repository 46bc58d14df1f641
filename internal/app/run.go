package app

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ms2csv/internal/convert"
)

// RunConvert executes one conversion run with signal-driven shutdown:
// SIGINT or SIGTERM closes the shutdown channel and the run stops at
// the next symbol boundary, with the run report still written.
func RunConvert(opts convert.Options) (success, failed int) {
	shutdown := make(chan struct{})
	done := make(chan struct{})

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		defer close(done)
		success, failed = convert.Run(opts, shutdown)
	}()

	select {
	case <-done:
	case sig := <-signals:
		slog.Info("received signal, graceful shutdown", "sig", sig)
		close(shutdown)
		<-done
	}
	return success, failed
}
