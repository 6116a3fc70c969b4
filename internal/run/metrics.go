package run

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

type metrics struct {
	transitions atomic.Int64
	dispatched  atomic.Int64
	failed      atomic.Int64
	pollErrors  atomic.Int64
	loadErrors  atomic.Int64
	started     time.Time
}

func (m *metrics) reset() {
	m.transitions.Store(0)
	m.dispatched.Store(0)
	m.failed.Store(0)
	m.pollErrors.Store(0)
	m.loadErrors.Store(0)
	m.started = time.Now()
}

func (m *metrics) incTransitions() { m.transitions.Add(1) }
func (m *metrics) incDispatched()  { m.dispatched.Add(1) }
func (m *metrics) incFailed()      { m.failed.Add(1) }
func (m *metrics) incPollErrors()  { m.pollErrors.Add(1) }
func (m *metrics) incLoadErrors()  { m.loadErrors.Add(1) }

func (m *metrics) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "batteryrc_transitions_total %d\n", m.transitions.Load())
		fmt.Fprintf(w, "batteryrc_commands_dispatched_total %d\n", m.dispatched.Load())
		fmt.Fprintf(w, "batteryrc_commands_failed_total %d\n", m.failed.Load())
		fmt.Fprintf(w, "batteryrc_power_query_errors_total %d\n", m.pollErrors.Load())
		fmt.Fprintf(w, "batteryrc_config_load_errors_total %d\n", m.loadErrors.Load())
		fmt.Fprintf(w, "batteryrc_uptime_seconds %.0f\n", time.Since(m.started).Seconds())
	})
	return mux
}

func (m *metrics) serve(ctx context.Context, addr string, logger *logrus.Logger) {
	server := &http.Server{
		Addr:              addr,
		Handler:           m.handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()
	logger.Infof("metrics listening on http://%s/metrics", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Warnf("metrics server: %v", err)
	}
}
