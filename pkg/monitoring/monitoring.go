package monitoring

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/voc/voctozoom/pkg/config"
	"github.com/voc/voctozoom/pkg/logger"
)

type Monitoring struct {
	conf   config.Monitoring
	server *http.Server
	log    *logger.Logger
}

// New creates new monitoring service.
func New(conf config.Monitoring, log *logger.Logger) *Monitoring {
	log = log.Tag("mon")
	addr := fmt.Sprintf(":%d", conf.Port)
	return &Monitoring{
		conf:   conf,
		server: &http.Server{Addr: addr, Handler: Handler(conf, log)},
		log:    log,
	}
}

// Handler serves prometheus metrics and pprof under the URL prefix.
func Handler(conf config.Monitoring, log *logger.Logger) http.Handler {
	h := http.NewServeMux()
	if conf.ProfilingEnabled {
		prefix := conf.URLPrefix + "/debug/pprof"
		log.Info().Msgf("Profiling is enabled at %v", prefix)
		h.HandleFunc(prefix+"/", pprof.Index)
		h.HandleFunc(prefix+"/cmdline", pprof.Cmdline)
		h.HandleFunc(prefix+"/profile", pprof.Profile)
		h.HandleFunc(prefix+"/symbol", pprof.Symbol)
		h.HandleFunc(prefix+"/trace", pprof.Trace)
		// named profiles need explicit handlers under a custom prefix
		for _, p := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
			h.Handle(prefix+"/"+p, pprof.Handler(p))
		}
	}
	if conf.MetricEnabled {
		path := conf.URLPrefix + "/metrics"
		log.Info().Msgf("Prometheus metric is enabled at %v", path)
		h.Handle(path, promhttp.Handler())
	}
	return h
}

// Run serves in the background. The server never touches channel
// state, it only reads the metric registry.
func (m *Monitoring) Run() {
	m.log.Info().Msgf("Starting monitoring server at %v", m.server.Addr)
	go func() {
		if err := m.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.log.Error().Err(err).Msg("Monitoring server failed")
		}
	}()
}

func (m *Monitoring) Shutdown(ctx context.Context) error {
	m.log.Info().Msg("Shutting down monitoring server")
	return m.server.Shutdown(ctx)
}

func (m *Monitoring) String() string {
	return fmt.Sprintf("monitoring::%s:%d", m.conf.URLPrefix, m.conf.Port)
}
