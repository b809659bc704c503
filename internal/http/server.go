package http

import (
	"net/http"

	"github.com/mauv0809/rootstats/internal/config"
	"github.com/mauv0809/rootstats/internal/game"
	"github.com/mauv0809/rootstats/internal/ledger"
	"github.com/mauv0809/rootstats/internal/metrics"
	"github.com/mauv0809/rootstats/internal/notifier"
)

func NewServer(store ledger.Store, roster *game.Roster, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier) *Server {
	server := &Server{
		Store:          store,
		Roster:         roster,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /games", Chain(s.ListGamesHandler(), paramsMiddleware))
	s.Router.Handle("POST /games", Chain(s.AddGameHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /games", Chain(s.ClearGamesHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /games/{id}", Chain(s.DeleteGameHandler(), paramsMiddleware))
	s.Router.Handle("GET /games/export", Chain(s.ExportGamesHandler(), paramsMiddleware))
	s.Router.Handle("POST /games/import", Chain(s.ImportGamesHandler(), paramsMiddleware))
	s.Router.Handle("GET /roster", Chain(s.RosterHandler(), paramsMiddleware))
	s.Router.Handle("GET /stats", Chain(s.StatsHandler(), paramsMiddleware))
	s.Router.Handle("GET /charts", Chain(s.DashboardHandler(), paramsMiddleware))
	s.Router.Handle("GET /charts/{kind}", Chain(s.ChartHandler(), paramsMiddleware))
	s.Router.Handle("POST /notify-stats", Chain(s.NotifyStatsHandler(), paramsMiddleware))
	s.Router.Handle("POST /slack/command/stats", Chain(s.StatsCommandHandler(), paramsMiddleware, s.slackVerifyMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
