package http

import (
	"net/http"

	"github.com/mauv0809/rootstats/internal/config"
	"github.com/mauv0809/rootstats/internal/game"
	"github.com/mauv0809/rootstats/internal/ledger"
	"github.com/mauv0809/rootstats/internal/metrics"
	"github.com/mauv0809/rootstats/internal/notifier"
)

type Server struct {
	Store          ledger.Store
	Roster         *game.Roster
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
}

type savedGameResponse struct {
	ID     string `json:"id,omitempty"`
	DryRun bool   `json:"dry_run,omitempty"`
}

type importResponse struct {
	Imported int `json:"imported"`
	Total    int `json:"total"`
}
