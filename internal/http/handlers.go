package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/rootstats/internal/chart"
	"github.com/mauv0809/rootstats/internal/game"
	"github.com/mauv0809/rootstats/internal/ledger"
	"github.com/mauv0809/rootstats/internal/stats"
	"github.com/slack-go/slack"
)

// maxBodyBytes bounds uploaded games and archives.
const maxBodyBytes = 8 << 20

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.FromContext(r.Context()).Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ListGamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := s.Store.ListRecords(r.Context())
		if err != nil {
			http.Error(w, "Failed to list games", http.StatusInternalServerError)
			log.Error("Failed to list games from store", "error", err)
			return
		}
		if records == nil {
			records = []ledger.Record{}
		}
		respondWithJSON(w, http.StatusOK, records)
	}
}

func (s *Server) AddGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var record ledger.Record
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&record); err != nil {
			http.Error(w, "Invalid game JSON", http.StatusBadRequest)
			return
		}

		g, err := record.Game(s.Roster)
		if err != nil {
			log.Warn("Rejected invalid game", "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would have saved game", "date", record.Date, "players", g.Len())
			respondWithJSON(w, http.StatusOK, savedGameResponse{DryRun: true})
			return
		}

		id, err := s.Store.SaveGame(r.Context(), g)
		if err != nil {
			http.Error(w, "Failed to save game", http.StatusInternalServerError)
			log.Error("Failed to save game", "error", err)
			return
		}
		s.Metrics.IncGamesRecorded()
		log.Info("Recorded game", "id", id, "date", record.Date)
		respondWithJSON(w, http.StatusCreated, savedGameResponse{ID: id})
	}
}

func (s *Server) DeleteGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		err := s.Store.DeleteGame(r.Context(), id)
		switch {
		case errors.Is(err, ledger.ErrGameNotFound):
			http.Error(w, "Game not found", http.StatusNotFound)
			return
		case err != nil:
			http.Error(w, "Failed to delete game", http.StatusInternalServerError)
			log.Error("Failed to delete game", "id", id, "error", err)
			return
		}
		log.Info("Deleted game", "id", id)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ClearGamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear all games")
		if err := s.Store.Clear(r.Context()); err != nil {
			http.Error(w, "Failed to clear games", http.StatusInternalServerError)
			log.Error("Failed to clear games", "error", err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Games cleared!")
	}
}

func (s *Server) ExportGamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := s.Store.ListRecords(r.Context())
		if err != nil {
			http.Error(w, "Failed to list games", http.StatusInternalServerError)
			log.Error("Failed to list games for export", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/msgpack")
		w.Header().Set("Content-Disposition", `attachment; filename="rootstats.msgpack"`)
		if err := ledger.EncodeArchive(w, records); err != nil {
			log.Error("Failed to write archive", "error", err)
			return
		}
		log.Info("Exported games", "count", len(records))
	}
}

func (s *Server) ImportGamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		archive, err := ledger.DecodeArchive(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if isDryRunFromContext(r) {
			for i, rec := range archive.Games {
				if _, err := rec.Game(s.Roster); err != nil {
					http.Error(w, fmt.Sprintf("record %d: %v", i, err), http.StatusBadRequest)
					return
				}
			}
			log.Info("[Dry Run] Would have imported games", "count", len(archive.Games))
			respondWithJSON(w, http.StatusOK, importResponse{Total: len(archive.Games)})
			return
		}

		n, err := s.Store.Import(r.Context(), archive.Games)
		if err != nil {
			if isValidationErr(err) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "Failed to import games", http.StatusInternalServerError)
			log.Error("Failed to import games", "error", err)
			return
		}
		for range n {
			s.Metrics.IncGamesRecorded()
		}
		respondWithJSON(w, http.StatusOK, importResponse{Imported: n, Total: len(archive.Games)})
	}
}

func (s *Server) RosterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]any{
			"names":    s.Roster.Names(),
			"factions": s.Roster.Factions(),
		})
	}
}

func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, ok := s.summarize(w, r)
		if !ok {
			return
		}
		respondWithJSON(w, http.StatusOK, summary)
	}
}

func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, ok := s.summarize(w, r)
		if !ok {
			return
		}
		charts, err := chart.Dashboard(summary)
		if err != nil {
			http.Error(w, "Failed to build charts", http.StatusInternalServerError)
			log.Error("Failed to build charts", "error", err)
			return
		}
		for _, k := range chart.Kinds() {
			s.Metrics.IncChartsRendered(string(k))
		}
		respondWithJSON(w, http.StatusOK, charts)
	}
}

func (s *Server) ChartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := chart.ParseKind(r.PathValue("kind"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		summary, ok := s.summarize(w, r)
		if !ok {
			return
		}
		c, err := chart.Build(kind, summary)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		s.Metrics.IncChartsRendered(string(kind))
		respondWithJSON(w, http.StatusOK, c)
	}
}

// NotifyStatsHandler posts one chart, or the whole dashboard when no kind is given, to Slack.
func (s *Server) NotifyStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r)

		var kind chart.Kind
		if raw := r.URL.Query().Get("kind"); raw != "" {
			k, err := chart.ParseKind(raw)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			kind = k
		}

		summary, ok := s.summarize(w, r)
		if !ok {
			return
		}

		var err error
		if kind == "" {
			var charts []chart.Chart
			if charts, err = chart.Dashboard(summary); err == nil {
				err = s.Notifier.SendDashboard(r.Context(), charts, isDryRun)
			}
		} else {
			var c chart.Chart
			if c, err = chart.Build(kind, summary); err == nil {
				err = s.Notifier.SendChart(r.Context(), c, isDryRun)
			}
		}
		if err != nil {
			http.Error(w, "Failed to send stats notification", http.StatusInternalServerError)
			log.Error("Failed to send stats notification", "kind", kind, "error", err)
			return
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Stats notification sent.")
	}
}

// StatsCommandHandler answers the /rootstats slash command. The command text
// selects a chart kind; an empty text returns every chart.
func (s *Server) StatsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		text := strings.TrimSpace(r.FormValue("text"))
		log.Info("Received stats command", "text", text, "user", r.FormValue("user_name"))

		var msg any
		var err error
		if text == "" {
			summary, ok := s.summarize(w, r)
			if !ok {
				return
			}
			var charts []chart.Chart
			if charts, err = chart.Dashboard(summary); err == nil {
				msg, err = s.Notifier.FormatDashboardResponse(charts)
			}
		} else if kind, kerr := chart.ParseKind(text); kerr != nil {
			msg, err = s.Notifier.FormatUsageResponse(usage(text))
		} else {
			summary, ok := s.summarize(w, r)
			if !ok {
				return
			}
			var c chart.Chart
			if c, err = chart.Build(kind, summary); err == nil {
				s.Metrics.IncChartsRendered(string(kind))
				msg, err = s.Notifier.FormatChartResponse(c)
			}
		}

		if err != nil {
			http.Error(w, "Failed to format stats", http.StatusInternalServerError)
			log.Error("Failed to format stats", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}

func usage(text string) string {
	kinds := make([]string, 0, len(chart.Kinds()))
	for _, k := range chart.Kinds() {
		kinds = append(kinds, "`"+string(k)+"`")
	}
	return fmt.Sprintf("Sorry, I don't know the chart *%s*. Try one of %s, or leave it empty for all of them.", text, strings.Join(kinds, ", "))
}

// summarize loads every game and aggregates it, writing the error response itself on failure.
func (s *Server) summarize(w http.ResponseWriter, r *http.Request) (*stats.Summary, bool) {
	summary, err := s.computeSummary(r.Context())
	if err != nil {
		http.Error(w, "Failed to compute statistics", http.StatusInternalServerError)
		log.Error("Failed to compute statistics", "error", err)
		return nil, false
	}
	return summary, true
}

func (s *Server) computeSummary(ctx context.Context) (*stats.Summary, error) {
	games, err := s.Store.ListGames(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	summary, err := stats.Summarize(games)
	if err != nil {
		return nil, err
	}
	s.Metrics.ObserveAggregationDuration(time.Since(start).Seconds())
	s.Metrics.IncStatsComputed()
	log.FromContext(ctx).Debug("Computed statistics", "games", summary.Games, "duration", time.Since(start))
	return summary, nil
}

func isValidationErr(err error) bool {
	for _, target := range []error{
		game.ErrUnknownName, game.ErrUnknownFaction, game.ErrNoPlayers,
		game.ErrNoWinner, game.ErrMultipleWinners, game.ErrDuplicateName,
		ledger.ErrInvalidDate,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func respondWithJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response to JSON", "error", err)
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	respondWithJSON(w, http.StatusOK, msg)
}
