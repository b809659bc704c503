package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mauv0809/rootstats/internal/chart"
	"github.com/mauv0809/rootstats/internal/chart/terminal"
	"github.com/mauv0809/rootstats/internal/ledger"
	"github.com/spf13/cobra"
)

var (
	gameDate    string
	gamePlayers []string
	dryRun      bool
	notifyKind  string
	plain       bool
	archivePath string
)

func init() {
	addCmd.Flags().StringVar(&gameDate, "date", time.Now().Format(time.DateOnly), "The day the game was played (YYYY-MM-DD)")
	addCmd.Flags().StringArrayVarP(&gamePlayers, "player", "p", nil, "A seat as name:faction, suffixed with :winner for the winner (repeatable)")
	addCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the game without saving it")
	_ = addCmd.MarkFlagRequired("player")

	notifyCmd.Flags().StringVar(&notifyKind, "kind", "", "Post a single chart instead of the whole dashboard")
	notifyCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the Slack message instead of posting it")

	chartCmd.Flags().BoolVar(&plain, "plain", false, "Write unframed charts to stdout")

	exportCmd.Flags().StringVarP(&archivePath, "out", "o", "rootstats.msgpack", "File to write the archive to")
	importCmd.Flags().StringVarP(&archivePath, "in", "i", "rootstats.msgpack", "Archive file to import")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(notifyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List the recorded games",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/games")
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a finished game",
	Example: `  rootstats-cli add --date 2025-01-31 -p Agrim:Cats:winner -p Munira:Birds -p "Tobias Bl.:Vagabond"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := parseRecord(gameDate, gamePlayers)
		if err != nil {
			return err
		}
		body, err := json.Marshal(record)
		if err != nil {
			return err
		}
		endpoint := "/games"
		if dryRun {
			endpoint += "?dry_run=true"
		}
		return performRequest(http.MethodPost, endpoint, "application/json", bytes.NewReader(body))
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/games/"+url.PathEscape(args[0]), "", nil)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show game counts, win counts and win rates as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stats")
	},
}

var chartCmd = &cobra.Command{
	Use:       "chart [kind]",
	Short:     "Draw one statistics chart, or all of them, in the terminal",
	ValidArgs: kindNames(),
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		var charts []chart.Chart
		if len(args) == 0 {
			if err := getJSON("/charts", &charts); err != nil {
				return err
			}
		} else {
			var c chart.Chart
			if err := getJSON("/charts/"+args[0], &c); err != nil {
				return err
			}
			charts = []chart.Chart{c}
		}

		var r chart.Renderer = terminal.New(nil)
		if plain {
			r = terminal.New(cmd.OutOrStdout())
		}
		return chart.RenderAll(cmd.Context(), r, charts)
	},
}

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Post the statistics charts to Slack",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		if notifyKind != "" {
			q.Set("kind", notifyKind)
		}
		if dryRun {
			q.Set("dry_run", "true")
		}
		endpoint := "/notify-stats"
		if len(q) > 0 {
			endpoint += "?" + q.Encode()
		}
		return performRequest(http.MethodPost, endpoint, "", nil)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download all games as a msgpack archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(host + "/games/export")
		if err != nil {
			return fmt.Errorf("failed to make request: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("export failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}

		n, err := saveArchive(resp.Body, archivePath)
		if err != nil {
			return err
		}
		fmt.Printf("Exported %d games to %s\n", n, archivePath)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Upload a msgpack archive of games",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(archivePath)
		if err != nil {
			return err
		}
		defer f.Close()
		return performRequest(http.MethodPost, "/games/import", "application/msgpack", f)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func kindNames() []string {
	names := make([]string, 0, len(chart.Kinds()))
	for _, k := range chart.Kinds() {
		names = append(names, string(k))
	}
	return names
}

// parseRecord turns --player flags of the form name:faction[:winner] into a record.
func parseRecord(date string, seats []string) (ledger.Record, error) {
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return ledger.Record{}, fmt.Errorf("invalid --date %q, want YYYY-MM-DD", date)
	}

	record := ledger.Record{Date: date}
	for _, seat := range seats {
		parts := strings.Split(seat, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return ledger.Record{}, fmt.Errorf("invalid --player %q, want name:faction[:winner]", seat)
		}
		p := ledger.PlayerRecord{
			Name:    strings.TrimSpace(parts[0]),
			Faction: strings.TrimSpace(parts[1]),
		}
		if len(parts) == 3 {
			if !strings.EqualFold(strings.TrimSpace(parts[2]), "winner") {
				return ledger.Record{}, fmt.Errorf("invalid --player %q, the third field must be 'winner'", seat)
			}
			p.IsWinner = true
		}
		record.Players = append(record.Players, p)
	}
	return record, nil
}

func getJSON(endpoint string, v any) error {
	resp, err := http.Get(host + endpoint)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request to %s failed with status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func performGetRequest(endpoint string) error {
	return performRequest(http.MethodGet, endpoint, "", nil)
}

func performRequest(method, endpoint, contentType string, body io.Reader) error {
	target := host + endpoint
	fmt.Printf("Making %s request to %s\n", method, target)

	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}

// saveArchive writes the archive read from r to path. The file is only
// created once the archive decodes, so a broken download leaves path untouched.
func saveArchive(r io.Reader, path string) (int, error) {
	var buf bytes.Buffer
	archive, err := ledger.DecodeArchive(io.TeeReader(r, &buf))
	if err != nil {
		return 0, fmt.Errorf("invalid archive: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	if _, err := buf.WriteTo(f); err != nil {
		f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, err
	}
	return len(archive.Games), nil
}
