package refresh

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"statboard/internal/common"
	"statboard/models"
	"statboard/pkg/caching"
	"statboard/pkg/dashboard"
	"statboard/pkg/db"
	"statboard/pkg/probe"
	"statboard/pkg/storage"
)

// RefreshAction runs one full refresh cycle: fetch every configured endpoint,
// compose the view model, persist the cycle, write the report, print the
// output document. Exit code 3 signals an auth failure, 1 a cycle that needed
// fallback data.
func RefreshAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	var maxAge time.Duration
	var err error
	if c.Bool("force-fetch") {
		maxAge = 0
	} else {
		maxAge, err = time.ParseDuration(c.String("max-age"))
		if err != nil {
			logger.Error("invalid max-age duration", "error", err)
			os.Exit(2)
		}
	}

	config, err := models.LoadConfig(c.String("config"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}

	// Sanitize and validate endpoint URLs before fetching (fail fast)
	rawURLs := make([]string, len(config.Endpoints))
	for i, ep := range config.Endpoints {
		rawURLs[i] = ep.URL
	}
	sanitizedURLs, invalidURLs := common.SanitizeAndValidateURLs(rawURLs)
	if len(invalidURLs) > 0 {
		fmt.Fprintf(os.Stderr, "Error: %d endpoint URL(s) are malformed (even after cleanup):\n", len(invalidURLs))
		for _, badURL := range invalidURLs {
			fmt.Fprintf(os.Stderr, "  - %s\n", badURL)
		}
		os.Exit(2)
	}
	for i := range config.Endpoints {
		config.Endpoints[i].URL = sanitizedURLs[i]
	}

	cache, err := caching.NewCache(c.String("cache-dir"), maxAge)
	if err != nil {
		logger.Error("failed to initialize cache", "error", err)
		os.Exit(2)
	}

	database, err := openDatabase(c)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	resultsDir := config.ResultsDir
	if c.IsSet("output-dir") {
		resultsDir = c.String("output-dir")
	}
	store, err := storage.NewStorage(resultsDir)
	if err != nil {
		logger.Error("failed to initialize results directory", "error", err)
		os.Exit(2)
	}

	workers := config.WorkerCount
	if c.IsSet("workers") {
		workers = c.Int("workers")
	}

	fetcher := probe.NewFetcher(config.Token())
	aggregator := dashboard.New(fetcher, cache, logger, workers)

	vm, report := aggregator.Compose(context.Background(), config.Endpoints)

	cycleID, persistErr := persistCycle(database, config, vm, report)
	if persistErr != nil {
		logger.Warn("failed to persist cycle", "error", persistErr)
	}

	output := buildOutput(cycleID, vm, report)
	output.Stats.TotalTimeSeconds = time.Since(startTime).Seconds()

	var outputData []byte
	var marshalErr error
	if strings.ToLower(c.String("format")) == "json" {
		outputData, marshalErr = json.MarshalIndent(output, "", "  ")
	} else {
		outputData, marshalErr = yaml.Marshal(output)
	}
	if marshalErr != nil {
		logger.Error("failed to marshal output", "error", marshalErr)
		os.Exit(2)
	}

	if cycleID != 0 {
		reportPath := store.ReportPath(cycleID, vm.GeneratedAt)
		if err := store.SaveReport(reportPath, outputData); err != nil {
			logger.Warn("failed to save report", "error", err)
		} else if err := database.SetCycleReportPath(cycleID, reportPath); err != nil {
			logger.Warn("failed to record report path", "error", err)
		}
	}

	if c.IsSet("out") {
		if err := os.WriteFile(c.String("out"), outputData, 0644); err != nil {
			logger.Warn("failed to write output file", "path", c.String("out"), "error", err)
		}
	}

	fmt.Println(string(outputData))

	if report.Unauthorized {
		logger.Error("one or more endpoints rejected the token", "keys", report.UnauthorizedKeys)
		os.Exit(3)
	}
	if output.Status == "partial_fallback" {
		os.Exit(1)
	}

	return nil
}

// openDatabase opens the database at --db when set, else next to the binary.
func openDatabase(c *cli.Context) (*db.DB, error) {
	if c.IsSet("db") {
		return db.OpenPath(c.String("db"))
	}
	return db.Open()
}

func buildOutput(cycleID int64, vm *models.ViewModel, report dashboard.Report) *Output {
	var fallbackSlots []string
	for name, conf := range vm.Slots {
		if conf == models.ConfidenceFallback {
			fallbackSlots = append(fallbackSlots, name)
		}
	}
	sort.Strings(fallbackSlots)

	status := "success"
	switch {
	case report.Unauthorized:
		status = "auth_failure"
	case len(fallbackSlots) > 0:
		status = "partial_fallback"
	}

	decoded := 0
	for _, outcome := range report.Outcomes {
		if outcome == probe.OutcomeDecoded {
			decoded++
		}
	}

	return &Output{
		Status:          status,
		CycleID:         cycleID,
		FallbackSlots:   fallbackSlots,
		FailedEndpoints: report.FailedKeys,
		View:            vm,
		Stats: Stats{
			Endpoints: len(report.Outcomes),
			Decoded:   decoded,
			Fallbacks: len(fallbackSlots),
		},
	}
}

// persistCycle writes the whole cycle to the database: endpoint rows, access
// attempts, the cycle itself, slot outcomes, content rows and user sightings.
func persistCycle(database *db.DB, config *models.Config, vm *models.ViewModel, report dashboard.Report) (int64, error) {
	for _, ep := range config.Endpoints {
		if err := database.UpsertEndpoint(ep.Key, ep.URL, string(ep.Role)); err != nil {
			return 0, err
		}
		outcome := report.Outcomes[ep.Key]
		success := outcome == probe.OutcomeDecoded
		if err := database.RecordAccess(ep.Key, report.Statuses[ep.Key], string(outcome), success); err != nil {
			return 0, err
		}
	}

	decoded := 0
	for _, outcome := range report.Outcomes {
		if outcome == probe.OutcomeDecoded {
			decoded++
		}
	}
	fallbacks := 0
	for _, conf := range vm.Slots {
		if conf == models.ConfidenceFallback {
			fallbacks++
		}
	}

	cycleID, err := database.InsertCycle(len(config.Endpoints), decoded, fallbacks, report.Unauthorized)
	if err != nil {
		return 0, err
	}

	for name, conf := range vm.Slots {
		var value *float64
		if card := vm.Card(dashboard.CardLabel(name)); card != nil {
			value = &card.Value
		}
		if err := database.RecordSlot(cycleID, name, conf, value); err != nil {
			return cycleID, err
		}
	}

	contentSlots := map[string][]models.ContentRecord{
		dashboard.SlotMostUsedTemplates: vm.MostUsedTemplates,
		dashboard.SlotRecentTemplates:   vm.RecentTemplates,
		dashboard.SlotRecentGenerated:   vm.RecentGeneratedContent,
		dashboard.SlotMostUsedGenerated: vm.MostUsedGeneratedContent,
	}
	for slot, records := range contentSlots {
		for _, rec := range records {
			if err := database.InsertContentRecord(cycleID, slot, rec); err != nil {
				return cycleID, err
			}
		}
	}

	for _, user := range vm.Users {
		if err := database.UpsertUser(user); err != nil {
			return cycleID, err
		}
	}

	return cycleID, nil
}
