package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"statboard/internal/common"
	"statboard/internal/refresh"
	"statboard/models"
	"statboard/pkg/storage"
)

// CyclesAction lists past refresh cycles in a table.
func CyclesAction(c *cli.Context) error {
	database, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	limit := c.Int("limit")
	cycles, err := database.ListCycles(limit)
	if err != nil {
		return fmt.Errorf("failed to list cycles: %w", err)
	}

	if len(cycles) == 0 {
		fmt.Println("No cycles found")
		return nil
	}

	// Print table header
	fmt.Printf("%-6s %-20s %-10s %-8s %-10s %-6s %-30s\n",
		"ID", "Created", "Endpoints", "Decoded", "Fallbacks", "Auth", "Report")
	fmt.Println(strings.Repeat("-", 100))

	for _, cy := range cycles {
		auth := "ok"
		if cy.Unauthorized {
			auth = "FAIL"
		}
		fmt.Printf("%-6d %-20s %-10d %-8d %-10d %-6s %-30s\n",
			cy.CycleID,
			cy.CreatedAt.Format("2006-01-02 15:04:05"),
			cy.EndpointCount,
			cy.DecodedCount,
			cy.FallbackCount,
			auth,
			cy.ReportPath,
		)
	}

	fmt.Printf("\nTotal: %d cycles\n", len(cycles))
	fmt.Printf("\nTip: Use 'statboard cycle <id>' to see details\n")

	return nil
}

// CycleAction shows slot outcomes and stored records for a specific cycle.
func CycleAction(c *cli.Context) error {
	database, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	cycleID, err := GetCycleIDOrLatest(c, database)
	if err != nil {
		return err
	}

	cycle, err := database.GetCycleByID(cycleID)
	if err != nil {
		return fmt.Errorf("failed to get cycle: %w", err)
	}

	slots, err := database.GetSlots(cycleID)
	if err != nil {
		return fmt.Errorf("failed to get slots: %w", err)
	}

	// Print cycle details
	fmt.Printf("Cycle %d\n", cycle.CycleID)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Created:    %s\n", cycle.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Endpoints:  %d total (%d decoded, %d fallbacks)\n",
		cycle.EndpointCount, cycle.DecodedCount, cycle.FallbackCount)
	if cycle.Unauthorized {
		fmt.Printf("Auth:       FAILED (token rejected during this cycle)\n")
	}
	if cycle.ReportPath != "" {
		fmt.Printf("Report:     %s\n", cycle.ReportPath)
	}

	fmt.Printf("\nSlots (%d):\n", len(slots))
	fmt.Println(strings.Repeat("-", 60))
	for _, s := range slots {
		if s.Value.Valid {
			fmt.Printf("  %-26s %-10s %v\n", s.Name, s.Confidence, s.Value.Float64)
		} else {
			fmt.Printf("  %-26s %-10s\n", s.Name, s.Confidence)
		}
	}

	for _, slot := range []string{"mostUsedTemplates", "recentTemplates", "recentGeneratedContent", "mostUsedGeneratedContent"} {
		records, err := database.GetContentRecords(cycleID, slot)
		if err != nil {
			return fmt.Errorf("failed to get content records: %w", err)
		}
		if len(records) == 0 {
			continue
		}
		fmt.Printf("\n%s (%d):\n", slot, len(records))
		fmt.Println(strings.Repeat("-", 60))
		for i, r := range records {
			fmt.Printf("%2d. [%s] %s (uses: %d)\n", i+1, r.Type, r.Title, r.Uses)
		}
	}

	fmt.Printf("\nTip: Use 'statboard show %d' to see the full report\n", cycleID)

	return nil
}

// ShowAction prints the stored report document for a cycle, optionally
// projected down to selected card fields.
func ShowAction(c *cli.Context) error {
	database, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	cycleID, err := GetCycleIDOrLatest(c, database)
	if err != nil {
		return err
	}

	cycle, err := database.GetCycleByID(cycleID)
	if err != nil {
		return fmt.Errorf("failed to get cycle: %w", err)
	}
	if cycle.ReportPath == "" {
		return fmt.Errorf("cycle %d has no stored report", cycleID)
	}

	data, err := storage.ReadReport(cycle.ReportPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("report not found: %s\nRun 'statboard refresh' to produce a new one", cycle.ReportPath)
		}
		return fmt.Errorf("failed to read report: %w", err)
	}

	fields := c.String("fields")
	if fields == "" {
		// Print cycle reminder as YAML comment
		fmt.Printf("# Cycle: %d\n", cycleID)
		fmt.Print(string(data))
		return nil
	}

	// Field projection works on the cards only
	var output refresh.Output
	if err := yaml.Unmarshal(data, &output); err != nil {
		return fmt.Errorf("failed to parse stored report: %w", err)
	}
	if output.View == nil {
		return fmt.Errorf("stored report has no view model")
	}

	filtered := make([]map[string]interface{}, len(output.View.Cards))
	for i, card := range output.View.Cards {
		filtered[i] = common.FilterResultFields(card, fields, false)
	}
	encoded, err := json.MarshalIndent(filtered, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cards: %w", err)
	}
	fmt.Println(string(encoded))

	return nil
}

// EndpointsAction lists the configured endpoints with their recent fetch
// attempts.
func EndpointsAction(c *cli.Context) error {
	config, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	database, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	for _, ep := range config.Endpoints {
		fmt.Printf("%s (%s)\n", ep.Key, ep.Role)
		fmt.Printf("  %s\n", ep.URL)

		accesses, err := database.ListAccesses(ep.Key, 3)
		if err != nil {
			return fmt.Errorf("failed to list accesses: %w", err)
		}
		if len(accesses) == 0 {
			fmt.Printf("  (never fetched)\n\n")
			continue
		}
		for _, a := range accesses {
			fmt.Printf("  %s  status:%d  %s\n",
				a.AccessedAt.Format("2006-01-02 15:04:05"), a.StatusCode, a.Outcome)
		}
		fmt.Println()
	}

	return nil
}

// UsersAction lists every user seen across cycles, oldest sighting first.
func UsersAction(c *cli.Context) error {
	database, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	users, err := database.ListUsers()
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	if len(users) == 0 {
		fmt.Println("No users recorded yet")
		return nil
	}

	fmt.Printf("%-24s %-20s %-28s %-20s\n", "Key", "Name", "Email", "First Seen")
	fmt.Println(strings.Repeat("-", 96))
	for _, u := range users {
		fmt.Printf("%-24s %-20s %-28s %-20s\n",
			u.Key, u.Name, u.Email, u.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("\nTotal: %d users\n", len(users))

	return nil
}
