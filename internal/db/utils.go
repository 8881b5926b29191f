package db

import (
	"fmt"

	"github.com/urfave/cli/v2"

	dbpkg "statboard/pkg/db"
)

// GetCycleIDOrLatest returns the cycle ID from args, or the latest cycle if not provided
func GetCycleIDOrLatest(c *cli.Context, database *dbpkg.DB) (int64, error) {
	if c.NArg() == 0 {
		// No cycle ID provided, use latest
		cycles, err := database.ListCycles(1)
		if err != nil {
			return 0, fmt.Errorf("failed to get latest cycle: %w", err)
		}
		if len(cycles) == 0 {
			return 0, fmt.Errorf("no cycles found. Run 'statboard refresh' first")
		}
		return cycles[0].CycleID, nil
	}

	// Parse provided cycle ID
	var cycleID int64
	_, err := fmt.Sscanf(c.Args().First(), "%d", &cycleID)
	if err != nil {
		return 0, fmt.Errorf("invalid cycle ID: %s", c.Args().First())
	}
	return cycleID, nil
}

// openDatabase opens the database at --db when set, else next to the binary.
func openDatabase(c *cli.Context) (*dbpkg.DB, error) {
	if c.IsSet("db") {
		return dbpkg.OpenPath(c.String("db"))
	}
	return dbpkg.Open()
}
