// Package analytics summarizes activity-history rows: per-action percentage
// breakdowns and most-active-user rankings.
package analytics

import (
	"fmt"
	"sort"
	"strings"

	"statboard/models"
)

// actionKeys and nameKeys are the field aliases activity rows use, probed in
// order.
var (
	actionKeys = []string{"Action", "action", "event", "type"}
	nameKeys   = []string{"UserName", "userName", "name", "Name", "user"}
)

func firstString(row map[string]any, keys []string) string {
	for _, k := range keys {
		if s, ok := row[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// ActionFrequency counts activity rows per action label. Rows with no
// recognizable action field are skipped.
func ActionFrequency(rows []map[string]any) map[string]int {
	frequencies := make(map[string]int)
	for _, row := range rows {
		if action := firstString(row, actionKeys); action != "" {
			frequencies[action]++
		}
	}
	return frequencies
}

// Summary converts an action frequency map into percentage stats, one decimal
// each, sorted by share descending with a stable alphabetical tie-break.
func Summary(frequencies map[string]int) []models.ActivityStat {
	total := 0
	for _, count := range frequencies {
		total += count
	}
	if total == 0 {
		total = 1
	}

	stats := make([]models.ActivityStat, 0, len(frequencies))
	for action, count := range frequencies {
		stats = append(stats, models.ActivityStat{
			Action:  action,
			Count:   count,
			Percent: fmt.Sprintf("%.1f", float64(count)/float64(total)*100),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Action < stats[j].Action
	})
	return stats
}

// TopActiveUsers ranks users by action count, descending, truncated to n.
// Ties break alphabetically so the ranking is stable across runs.
func TopActiveUsers(rows []map[string]any, n int) []models.ActiveUser {
	counts := make(map[string]int)
	for _, row := range rows {
		if name := firstString(row, nameKeys); name != "" {
			counts[name]++
		}
	}

	users := make([]models.ActiveUser, 0, len(counts))
	for name, actions := range counts {
		users = append(users, models.ActiveUser{Name: name, Actions: actions})
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Actions != users[j].Actions {
			return users[i].Actions > users[j].Actions
		}
		return users[i].Name < users[j].Name
	})

	if n >= 0 && len(users) > n {
		users = users[:n]
	}
	return users
}
