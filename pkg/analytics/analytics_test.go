package analytics

import "testing"

func sampleRows() []map[string]any {
	mk := func(action, name string) map[string]any {
		return map[string]any{"Action": action, "UserName": name}
	}
	return []map[string]any{
		mk("Logged In", "Alice"),
		mk("Created Content", "Bob"),
		mk("Logged In", "Alice"),
		mk("Registered", "Carol"),
		mk("Logged In", "Bob"),
	}
}

func TestActionFrequency(t *testing.T) {
	freq := ActionFrequency(sampleRows())
	if freq["Logged In"] != 3 {
		t.Errorf("ActionFrequency()[Logged In] = %d, want 3", freq["Logged In"])
	}
	if freq["Registered"] != 1 {
		t.Errorf("ActionFrequency()[Registered] = %d, want 1", freq["Registered"])
	}
}

func TestActionFrequencyAliases(t *testing.T) {
	rows := []map[string]any{
		{"action": "login"},
		{"event": "login"},
		{"no_action_field": true},
	}
	freq := ActionFrequency(rows)
	if freq["login"] != 2 {
		t.Errorf("ActionFrequency()[login] = %d, want 2 via aliases", freq["login"])
	}
}

func TestSummaryPercentages(t *testing.T) {
	stats := Summary(map[string]int{"Logged In": 3, "Registered": 1})
	if len(stats) != 2 {
		t.Fatalf("Summary() len = %d, want 2", len(stats))
	}
	if stats[0].Action != "Logged In" || stats[0].Percent != "75.0" {
		t.Errorf("Summary()[0] = %+v, want Logged In at 75.0", stats[0])
	}
	if stats[1].Percent != "25.0" {
		t.Errorf("Summary()[1].Percent = %q, want 25.0", stats[1].Percent)
	}
}

func TestSummaryEmpty(t *testing.T) {
	if stats := Summary(nil); len(stats) != 0 {
		t.Errorf("Summary(nil) = %v, want empty", stats)
	}
}

func TestTopActiveUsers(t *testing.T) {
	users := TopActiveUsers(sampleRows(), 2)
	if len(users) != 2 {
		t.Fatalf("TopActiveUsers() len = %d, want 2", len(users))
	}
	if users[0].Name != "Alice" || users[0].Actions != 2 {
		t.Errorf("TopActiveUsers()[0] = %+v, want Alice with 2", users[0])
	}
	// Bob also has 2 actions; alphabetical tie-break puts Alice first.
	if users[1].Name != "Bob" {
		t.Errorf("TopActiveUsers()[1] = %+v, want Bob", users[1])
	}
}
