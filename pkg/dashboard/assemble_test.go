package dashboard

import (
	"testing"
	"time"

	"statboard/models"
	"statboard/pkg/probe"
)

func decoded(v any) fetchResult {
	return fetchResult{result: probe.Result{Status: 200, Outcome: probe.OutcomeDecoded, JSON: v}}
}

func undecodable(text string) fetchResult {
	return fetchResult{result: probe.Result{Status: 200, Outcome: probe.OutcomeUndecodable, Text: text}}
}

func TestScalarSlotConfidence(t *testing.T) {
	tests := []struct {
		name string
		r    fetchResult
		want float64
		conf models.Confidence
	}{
		{"bare number is exact", decoded(float64(42)), 42, models.ConfidenceExact},
		{"priority key is inferred", decoded(map[string]any{"count": float64(7)}), 7, models.ConfidenceInferred},
		{"array length is inferred", decoded([]any{1, 2, 3}), 3, models.ConfidenceInferred},
		{"embedded text number is inferred", undecodable("total: 93 rows"), 93, models.ConfidenceInferred},
		{"html salvage is inferred", undecodable("<html><body><p>Users online: 15</p></body></html>"), 15, models.ConfidenceInferred},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scalarSlot(tt.r, true)
			if !s.found {
				t.Fatal("scalarSlot() missed")
			}
			if s.value != tt.want || s.confidence != tt.conf {
				t.Errorf("scalarSlot() = (%v, %s), want (%v, %s)", s.value, s.confidence, tt.want, tt.conf)
			}
		})
	}
}

func TestScalarSlotMisses(t *testing.T) {
	misses := []fetchResult{
		{},
		{result: probe.Result{Status: 401, Outcome: probe.OutcomeUnauthorized}},
		undecodable("no digits here"),
		decoded(map[string]any{"note": "nothing numeric"}),
	}
	for i, r := range misses {
		if s := scalarSlot(r, true); s.found {
			t.Errorf("scalarSlot() case %d = %v, want miss", i, s.value)
		}
	}
}

func TestRowsSlotConfidence(t *testing.T) {
	row := map[string]any{"id": "x"}

	s := rowsSlot(decoded([]any{row}), true)
	if !s.found || s.confidence != models.ConfidenceExact {
		t.Errorf("bare array rowsSlot() = %+v, want exact", s)
	}

	s = rowsSlot(decoded(map[string]any{"data": []any{row}}), true)
	if !s.found || s.confidence != models.ConfidenceInferred {
		t.Errorf("wrapped rowsSlot() = %+v, want inferred", s)
	}

	if s = rowsSlot(undecodable("junk"), true); s.found {
		t.Errorf("undecodable rowsSlot() = %+v, want miss", s)
	}
}

func TestDeriveUsersDedup(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []map[string]any{
		{"userId": "u1", "email": "pat@example.com", "name": "Pat", "createdAt": "2024-02-10T00:00:00Z"},
		{"userId": "u1", "email": "pat@example.com", "name": "Pat", "createdAt": "2024-01-05T00:00:00Z"},
		{"email": "sam@example.com", "timestamp": "2024-02-01T00:00:00Z"},
	}

	users := deriveUsers(rows, now)
	if len(users) != 2 {
		t.Fatalf("deriveUsers() len = %d, want 2", len(users))
	}

	// Earliest instant wins the dedup, and output is sorted oldest first.
	if users[0].Key != "u1" {
		t.Errorf("users[0].Key = %q, want u1", users[0].Key)
	}
	want := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	if !users[0].CreatedAt.Equal(want) {
		t.Errorf("users[0].CreatedAt = %v, want %v", users[0].CreatedAt, want)
	}

	// No userId falls back to email as key, and the local part names the user.
	if users[1].Key != "sam@example.com" || users[1].Name != "sam" {
		t.Errorf("users[1] = %+v, want email key with local-part name", users[1])
	}
}

func TestDeriveUsersNoInstant(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	users := deriveUsers([]map[string]any{{"userId": "u9"}}, now)
	if len(users) != 1 || !users[0].CreatedAt.Equal(now) {
		t.Errorf("deriveUsers() = %+v, want reference time for missing instant", users)
	}
}

func TestTopByUsesStableTies(t *testing.T) {
	records := []models.ContentRecord{
		{ID: "a", Uses: 5},
		{ID: "b", Uses: 9},
		{ID: "c", Uses: 5},
		{ID: "d", Uses: 1},
	}
	top := topByUses(records, 3)
	if len(top) != 3 {
		t.Fatalf("topByUses() len = %d, want 3", len(top))
	}
	if top[0].ID != "b" || top[1].ID != "a" || top[2].ID != "c" {
		t.Errorf("topByUses() order = %s %s %s, want b a c", top[0].ID, top[1].ID, top[2].ID)
	}
}

func TestByRecencyMissingInstantsSinkLast(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	records := []models.ContentRecord{
		{ID: "undated"},
		{ID: "old", CreatedAt: &t1},
		{ID: "new", CreatedAt: &t2},
	}
	got := byRecency(records, 10)
	if got[0].ID != "new" || got[1].ID != "old" || got[2].ID != "undated" {
		t.Errorf("byRecency() order = %s %s %s, want new old undated", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestChangePercentFormat(t *testing.T) {
	if s := changePercent(42, 37); s == nil || *s != "+13.5%" {
		t.Errorf("changePercent(42, 37) = %v, want +13.5%%", s)
	}
	if s := changePercent(96, 100); s == nil || *s != "-4.0%" {
		t.Errorf("changePercent(96, 100) = %v, want -4.0%%", s)
	}
	if s := changePercent(5, 0); s != nil {
		t.Errorf("changePercent(5, 0) = %v, want nil", *s)
	}
}

func TestBaselineFloor(t *testing.T) {
	if got := baseline(3, 20); got != 1 {
		t.Errorf("baseline(3, 20) = %v, want floor of 1", got)
	}
	if got := baseline(42, 5); got != 37 {
		t.Errorf("baseline(42, 5) = %v, want 37", got)
	}
}

func TestMapRecords(t *testing.T) {
	rows := []map[string]any{
		{"title": "10 Proven Strategies for SEO Blog Growth", "uses": float64(12), "createdAt": "2024-02-15T08:00:00Z"},
		{"name": "Untitled thing"},
	}
	records := mapRecords(rows, contentTitleKeys, "Generated Item", "item")
	if len(records) != 2 {
		t.Fatalf("mapRecords() len = %d, want 2", len(records))
	}

	first := records[0]
	if first.Type != models.LabelBlogPost {
		t.Errorf("records[0].Type = %q, want %q", first.Type, models.LabelBlogPost)
	}
	if first.Uses != 12 {
		t.Errorf("records[0].Uses = %d, want 12", first.Uses)
	}
	if first.CreatedAt == nil || first.CreatedAtRaw != "2024-02-15T08:00:00Z" {
		t.Errorf("records[0] instant = %v raw %q, want parsed with raw preserved", first.CreatedAt, first.CreatedAtRaw)
	}
	if first.ID != "item-1" {
		t.Errorf("records[0].ID = %q, want generated item-1", first.ID)
	}

	if records[1].Type != models.LabelGeneral {
		t.Errorf("records[1].Type = %q, want General", records[1].Type)
	}
	if records[1].CreatedAt != nil {
		t.Errorf("records[1].CreatedAt = %v, want nil", records[1].CreatedAt)
	}
}

func TestCountAdmins(t *testing.T) {
	rows := []map[string]any{
		{"role": "admin"},
		{"role": "superadmin"},
		{"isAdmin": true},
		{"role": "viewer"},
	}
	if got := countAdmins(rows); got != 3 {
		t.Errorf("countAdmins() = %d, want 3", got)
	}
}
