package dashboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"statboard/models"
	"statboard/pkg/analytics"
	"statboard/pkg/classify"
	"statboard/pkg/extract"
	"statboard/pkg/instant"
	"statboard/pkg/probe"
	"statboard/pkg/scrape"
)

// Synthetic baseline deltas for change-percent cards. The upstream API has no
// history endpoint, so the previous period is reconstructed from the current
// value.
const (
	baselineUsersDelta  = 5
	baselineActiveDelta = 2
	baselineLogsDelta   = 20
)

var cardLabels = map[string]string{
	SlotTotalUsers:   "Total Users",
	SlotNewSignups:   "New Signups (today)",
	SlotActiveUsers:  "Active Users",
	SlotTotalAdmins:  "Admins",
	SlotTotalLogs:    "Total Logs",
	SlotTotalRevenue: "Total Revenue ($)",
	SlotBounceRate:   "Bounce Rate (%)",
	SlotAvgSession:   "Avg. Session (min)",
}

var cardOrder = []string{
	SlotTotalUsers, SlotActiveUsers, SlotNewSignups, SlotTotalAdmins,
	SlotTotalLogs, SlotTotalRevenue, SlotBounceRate, SlotAvgSession,
}

// Field aliases probed when mapping raw rows into records.
var (
	idKeys           = []string{"id", "_id", "uuid", "Id", "ID"}
	templateNameKeys = []string{"name", "title", "Name", "Title", "templateName", "TemplateName"}
	contentTitleKeys = []string{"title", "name", "prompt", "summary", "text", "Title", "Name"}
	usesKeys         = []string{"uses", "usageCount", "count", "total", "Uses", "UsageCount"}
	emailKeys        = []string{"email", "Email", "userEmail"}
	userIDKeys       = []string{"userId", "UserId", "userID", "user_id", "uid"}
	userNameKeys     = []string{"name", "Name", "userName", "UserName", "fullName"}
	lastActiveKeys   = []string{"lastActive", "lastLogin", "last_login", "lastSeen"}
	adminRoleKeys    = []string{"role", "Role", "userRole"}
)

type scalar struct {
	value      float64
	confidence models.Confidence
	found      bool
}

type rowSet struct {
	rows       []map[string]any
	confidence models.Confidence
	found      bool
}

// assemble turns the per-endpoint decode results into a complete view model,
// substituting fallback data slot by slot.
func (a *Aggregator) assemble(now time.Time, endpoints []models.Endpoint, byKey map[string]fetchResult) *models.ViewModel {
	vm := &models.ViewModel{
		GeneratedAt: now,
		Slots:       make(map[string]models.Confidence),
	}

	// Collections first: scalar derivation can lean on them.
	users := a.usersSlot(now, vm, byKey)
	activity := a.activitySlot(vm, byKey)
	a.templateSlots(vm, byKey)
	a.generatedSlots(vm, byKey)
	a.cards(now, vm, endpoints, byKey)

	vm.Users = users
	freq := analytics.ActionFrequency(activity)
	vm.ActivitySummary = analytics.Summary(freq)
	vm.MostActiveUsers = analytics.TopActiveUsers(activity, topUsers)
	return vm
}

// scalarSlot recovers a numeric value from one endpoint result. Decoded JSON
// numbers are exact; anything reached through key probing, string scanning, or
// HTML salvage is inferred.
func scalarSlot(r fetchResult, ok bool) scalar {
	if !ok {
		return scalar{}
	}
	res := r.result
	switch res.Outcome {
	case probe.OutcomeDecoded:
		n, found := extract.Number(res.JSON)
		if !found {
			return scalar{}
		}
		conf := models.ConfidenceInferred
		if _, direct := res.JSON.(float64); direct {
			conf = models.ConfidenceExact
		}
		return scalar{value: n, confidence: conf, found: true}
	case probe.OutcomeUndecodable:
		text := res.Text
		if text == "" {
			return scalar{}
		}
		if scrape.LooksHTML(text) {
			text = scrape.Text(text)
		}
		if n, found := extract.Number(text); found {
			return scalar{value: n, confidence: models.ConfidenceInferred, found: true}
		}
	}
	return scalar{}
}

// rowsSlot recovers object rows from one endpoint result. A bare JSON array is
// exact; wrapper-key unwrapping or keyed-map flattening is inferred.
func rowsSlot(r fetchResult, ok bool) rowSet {
	if !ok || r.result.Outcome != probe.OutcomeDecoded {
		return rowSet{}
	}
	rows, found := extract.Rows(r.result.JSON)
	if !found || len(rows) == 0 {
		return rowSet{}
	}
	conf := models.ConfidenceInferred
	if _, direct := r.result.JSON.([]any); direct {
		conf = models.ConfidenceExact
	}
	return rowSet{rows: rows, confidence: conf, found: true}
}

func (a *Aggregator) templateSlots(vm *models.ViewModel, byKey map[string]fetchResult) {
	for _, slot := range []string{SlotMostUsedTemplates, SlotRecentTemplates} {
		r, ok := byKey[slot]
		set := rowsSlot(r, ok)
		if !set.found {
			vm.Slots[slot] = models.ConfidenceFallback
			records := a.policy.Templates()
			if slot == SlotMostUsedTemplates {
				vm.MostUsedTemplates = topByUses(records, topTemplates)
			} else {
				vm.RecentTemplates = byRecency(records, topTemplates)
			}
			continue
		}
		vm.Slots[slot] = set.confidence
		records := mapRecords(set.rows, templateNameKeys, "Unknown Template", "tpl")
		if slot == SlotMostUsedTemplates {
			vm.MostUsedTemplates = topByUses(records, topTemplates)
		} else {
			vm.RecentTemplates = byRecency(records, topTemplates)
		}
	}
}

func (a *Aggregator) generatedSlots(vm *models.ViewModel, byKey map[string]fetchResult) {
	for _, slot := range []string{SlotRecentGenerated, SlotMostUsedGenerated} {
		r, ok := byKey[slot]
		set := rowsSlot(r, ok)

		var records []models.ContentRecord
		switch {
		case set.found:
			vm.Slots[slot] = set.confidence
			records = mapRecords(set.rows, contentTitleKeys, "Generated Item", "item")
		case ok && r.result.Outcome == probe.OutcomeUndecodable && scrape.LooksHTML(r.result.Text):
			// An HTML error page occasionally wraps a real article; salvage
			// it into a single record rather than discarding the slot.
			page, salvaged := scrape.Page(r.endpoint.URL, r.result.Text)
			if !salvaged {
				break
			}
			vm.Slots[slot] = models.ConfidenceInferred
			records = []models.ContentRecord{{
				ID:        "salvaged-1",
				Title:     page.Title,
				Type:      classify.Normalize(classify.RawLabel(map[string]any{"title": page.Title})),
				CreatedAt: page.PublishedAt,
				Language:  classify.Language(page.Excerpt),
			}}
		}
		if records == nil {
			vm.Slots[slot] = models.ConfidenceFallback
			records = a.policy.Generated()
		}

		if slot == SlotRecentGenerated {
			vm.RecentGeneratedContent = byRecency(records, topGenerated)
		} else {
			// The most-used feed surfaces the normalized type as its display
			// title, mirroring the original dashboard.
			ranked := topByUses(records, topGenerated)
			out := make([]models.ContentRecord, len(ranked))
			for i, rec := range ranked {
				rec.Title = rec.Type
				out[i] = rec
			}
			vm.MostUsedGeneratedContent = out
		}
	}
}

func (a *Aggregator) usersSlot(now time.Time, vm *models.ViewModel, byKey map[string]fetchResult) []models.UserRecord {
	r, ok := byKey[SlotUsers]
	set := rowsSlot(r, ok)
	if !set.found {
		vm.Slots[SlotUsers] = models.ConfidenceFallback
		return a.policy.Users()
	}
	vm.Slots[SlotUsers] = set.confidence
	return deriveUsers(set.rows, now)
}

func (a *Aggregator) activitySlot(vm *models.ViewModel, byKey map[string]fetchResult) []map[string]any {
	r, ok := byKey[SlotActivity]
	set := rowsSlot(r, ok)
	if !set.found {
		vm.Slots[SlotActivity] = models.ConfidenceFallback
		return a.policy.Activity()
	}
	vm.Slots[SlotActivity] = set.confidence
	return set.rows
}

// cards builds the metric cards in a fixed order, then appends any extra
// metric endpoints from the config sorted by key.
func (a *Aggregator) cards(now time.Time, vm *models.ViewModel, endpoints []models.Endpoint, byKey map[string]fetchResult) {
	// Derivation reads sibling slots, but only genuinely decoded ones;
	// counting policy sample rows would launder fallback data as inferred.
	usersSet := rowsSlot(byKey[SlotUsers], true)
	activitySet := rowsSlot(byKey[SlotActivity], true)

	values := make(map[string]scalar)
	configured := make(map[string]bool)
	var extras []string
	for _, ep := range endpoints {
		if ep.Role != models.RoleMetric {
			continue
		}
		configured[ep.Key] = true
		r, ok := byKey[ep.Key]
		values[ep.Key] = scalarSlot(r, ok)
		if _, known := cardLabels[ep.Key]; !known {
			extras = append(extras, ep.Key)
		}
	}
	sort.Strings(extras)

	// Derivation fills holes from sibling slots before falling back to zero.
	derive := func(key string) scalar {
		switch key {
		case SlotTotalUsers:
			if usersSet.found {
				return scalar{value: float64(len(usersSet.rows)), confidence: models.ConfidenceInferred, found: true}
			}
		case SlotActiveUsers:
			if !usersSet.found {
				break
			}
			if n := countRecentlyActive(usersSet.rows, now); n > 0 {
				return scalar{value: float64(n), confidence: models.ConfidenceInferred, found: true}
			}
			n := len(usersSet.rows) / 5
			if n < 1 {
				n = 1
			}
			return scalar{value: float64(n), confidence: models.ConfidenceInferred, found: true}
		case SlotNewSignups:
			if usersSet.found {
				return scalar{value: float64(countSignedUpToday(usersSet.rows, now)), confidence: models.ConfidenceInferred, found: true}
			}
		case SlotTotalAdmins:
			if usersSet.found {
				if n := countAdmins(usersSet.rows); n > 0 {
					return scalar{value: float64(n), confidence: models.ConfidenceInferred, found: true}
				}
			}
		case SlotTotalLogs:
			if activitySet.found {
				return scalar{value: float64(len(activitySet.rows)), confidence: models.ConfidenceInferred, found: true}
			}
		}
		return scalar{}
	}

	resolved := make(map[string]scalar)
	for _, key := range cardOrder {
		if !configured[key] {
			continue
		}
		s := values[key]
		if !s.found {
			s = derive(key)
		}
		if !s.found {
			s = scalar{value: 0, confidence: models.ConfidenceFallback, found: true}
		}
		resolved[key] = s
		vm.Slots[key] = s.confidence
	}

	totalUsers := resolved[SlotTotalUsers].value
	for _, key := range cardOrder {
		s, ok := resolved[key]
		if !ok {
			continue
		}
		card := models.MetricCard{Label: cardLabels[key], Value: s.value, Confidence: s.confidence}
		switch key {
		case SlotTotalUsers:
			card.ChangePercent = changePercent(s.value, baseline(s.value, baselineUsersDelta))
		case SlotActiveUsers:
			card.ChangePercent = changePercent(s.value, baseline(s.value, baselineActiveDelta))
			card.RelativePercent = relativePercent(s.value, totalUsers)
		case SlotTotalLogs:
			card.ChangePercent = changePercent(s.value, baseline(s.value, baselineLogsDelta))
		case SlotTotalAdmins:
			card.ChangePercent = changePercent(s.value, maxFloat(1, s.value))
			card.RelativePercent = relativePercent(s.value, totalUsers)
		}
		vm.Cards = append(vm.Cards, card)
	}

	for _, key := range extras {
		s := values[key]
		if !s.found {
			s = scalar{confidence: models.ConfidenceFallback, found: true}
		}
		vm.Slots[key] = s.confidence
		vm.Cards = append(vm.Cards, models.MetricCard{Label: key, Value: s.value, Confidence: s.confidence})
	}
}

// CardLabel returns the display label for a metric slot key.
func CardLabel(key string) string {
	if label, ok := cardLabels[key]; ok {
		return label
	}
	return key
}

// baseline reconstructs the previous-period value, never below 1.
func baseline(current float64, delta float64) float64 {
	return maxFloat(1, current-delta)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// changePercent formats the signed percent change from previous to current.
func changePercent(current, previous float64) *string {
	if previous == 0 {
		return nil
	}
	pct := (current - previous) / previous * 100
	sign := ""
	if pct >= 0 {
		sign = "+"
	}
	s := fmt.Sprintf("%s%.1f%%", sign, pct)
	return &s
}

func relativePercent(part, total float64) *string {
	if total <= 0 {
		return nil
	}
	s := fmt.Sprintf("%.1f", part/total*100)
	return &s
}

// mapRecords normalizes raw rows into content records: alias-probed id and
// title, classified type, recovered instant, usage count, language guess.
func mapRecords(rows []map[string]any, titleKeys []string, defaultTitle, idPrefix string) []models.ContentRecord {
	records := make([]models.ContentRecord, 0, len(rows))
	for i, row := range rows {
		rec := models.ContentRecord{
			ID:    firstStringValue(row, idKeys),
			Title: firstStringValue(row, titleKeys),
			Type:  classify.Classify(row),
		}
		if rec.ID == "" {
			rec.ID = fmt.Sprintf("%s-%d", idPrefix, i+1)
		}
		if rec.Title == "" {
			rec.Title = defaultTitle
		}
		if t, ok := instant.Parse(row); ok {
			rec.CreatedAt = &t
		}
		rec.CreatedAtRaw = rawInstantField(row)
		for _, k := range usesKeys {
			if v, present := row[k]; present {
				if n, ok := extract.Number(v); ok {
					rec.Uses = int(n)
					break
				}
			}
		}
		rec.Language = classify.Language(rec.Title)
		records = append(records, rec)
	}
	return records
}

// deriveUsers deduplicates activity-shaped rows into user records keyed by
// userId, else email. The earliest instant seen for a key wins; output is
// sorted oldest first.
func deriveUsers(rows []map[string]any, now time.Time) []models.UserRecord {
	byUser := make(map[string]models.UserRecord)
	var order []string
	for i, row := range rows {
		email := firstStringValue(row, emailKeys)
		key := firstStringValue(row, userIDKeys)
		if key == "" {
			key = email
		}
		if key == "" {
			key = fmt.Sprintf("row-%d", i+1)
		}

		seen, ok := instant.Parse(row)
		if !ok {
			seen = now
		}
		name := firstStringValue(row, userNameKeys)
		if name == "" && email != "" {
			name = strings.SplitN(email, "@", 2)[0]
		}
		if name == "" {
			name = "Unknown"
		}

		existing, dup := byUser[key]
		if !dup {
			byUser[key] = models.UserRecord{Key: key, Name: name, Email: email, CreatedAt: seen}
			order = append(order, key)
			continue
		}
		if seen.Before(existing.CreatedAt) {
			existing.CreatedAt = seen
		}
		if existing.Email == "" {
			existing.Email = email
		}
		byUser[key] = existing
	}

	users := make([]models.UserRecord, 0, len(byUser))
	for _, key := range order {
		users = append(users, byUser[key])
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users
}

func countRecentlyActive(rows []map[string]any, now time.Time) int {
	count := 0
	for _, row := range rows {
		for _, k := range lastActiveKeys {
			v, present := row[k]
			if !present {
				continue
			}
			if t, ok := instant.Parse(v); ok && now.Sub(t) <= 24*time.Hour {
				count++
			}
			break
		}
	}
	return count
}

func countSignedUpToday(rows []map[string]any, now time.Time) int {
	y, m, d := now.UTC().Date()
	count := 0
	for _, row := range rows {
		if t, ok := instant.Parse(row); ok {
			ty, tm, td := t.UTC().Date()
			if ty == y && tm == m && td == d {
				count++
			}
		}
	}
	return count
}

func countAdmins(rows []map[string]any) int {
	count := 0
	for _, row := range rows {
		if b, ok := row["isAdmin"].(bool); ok && b {
			count++
			continue
		}
		role := strings.ToLower(firstStringValue(row, adminRoleKeys))
		if strings.Contains(role, "admin") {
			count++
		}
	}
	return count
}

// topByUses ranks records by usage count descending, input order on ties.
func topByUses(records []models.ContentRecord, n int) []models.ContentRecord {
	out := make([]models.ContentRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Uses > out[j].Uses
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// byRecency sorts newest first; records with no recoverable instant sink to
// the end in input order.
func byRecency(records []models.ContentRecord, n int) []models.ContentRecord {
	out := make([]models.ContentRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		switch {
		case out[i].CreatedAt == nil:
			return false
		case out[j].CreatedAt == nil:
			return true
		default:
			return out[i].CreatedAt.After(*out[j].CreatedAt)
		}
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func firstStringValue(row map[string]any, keys []string) string {
	for _, k := range keys {
		switch v := row[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}

// rawInstantField returns the raw string form of the row's timestamp field,
// for display alongside the parsed instant.
func rawInstantField(row map[string]any) string {
	for _, k := range []string{"createdAt", "created_at", "created", "date", "timestamp", "generatedAt", "time", "isoDate"} {
		if v, ok := row[k]; ok {
			switch t := v.(type) {
			case string:
				return t
			case float64:
				return fmt.Sprintf("%v", t)
			}
		}
	}
	return ""
}
