// Package dashboard composes the admin analytics view model. Compose fans out
// all endpoint fetches concurrently, decodes each response tolerantly, routes
// decoded payloads by the endpoint's declared role, and assembles a complete
// view model; slots that failed anywhere along the way are patched from the
// fallback policy. Compose never fails and never returns a partial model.
package dashboard

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"statboard/models"
	"statboard/pkg/caching"
	"statboard/pkg/fallback"
	"statboard/pkg/probe"
)

// Well-known slot names. Endpoint keys in the config bind to these; a metric
// endpoint with an unlisted key still becomes a card labeled by its key.
const (
	SlotTotalUsers   = "totalUsers"
	SlotNewSignups   = "newSignupsToday"
	SlotActiveUsers  = "activeUsers"
	SlotTotalAdmins  = "totalAdmins"
	SlotTotalLogs    = "totalLogs"
	SlotTotalRevenue = "totalRevenue"
	SlotBounceRate   = "bounceRate"
	SlotAvgSession   = "avgSession"

	SlotMostUsedTemplates = "mostUsedTemplates"
	SlotRecentTemplates   = "recentTemplates"
	SlotRecentGenerated   = "recentGeneratedContent"
	SlotMostUsedGenerated = "mostUsedGeneratedContent"
	SlotUsers             = "usersTable"
	SlotActivity          = "activityHistory"
)

// Feed truncation: 5 for template lists, 10 for generated content.
const (
	topTemplates = 5
	topGenerated = 10
	topUsers     = 5
)

// Report is the side-channel outcome of one compose cycle. Unauthorized is
// the only signal that must reach the host application (credential purge);
// everything else is informational.
type Report struct {
	Unauthorized     bool
	UnauthorizedKeys []string
	FailedKeys       []string
	Outcomes         map[string]probe.Outcome
	Statuses         map[string]int
}

// Aggregator owns the fetch fan-out and assembly for refresh cycles.
type Aggregator struct {
	fetcher *probe.Fetcher
	cache   *caching.Cache // optional
	policy  *fallback.Policy
	logger  *slog.Logger
	workers int
	now     func() time.Time
}

// New returns an Aggregator. cache may be nil to always hit the network.
func New(fetcher *probe.Fetcher, cache *caching.Cache, logger *slog.Logger, workers int) *Aggregator {
	if workers <= 0 {
		workers = 4
	}
	return &Aggregator{
		fetcher: fetcher,
		cache:   cache,
		logger:  logger,
		workers: workers,
		now:     time.Now,
	}
}

type job struct {
	endpoint models.Endpoint
}

type fetchResult struct {
	endpoint models.Endpoint
	result   probe.Result
}

// Compose runs one refresh cycle over the given endpoints. The returned view
// model is always fully populated; degraded slots are tagged
// ConfidenceFallback in vm.Slots and listed in the report.
func (a *Aggregator) Compose(ctx context.Context, endpoints []models.Endpoint) (*models.ViewModel, Report) {
	now := a.now()
	a.policy = fallback.NewPolicy(now)

	results := a.fanOut(ctx, endpoints)

	report := Report{
		Outcomes: make(map[string]probe.Outcome, len(results)),
		Statuses: make(map[string]int, len(results)),
	}
	byKey := make(map[string]fetchResult, len(results))
	for _, r := range results {
		byKey[r.endpoint.Key] = r
		report.Outcomes[r.endpoint.Key] = r.result.Outcome
		report.Statuses[r.endpoint.Key] = r.result.Status
		switch r.result.Outcome {
		case probe.OutcomeUnauthorized:
			report.Unauthorized = true
			report.UnauthorizedKeys = append(report.UnauthorizedKeys, r.endpoint.Key)
		case probe.OutcomeUndecodable:
			report.FailedKeys = append(report.FailedKeys, r.endpoint.Key)
		}
	}
	sort.Strings(report.UnauthorizedKeys)
	sort.Strings(report.FailedKeys)

	vm := a.assemble(now, endpoints, byKey)
	return vm, report
}

// fanOut runs the concurrent fetch phase: jobs in, results out, one worker
// failure never cancels siblings.
func (a *Aggregator) fanOut(ctx context.Context, endpoints []models.Endpoint) []fetchResult {
	var wg sync.WaitGroup
	jobs := make(chan job, len(endpoints))
	out := make(chan fetchResult, len(endpoints))

	for w := 1; w <= a.workers; w++ {
		wg.Add(1)
		go a.worker(ctx, w, &wg, jobs, out)
	}

	for _, ep := range endpoints {
		jobs <- job{endpoint: ep}
	}
	close(jobs)

	wg.Wait()
	close(out)

	results := make([]fetchResult, 0, len(endpoints))
	for r := range out {
		results = append(results, r)
	}
	return results
}

func (a *Aggregator) worker(ctx context.Context, id int, wg *sync.WaitGroup, jobs <-chan job, out chan<- fetchResult) {
	defer wg.Done()
	for j := range jobs {
		ep := j.endpoint
		a.logger.Info("Worker started endpoint", "worker_id", id, "key", ep.Key, "url", ep.URL)

		raw, cached := a.lookupCache(ep.URL)
		if !cached {
			raw = a.fetcher.Fetch(ctx, ep.URL)
			a.storeCache(ep.URL, raw)
		}

		decoded := probe.Decode(raw)
		if decoded.Outcome != probe.OutcomeDecoded {
			a.logger.Warn("Endpoint degraded", "worker_id", id, "key", ep.Key, "status", decoded.Status, "outcome", decoded.Outcome)
		}
		out <- fetchResult{endpoint: ep, result: decoded}
	}
}

func (a *Aggregator) lookupCache(url string) (probe.RawResponse, bool) {
	if a.cache == nil {
		return probe.RawResponse{}, false
	}
	entry, hit := a.cache.Get(url)
	if !hit {
		return probe.RawResponse{}, false
	}
	return probe.RawResponse{Status: entry.Status, ContentType: entry.ContentType, Body: entry.Body}, true
}

func (a *Aggregator) storeCache(url string, raw probe.RawResponse) {
	if a.cache == nil || raw.Err != nil || raw.Status == 0 {
		return
	}
	if err := a.cache.Set(url, caching.Entry{Status: raw.Status, ContentType: raw.ContentType, Body: raw.Body}); err != nil {
		a.logger.Warn("Failed to cache payload", "url", url, "error", err)
	}
}
