// Package dashboard aggregates the stored analysis history: summary
// statistics, the recent-activity list, and the selection model behind the
// bulk delete actions.
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/newsscope/newsscope/internal/client/api"
	"github.com/newsscope/newsscope/internal/client/models"
	"github.com/newsscope/newsscope/internal/logging"
)

// RecentCache is the local read-only cache of recent records. It is refreshed
// after each successful summary load and consulted when the backend is
// unreachable. May be nil.
type RecentCache interface {
	Replace(ctx context.Context, analyses []models.Analysis) error
	Recent(ctx context.Context, limit int) ([]models.Analysis, error)
}

// recentLimit bounds the recent-activity list.
const recentLimit = 10

// Aggregator holds the dashboard's client-side state. Selection is a set of
// record ids over the currently loaded recent list; it is cleared after any
// delete, successful or not.
type Aggregator struct {
	client api.Client
	cache  RecentCache
	log    logging.Logger

	mu        sync.Mutex
	stats     *models.DashboardStats
	recent    []models.Analysis
	selected  map[int64]struct{}
	fromCache bool
}

func NewAggregator(client api.Client, cache RecentCache, log logging.Logger) *Aggregator {
	return &Aggregator{
		client:   client,
		cache:    cache,
		log:      log,
		selected: make(map[int64]struct{}),
	}
}

// LoadSummary fetches the aggregate stats and the recent list. On failure the
// prior state stays displayed and the error is returned as a non-fatal
// notice; when there is no prior state the local cache fills in.
func (a *Aggregator) LoadSummary(ctx context.Context) error {
	resp, err := a.client.Dashboard(ctx)
	if err != nil {
		a.fallbackToCache(ctx)
		return fmt.Errorf("loading dashboard: %w", err)
	}
	if !resp.Success || resp.Statistics == nil {
		a.fallbackToCache(ctx)
		return fmt.Errorf("loading dashboard: backend reported failure")
	}

	a.mu.Lock()
	a.stats = resp.Statistics
	a.recent = resp.RecentAnalyses
	if len(a.recent) > recentLimit {
		a.recent = a.recent[:recentLimit]
	}
	a.fromCache = false
	recent := a.recent
	a.mu.Unlock()

	if a.cache != nil {
		if err := a.cache.Replace(ctx, recent); err != nil {
			a.log.Warn(ctx, "refreshing local analysis cache failed", "error", err)
		}
	}
	return nil
}

func (a *Aggregator) fallbackToCache(ctx context.Context) {
	a.mu.Lock()
	hasState := a.stats != nil || len(a.recent) > 0
	a.mu.Unlock()
	if hasState || a.cache == nil {
		return
	}
	cached, err := a.cache.Recent(ctx, recentLimit)
	if err != nil || len(cached) == 0 {
		return
	}
	a.mu.Lock()
	a.recent = cached
	a.fromCache = true
	a.mu.Unlock()
}

func (a *Aggregator) Stats() *models.DashboardStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// Recent returns the loaded records and whether they came from the local
// cache rather than the backend.
func (a *Aggregator) Recent() ([]models.Analysis, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.recent, a.fromCache
}

// Toggle flips one record in or out of the selection. Ids outside the loaded
// list are ignored.
func (a *Aggregator) Toggle(id int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.loadedLocked(id) {
		return
	}
	if _, ok := a.selected[id]; ok {
		delete(a.selected, id)
	} else {
		a.selected[id] = struct{}{}
	}
}

// SelectAll sets the selection to exactly the currently loaded record ids.
func (a *Aggregator) SelectAll() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.selected = make(map[int64]struct{}, len(a.recent))
	for _, r := range a.recent {
		a.selected[r.ID] = struct{}{}
	}
}

func (a *Aggregator) ClearSelection() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.selected = make(map[int64]struct{})
}

// Selected returns the selected ids in ascending order.
func (a *Aggregator) Selected() []int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	ids := make([]int64, 0, len(a.selected))
	for id := range a.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (a *Aggregator) IsSelected(id int64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.selected[id]
	return ok
}

func (a *Aggregator) loadedLocked(id int64) bool {
	for _, r := range a.recent {
		if r.ID == id {
			return true
		}
	}
	return false
}

// DeleteSelected deletes every selected record with one concurrent call per
// id and joins on all of them. Any individual failure fails the whole
// operation; there is no partial-success reporting. The selection is cleared
// and the summary reloaded regardless of outcome.
func (a *Aggregator) DeleteSelected(ctx context.Context) error {
	ids := a.Selected()
	if len(ids) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		g.Go(func() error {
			if err := a.client.DeleteAnalysis(gctx, id); err != nil {
				return fmt.Errorf("deleting analysis %d: %w", id, err)
			}
			return nil
		})
	}
	err := g.Wait()

	a.ClearSelection()
	if rerr := a.LoadSummary(ctx); rerr != nil {
		a.log.Warn(ctx, "dashboard reload after delete failed", "error", rerr)
	}
	return err
}

// DeleteAll wipes the whole history with a single bulk call and reloads.
func (a *Aggregator) DeleteAll(ctx context.Context) error {
	err := a.client.DeleteAllAnalyses(ctx)

	a.ClearSelection()
	if rerr := a.LoadSummary(ctx); rerr != nil {
		a.log.Warn(ctx, "dashboard reload after delete failed", "error", rerr)
	}
	if err != nil {
		return fmt.Errorf("deleting all analyses: %w", err)
	}
	return nil
}

// VerdictPercentages converts the distribution into percentages of the total.
// Sums to ~100 within float rounding.
func (a *Aggregator) VerdictPercentages() map[models.Verdict]float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[models.Verdict]float64, len(models.Verdicts))
	if a.stats == nil || a.stats.TotalAnalyses == 0 {
		return out
	}
	total := float64(a.stats.TotalAnalyses)
	for _, v := range models.Verdicts {
		out[v] = float64(a.stats.VerdictDistribution[v]) / total * 100
	}
	return out
}
