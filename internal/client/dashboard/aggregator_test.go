package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/newsscope/newsscope/internal/client/api"
	"github.com/newsscope/newsscope/internal/client/models"
	"github.com/newsscope/newsscope/internal/logging"
)

type fakeAPI struct {
	api.Client

	mu           sync.Mutex
	dashResp     *api.DashboardResponse
	dashErr      error
	dashCalls    int
	deleteErrFor map[int64]error
	deleted      []int64
	deleteAllErr error
	deleteAllN   int
}

func (f *fakeAPI) Dashboard(ctx context.Context) (*api.DashboardResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dashCalls++
	return f.dashResp, f.dashErr
}

func (f *fakeAPI) DeleteAnalysis(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.deleteErrFor[id]; ok {
		return err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) DeleteAllAnalyses(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteAllN++
	return f.deleteAllErr
}

func records(ids ...int64) []models.Analysis {
	out := make([]models.Analysis, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Analysis{ID: id, Verdict: models.VerdictReal})
	}
	return out
}

func loaded(t *testing.T, f *fakeAPI) *Aggregator {
	t.Helper()
	a := NewAggregator(f, nil, logging.NewNopLogger())
	require.NoError(t, a.LoadSummary(context.Background()))
	return a
}

func dashResp(recent []models.Analysis) *api.DashboardResponse {
	return &api.DashboardResponse{
		Success:        true,
		Statistics:     &models.DashboardStats{TotalAnalyses: len(recent)},
		RecentAnalyses: recent,
	}
}

func TestSelection_SelectAllThenDeselectOne(t *testing.T) {
	f := &fakeAPI{dashResp: dashResp(records(1, 2, 3, 4, 5))}
	a := loaded(t, f)

	a.SelectAll()
	require.Len(t, a.Selected(), 5)

	a.Toggle(3)
	require.Len(t, a.Selected(), 4)
	require.False(t, a.IsSelected(3))
}

func TestSelection_UnknownIdIgnored(t *testing.T) {
	f := &fakeAPI{dashResp: dashResp(records(1, 2))}
	a := loaded(t, f)

	a.Toggle(99)
	require.Empty(t, a.Selected())
}

func TestDeleteSelected_FanOutAndReload(t *testing.T) {
	f := &fakeAPI{dashResp: dashResp(records(1, 2, 3))}
	a := loaded(t, f)

	a.SelectAll()
	require.NoError(t, a.DeleteSelected(context.Background()))

	require.ElementsMatch(t, []int64{1, 2, 3}, f.deleted)
	require.Empty(t, a.Selected())
	require.Equal(t, 2, f.dashCalls) // initial load + reload after delete
}

func TestDeleteSelected_AnyFailureFailsWhole(t *testing.T) {
	f := &fakeAPI{
		dashResp:     dashResp(records(1, 2, 3)),
		deleteErrFor: map[int64]error{2: errors.New("forbidden")},
	}
	a := loaded(t, f)

	a.SelectAll()
	err := a.DeleteSelected(context.Background())
	require.Error(t, err)

	// Selection cleared and summary reloaded even on failure.
	require.Empty(t, a.Selected())
	require.Equal(t, 2, f.dashCalls)
}

func TestDeleteSelected_EmptySelectionIsNoop(t *testing.T) {
	f := &fakeAPI{dashResp: dashResp(records(1))}
	a := loaded(t, f)

	require.NoError(t, a.DeleteSelected(context.Background()))
	require.Empty(t, f.deleted)
	require.Equal(t, 1, f.dashCalls)
}

func TestDeleteAll_SingleBulkCall(t *testing.T) {
	f := &fakeAPI{dashResp: dashResp(records(1, 2))}
	a := loaded(t, f)
	a.SelectAll()

	require.NoError(t, a.DeleteAll(context.Background()))
	require.Equal(t, 1, f.deleteAllN)
	require.Empty(t, a.Selected())
	require.Equal(t, 2, f.dashCalls)
}

func TestLoadSummary_FailureKeepsPriorState(t *testing.T) {
	f := &fakeAPI{dashResp: dashResp(records(1, 2))}
	a := loaded(t, f)

	f.mu.Lock()
	f.dashErr = errors.New("down")
	f.dashResp = nil
	f.mu.Unlock()

	require.Error(t, a.LoadSummary(context.Background()))
	recent, fromCache := a.Recent()
	require.Len(t, recent, 2)
	require.False(t, fromCache)
	require.NotNil(t, a.Stats())
}

func TestVerdictPercentages_SumToHundred(t *testing.T) {
	f := &fakeAPI{dashResp: &api.DashboardResponse{
		Success: true,
		Statistics: &models.DashboardStats{
			TotalAnalyses: 5,
			VerdictDistribution: map[models.Verdict]int{
				models.VerdictReal:       3,
				models.VerdictFake:       1,
				models.VerdictMisleading: 0,
				models.VerdictUncertain:  1,
			},
		},
	}}
	a := loaded(t, f)

	pct := a.VerdictPercentages()
	sum := 0.0
	for _, v := range models.Verdicts {
		sum += pct[v]
	}
	require.InDelta(t, 100.0, sum, 0.01)
	require.InDelta(t, 60.0, pct[models.VerdictReal], 0.01)
	require.InDelta(t, 20.0, pct[models.VerdictUncertain], 0.01)
	require.Equal(t, 0.0, pct[models.VerdictMisleading])
}

type memCache struct {
	mu      sync.Mutex
	records []models.Analysis
}

func (c *memCache) Replace(ctx context.Context, analyses []models.Analysis) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = analyses
	return nil
}

func (c *memCache) Recent(ctx context.Context, limit int) ([]models.Analysis, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.records) > limit {
		return c.records[:limit], nil
	}
	return c.records, nil
}

func TestLoadSummary_CacheFallbackWhenNoPriorState(t *testing.T) {
	cache := &memCache{records: records(7, 8)}
	f := &fakeAPI{dashErr: errors.New("down")}
	a := NewAggregator(f, cache, logging.NewNopLogger())

	require.Error(t, a.LoadSummary(context.Background()))
	recent, fromCache := a.Recent()
	require.Len(t, recent, 2)
	require.True(t, fromCache)
}

func TestLoadSummary_RefreshesCache(t *testing.T) {
	cache := &memCache{}
	f := &fakeAPI{dashResp: dashResp(records(1, 2, 3))}
	a := NewAggregator(f, cache, logging.NewNopLogger())

	require.NoError(t, a.LoadSummary(context.Background()))
	got, err := cache.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
}
