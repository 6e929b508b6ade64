package service

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"mediawatch.dev/backend/internal/constant"
	"mediawatch.dev/backend/internal/core/leaderboard"
	"mediawatch.dev/backend/internal/model"
	"mediawatch.dev/backend/internal/pkg/apierr"
)

// facetStore answers every leaderboard read from memory, or with err when set,
// and counts the reads it served.
type facetStore struct {
	incidents  []*model.Incident
	outlets    []*model.Outlet
	complaints []*model.ComplaintFacet
	accounts   int

	err   error
	reads int
}

func (f *facetStore) GetIncidentsWithPresenterAndComplaints(context.Context) ([]*model.Incident, error) {
	f.reads++
	return f.incidents, f.err
}

func (f *facetStore) CountIncidents(context.Context) (int, error) {
	return len(f.incidents), f.err
}

func (f *facetStore) GetOutletsWithComplaintRatings(context.Context) ([]*model.Outlet, error) {
	f.reads++
	return f.outlets, f.err
}

func (f *facetStore) CountOutlets(context.Context) (int, error) {
	return len(f.outlets), f.err
}

func (f *facetStore) GetComplaintFacets(context.Context) ([]*model.ComplaintFacet, error) {
	return f.complaints, f.err
}

func (f *facetStore) CountAccounts(context.Context) (int, error) {
	return f.accounts, f.err
}

func leaderboardOver(store *facetStore) *Leaderboard {
	return &Leaderboard{IncidentRepo: store, OutletRepo: store, ComplaintRepo: store, AccountRepo: store}
}

func TestComputeLeaderboardRejectsUnknownGroupBy(t *testing.T) {
	store := &facetStore{}

	_, err := leaderboardOver(store).ComputeLeaderboard(context.Background(), "channel", 10)

	var e *apierr.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, 400, e.StatusCode)
	assert.Equal(t, apierr.CodeInvalidRequest, e.ErrorCode)
	assert.Zero(t, store.reads)
}

func TestComputeLeaderboardByPresenter(t *testing.T) {
	bbc := &model.Outlet{OutletID: "bbc-tv", Name: "BBC Television"}
	store := &facetStore{incidents: []*model.Incident{{
		OutletID:      bbc.OutletID,
		Outlet:        bbc,
		PresenterName: null.StringFrom("Nick Robinson"),
		Complaints:    []*model.Complaint{{SeverityRating: null.IntFrom(7)}, {SeverityRating: null.IntFrom(8)}},
	}}}

	result, err := leaderboardOver(store).ComputeLeaderboard(context.Background(), "presenter", 10)
	require.NoError(t, err)

	assert.Equal(t, leaderboard.GroupByPresenter, result.GroupBy)
	entries, ok := result.Leaderboard.([]*leaderboard.PresenterEntry)
	require.True(t, ok)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].ComplaintCount)
	assert.Equal(t, null.FloatFrom(7.5), entries[0].AvgSeverityRating)
}

func TestComputeLeaderboardStorageFailure(t *testing.T) {
	cause := errors.New("pq: connection refused")

	for _, groupBy := range []string{"presenter", "outlet"} {
		t.Run(groupBy, func(t *testing.T) {
			_, err := leaderboardOver(&facetStore{err: cause}).ComputeLeaderboard(context.Background(), groupBy, 10)

			var e *apierr.Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, 500, e.StatusCode)
			assert.Equal(t, "could not compute leaderboard", e.Message)
			assert.NotContains(t, e.Message, "connection refused")
			assert.ErrorIs(t, err, cause)
		})
	}
}

func TestComputePlatformOverview(t *testing.T) {
	store := &facetStore{
		incidents: make([]*model.Incident, 4),
		outlets:   make([]*model.Outlet, 2),
		accounts:  3,
		complaints: []*model.ComplaintFacet{
			{Status: constant.ComplaintStatusSent, SeverityRating: null.IntFrom(6)},
			{Status: constant.ComplaintStatusDraft},
			{Status: constant.ComplaintStatusResponseReceived, SeverityRating: null.IntFrom(9)},
		},
	}

	overview, err := leaderboardOver(store).ComputePlatformOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, overview.TotalIncidents)
	assert.Equal(t, 3, overview.TotalUsers)
	assert.Equal(t, 2, overview.TotalOutlets)
	assert.Equal(t, 3, overview.TotalComplaints)
	assert.Equal(t, 1, overview.SentComplaints)
	assert.Equal(t, 2, overview.DraftComplaints, "responded complaints count as drafts")
	assert.Equal(t, null.FloatFrom(7.5), overview.AvgSeverityRating)
}

func TestComputePlatformOverviewStorageFailure(t *testing.T) {
	cause := errors.New("redis: i/o timeout")

	_, err := leaderboardOver(&facetStore{err: cause}).ComputePlatformOverview(context.Background())

	var e *apierr.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, 500, e.StatusCode)
	assert.Equal(t, "could not compute platform overview", e.Message)
	assert.ErrorIs(t, err, cause)
}
