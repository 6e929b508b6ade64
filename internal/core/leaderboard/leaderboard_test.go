package leaderboard

import (
	"fmt"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/guregu/null.v3"

	"mediawatch.dev/backend/internal/constant"
	"mediawatch.dev/backend/internal/model"
)

func rated(r int64) *model.Complaint {
	return &model.Complaint{SeverityRating: null.IntFrom(r), Status: constant.ComplaintStatusDraft}
}

func unrated() *model.Complaint {
	return &model.Complaint{Status: constant.ComplaintStatusDraft}
}

func incident(presenter string, outlet *model.Outlet, complaints ...*model.Complaint) *model.Incident {
	i := &model.Incident{
		PresenterName: null.NewString(presenter, presenter != ""),
		Complaints:    complaints,
	}
	if outlet != nil {
		i.OutletID = outlet.OutletID
		i.Outlet = outlet
	}
	return i
}

func outlet(id, name, typ string, incidents ...*model.Incident) *model.Outlet {
	return &model.Outlet{
		OutletID:  id,
		Name:      name,
		Type:      null.NewString(typ, typ != ""),
		Incidents: incidents,
	}
}

func presenterNames(entries []*PresenterEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Presenter)
	}
	return names
}

func TestParseGroupBy(t *testing.T) {
	g, err := ParseGroupBy("presenter")
	assert.NoError(t, err)
	assert.Equal(t, GroupByPresenter, g)

	g, err = ParseGroupBy("outlet")
	assert.NoError(t, err)
	assert.Equal(t, GroupByOutlet, g)

	for _, s := range []string{"", "Presenter", "outlets", "programme"} {
		g, err = ParseGroupBy(s)
		assert.ErrorIs(t, err, ErrInvalidGroupBy, s)
		assert.Empty(t, g)
	}
	assert.Contains(t, ErrInvalidGroupBy.Error(), `"presenter"`)
	assert.Contains(t, ErrInvalidGroupBy.Error(), `"outlet"`)
}

func TestEmptyInput(t *testing.T) {
	assert.Empty(t, ByPresenter(nil, 10))
	assert.NotNil(t, ByPresenter(nil, 10))
	assert.Empty(t, ByOutlet(nil, 10))
	assert.NotNil(t, ByOutlet(nil, 10))
}

func TestPresenterFiltering(t *testing.T) {
	bbc := outlet("bbc-tv", "BBC", "tv")

	noComplaints := incident("Quiet Presenter", bbc)
	noPresenter := incident("", bbc, rated(5))
	counted := incident("Loud Presenter", bbc, rated(4))
	bbc.Incidents = []*model.Incident{noComplaints, noPresenter, counted}

	byPresenter := ByPresenter(bbc.Incidents, 0)
	assert.Equal(t, []string{"Loud Presenter"}, presenterNames(byPresenter))

	byOutlet := ByOutlet([]*model.Outlet{bbc}, 0)
	require.Len(t, byOutlet, 1)
	assert.Equal(t, 3, byOutlet[0].IncidentCount, "every incident of the outlet is counted")
	assert.Equal(t, 2, byOutlet[0].ComplaintCount, "the complaint without presenter still counts for the outlet")
}

func TestPresenterGroupingIsExact(t *testing.T) {
	itv := outlet("itv", "ITV", "tv")
	entries := ByPresenter([]*model.Incident{
		incident("Jane Doe", itv, rated(5)),
		incident("jane doe", itv, rated(5)),
		incident("Jane Doe ", itv, rated(5)),
	}, 0)

	assert.Equal(t, []string{"Jane Doe", "jane doe", "Jane Doe "}, presenterNames(entries))
}

func TestPresenterAggregation(t *testing.T) {
	bbc := outlet("bbc-tv", "BBC", "tv")
	sky := outlet("sky", "Sky News", "tv")

	entries := ByPresenter([]*model.Incident{
		incident("A", bbc, rated(8), rated(6)),
		incident("A", sky, unrated()),
	}, 0)

	want := []*PresenterEntry{{
		Presenter: "A",
		Outlets:   []string{"BBC", "Sky News"},
		Stats: Stats{
			IncidentCount:     2,
			ComplaintCount:    3,
			AvgSeverityRating: null.FloatFrom(7.0),
		},
	}}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("ByPresenter() mismatch (-want +got):\n%s", diff)
	}
}

func TestPresenterOutletsAreDistinct(t *testing.T) {
	bbc := outlet("bbc-tv", "BBC", "tv")
	entries := ByPresenter([]*model.Incident{
		incident("A", bbc, rated(1)),
		incident("A", bbc, rated(2)),
	}, 0)

	require.Len(t, entries, 1)
	assert.Equal(t, []string{"BBC"}, entries[0].Outlets)
	assert.Equal(t, 2, entries[0].IncidentCount)
}

func TestOutletAggregation(t *testing.T) {
	outlets := []*model.Outlet{
		outlet("gb-news", "GB News", "tv",
			incident("", nil, rated(9), unrated()),
			incident("B", nil, rated(6)),
			incident("C", nil),
		),
		outlet("silent", "Silent FM", "radio", incident("D", nil)),
		outlet("the-paper", "The Paper", "", incident("", nil, unrated())),
	}

	entries := ByOutlet(outlets, 0)
	want := []*OutletEntry{
		{
			OutletID:   "gb-news",
			Outlet:     "GB News",
			OutletType: null.StringFrom("tv"),
			Stats:      Stats{IncidentCount: 3, ComplaintCount: 3, AvgSeverityRating: null.FloatFrom(7.5)},
		},
		{
			OutletID: "the-paper",
			Outlet:   "The Paper",
			Stats:    Stats{IncidentCount: 1, ComplaintCount: 1},
		},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("ByOutlet() mismatch (-want +got):\n%s", diff)
	}
}

func TestTieBreakTreatsAbsentAsZero(t *testing.T) {
	bbc := outlet("bbc-tv", "BBC", "tv")
	x := incident("X", bbc, unrated(), unrated(), unrated(), unrated(), unrated())
	y := incident("Y", bbc, rated(3), rated(3), rated(3), unrated(), unrated())

	entries := ByPresenter([]*model.Incident{x, y}, 0)
	require.Equal(t, []string{"Y", "X"}, presenterNames(entries))
	assert.False(t, entries[1].AvgSeverityRating.Valid, "absent average must stay absent")

	b, err := json.Marshal(entries)
	require.NoError(t, err)
	assert.Equal(t, 3.0, gjson.GetBytes(b, "0.avgSeverityRating").Float())
	assert.Equal(t, gjson.Null, gjson.GetBytes(b, "1.avgSeverityRating").Type)
}

func TestTieBreakKeepsFirstSeenOrder(t *testing.T) {
	bbc := outlet("bbc-tv", "BBC", "tv")
	entries := ByPresenter([]*model.Incident{
		incident("First", bbc, rated(5)),
		incident("Second", bbc, rated(5)),
		incident("Third", bbc, unrated()),
		incident("Fourth", bbc, unrated()),
	}, 0)

	assert.Equal(t, []string{"First", "Second", "Third", "Fourth"}, presenterNames(entries))
}

func TestNegativeRatingsAreAveragedAsIs(t *testing.T) {
	bbc := outlet("bbc-tv", "BBC", "tv")
	x := incident("X", bbc, rated(-4))
	y := incident("Y", bbc, unrated())
	z := incident("Z", bbc, rated(42))

	entries := ByPresenter([]*model.Incident{x, y, z}, 0)
	require.Equal(t, []string{"Z", "Y", "X"}, presenterNames(entries))
	assert.Equal(t, null.FloatFrom(-4), entries[2].AvgSeverityRating)
	assert.Equal(t, null.FloatFrom(42), entries[0].AvgSeverityRating)
}

func TestLimitTruncatesAfterSort(t *testing.T) {
	bbc := outlet("bbc-tv", "BBC", "tv")
	// complaint counts in input order: 1, 2, ..., 10
	incidents := make([]*model.Incident, 0, 10)
	for n := 1; n <= 10; n++ {
		complaints := make([]*model.Complaint, 0, n)
		for i := 0; i < n; i++ {
			complaints = append(complaints, rated(5))
		}
		incidents = append(incidents, incident(fmt.Sprintf("P%d", n), bbc, complaints...))
	}

	entries := ByPresenter(incidents, 3)
	assert.Equal(t, []string{"P10", "P9", "P8"}, presenterNames(entries))
}

func TestLimitDefaultsAndOverflow(t *testing.T) {
	incidents := make([]*model.Incident, 0, DefaultLimit+5)
	for n := 0; n < DefaultLimit+5; n++ {
		incidents = append(incidents, incident(fmt.Sprintf("P%d", n), nil, rated(1)))
	}

	assert.Len(t, ByPresenter(incidents, 0), DefaultLimit)
	assert.Len(t, ByPresenter(incidents, -3), DefaultLimit)
	assert.Len(t, ByPresenter(incidents, 500), DefaultLimit+5)
}

func TestRounding(t *testing.T) {
	bbc := outlet("bbc-tv", "BBC", "tv")
	entries := ByPresenter([]*model.Incident{
		incident("Even", bbc, rated(7), rated(8), rated(9)),
		incident("Thirds", bbc, rated(7), rated(7), rated(8)),
	}, 0)

	require.Equal(t, []string{"Even", "Thirds"}, presenterNames(entries))
	assert.Equal(t, null.FloatFrom(8.0), entries[0].AvgSeverityRating)
	assert.Equal(t, null.FloatFrom(7.3), entries[1].AvgSeverityRating)
}

func TestRoundedMean(t *testing.T) {
	tests := []struct {
		sum, count int64
		want       float64
	}{
		{24, 3, 8.0},
		{22, 3, 7.3},
		{23, 3, 7.7},
		{29, 4, 7.3}, // 7.25 rounds half up
		{-29, 4, -7.2},
		{1, 1, 1.0},
		{0, 5, 0.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundedMean(tt.sum, tt.count), "%d/%d", tt.sum, tt.count)
	}
}
