package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/guregu/null.v3"

	"mediawatch.dev/backend/internal/constant"
	"mediawatch.dev/backend/internal/model"
)

func TestOverviewTotals(t *testing.T) {
	overview := Overview(Totals{Incidents: 2, Users: 4, Outlets: 7}, []*model.ComplaintFacet{
		{Status: constant.ComplaintStatusSent, SeverityRating: null.IntFrom(7)},
		{Status: constant.ComplaintStatusSent},
		{Status: constant.ComplaintStatusDraft, SeverityRating: null.IntFrom(8)},
	})

	assert.Equal(t, &PlatformOverview{
		TotalIncidents:    2,
		TotalComplaints:   3,
		TotalUsers:        4,
		TotalOutlets:      7,
		SentComplaints:    2,
		DraftComplaints:   1,
		AvgSeverityRating: null.FloatFrom(7.5),
	}, overview)
}

func TestOverviewDraftIncludesResponded(t *testing.T) {
	overview := Overview(Totals{}, []*model.ComplaintFacet{
		{Status: constant.ComplaintStatusSent},
		{Status: constant.ComplaintStatusResponseReceived},
		{Status: constant.ComplaintStatusDraft},
	})

	assert.Equal(t, 1, overview.SentComplaints)
	assert.Equal(t, 2, overview.DraftComplaints)
	assert.False(t, overview.AvgSeverityRating.Valid)
}

func TestOverviewEmpty(t *testing.T) {
	overview := Overview(Totals{}, nil)

	assert.Zero(t, overview.TotalComplaints)
	assert.Zero(t, overview.SentComplaints)
	assert.Zero(t, overview.DraftComplaints)
	assert.False(t, overview.AvgSeverityRating.Valid)
}
