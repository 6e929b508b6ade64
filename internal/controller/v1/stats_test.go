package v1

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/guregu/null.v3"

	"mediawatch.dev/backend/internal/model"
	"mediawatch.dev/backend/internal/pkg/apierr"
	"mediawatch.dev/backend/internal/server/httpserver"
	"mediawatch.dev/backend/internal/service"
)

type statsSource struct {
	outlets []*model.Outlet
	err     error
	reads   int
}

func (s *statsSource) GetIncidentsWithPresenterAndComplaints(context.Context) ([]*model.Incident, error) {
	s.reads++
	return nil, s.err
}

func (s *statsSource) CountIncidents(context.Context) (int, error) { return 0, s.err }

func (s *statsSource) GetOutletsWithComplaintRatings(context.Context) ([]*model.Outlet, error) {
	s.reads++
	return s.outlets, s.err
}

func (s *statsSource) CountOutlets(context.Context) (int, error) { return len(s.outlets), s.err }

func (s *statsSource) GetComplaintFacets(context.Context) ([]*model.ComplaintFacet, error) {
	return nil, s.err
}

func (s *statsSource) CountAccounts(context.Context) (int, error) { return 0, s.err }

func statsApp(source *statsSource) *fiber.App {
	c := &Stats{LeaderboardService: &service.Leaderboard{
		IncidentRepo:  source,
		OutletRepo:    source,
		ComplaintRepo: source,
		AccountRepo:   source,
	}}

	app := fiber.New(fiber.Config{ErrorHandler: httpserver.ErrorHandler})
	app.Get("/stats/league-table", c.GetLeagueTable)
	app.Get("/stats/overview", c.GetOverview)
	return app
}

func get(t *testing.T, app *fiber.App, target string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestGetLeagueTableRejectsBadQueries(t *testing.T) {
	for _, target := range []string{
		"/stats/league-table?groupBy=channel",
		"/stats/league-table?limit=0",
		"/stats/league-table?limit=-3",
		"/stats/league-table?limit=501",
		"/stats/league-table?limit=abc",
	} {
		t.Run(target, func(t *testing.T) {
			source := &statsSource{}
			status, body := get(t, statsApp(source), target)

			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Equal(t, apierr.CodeInvalidRequest, gjson.Get(body, "code").String())
			assert.Zero(t, source.reads)
		})
	}
}

func TestGetLeagueTableByOutlet(t *testing.T) {
	source := &statsSource{outlets: []*model.Outlet{{
		OutletID: "lbc",
		Name:     "LBC",
		Type:     null.StringFrom("radio"),
		Incidents: []*model.Incident{{
			Complaints: []*model.Complaint{{SeverityRating: null.IntFrom(4)}},
		}},
	}}}

	status, body := get(t, statsApp(source), "/stats/league-table?groupBy=outlet&limit=500")

	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "outlet", gjson.Get(body, "groupBy").String())
	assert.Equal(t, "LBC", gjson.Get(body, "leaderboard.0.outlet").String())
	assert.Equal(t, int64(1), gjson.Get(body, "leaderboard.0.complaintCount").Int())
}

func TestGetLeagueTableDefaultsToPresenter(t *testing.T) {
	source := &statsSource{}
	status, body := get(t, statsApp(source), "/stats/league-table")

	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "presenter", gjson.Get(body, "groupBy").String())
	assert.Equal(t, 1, source.reads)
}

func TestStatsStorageFailureIsOpaque(t *testing.T) {
	source := &statsSource{err: errors.New("dial tcp 10.0.0.7:5432: connection refused")}
	app := statsApp(source)

	status, body := get(t, app, "/stats/league-table?groupBy=outlet")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, apierr.CodeInternalError, gjson.Get(body, "code").String())
	assert.Equal(t, "could not compute leaderboard", gjson.Get(body, "message").String())
	assert.NotContains(t, body, "10.0.0.7")

	status, body = get(t, app, "/stats/overview")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "could not compute platform overview", gjson.Get(body, "message").String())
	assert.NotContains(t, body, "connection refused")
}
