package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"mediawatch.dev/backend/internal/core/leaderboard"
	"mediawatch.dev/backend/internal/model"
	"mediawatch.dev/backend/internal/pkg/apierr"
	"mediawatch.dev/backend/internal/pkg/observability"
	"mediawatch.dev/backend/internal/repo"
)

type LeaderboardResult struct {
	GroupBy leaderboard.GroupBy `json:"groupBy"`
	// Leaderboard is a []*leaderboard.PresenterEntry or a []*leaderboard.OutletEntry.
	Leaderboard any `json:"leaderboard"`
}

type (
	IncidentFacetSource interface {
		GetIncidentsWithPresenterAndComplaints(ctx context.Context) ([]*model.Incident, error)
		CountIncidents(ctx context.Context) (int, error)
	}
	OutletFacetSource interface {
		GetOutletsWithComplaintRatings(ctx context.Context) ([]*model.Outlet, error)
		CountOutlets(ctx context.Context) (int, error)
	}
	ComplaintFacetSource interface {
		GetComplaintFacets(ctx context.Context) ([]*model.ComplaintFacet, error)
	}
	AccountCounter interface {
		CountAccounts(ctx context.Context) (int, error)
	}
)

var (
	errLeaderboardUnavailable = apierr.ErrInternalError.Msg("could not compute leaderboard")
	errOverviewUnavailable    = apierr.ErrInternalError.Msg("could not compute platform overview")
)

// Leaderboard fetches fresh data on every call and hands it to the
// leaderboard core. Nothing it computes is cached.
type Leaderboard struct {
	IncidentRepo  IncidentFacetSource
	OutletRepo    OutletFacetSource
	ComplaintRepo ComplaintFacetSource
	AccountRepo   AccountCounter
}

func NewLeaderboard(incidentRepo *repo.Incident, outletRepo *repo.Outlet, complaintRepo *repo.Complaint, accountRepo *repo.Account) *Leaderboard {
	return &Leaderboard{
		IncidentRepo:  incidentRepo,
		OutletRepo:    outletRepo,
		ComplaintRepo: complaintRepo,
		AccountRepo:   accountRepo,
	}
}

// ComputeLeaderboard ranks presenters or outlets. An unknown groupBy is
// rejected before any data is fetched.
func (s *Leaderboard) ComputeLeaderboard(ctx context.Context, groupBy string, limit int) (*LeaderboardResult, error) {
	mode, err := leaderboard.ParseGroupBy(groupBy)
	if err != nil {
		return nil, apierr.ErrInvalidReq.Msg("%s", err.Error())
	}

	start := time.Now()
	defer func() {
		observability.LeaderboardComputeDuration.WithLabelValues(string(mode)).Observe(time.Since(start).Seconds())
	}()

	switch mode {
	case leaderboard.GroupByPresenter:
		incidents, err := s.IncidentRepo.GetIncidentsWithPresenterAndComplaints(ctx)
		if err != nil {
			return nil, errLeaderboardUnavailable.WithCause(errors.Wrap(err, "failed to fetch incidents for presenter leaderboard"))
		}
		return &LeaderboardResult{GroupBy: mode, Leaderboard: leaderboard.ByPresenter(incidents, limit)}, nil
	default:
		outlets, err := s.OutletRepo.GetOutletsWithComplaintRatings(ctx)
		if err != nil {
			return nil, errLeaderboardUnavailable.WithCause(errors.Wrap(err, "failed to fetch outlets for outlet leaderboard"))
		}
		return &LeaderboardResult{GroupBy: mode, Leaderboard: leaderboard.ByOutlet(outlets, limit)}, nil
	}
}

// ComputePlatformOverview fetches the row totals concurrently.
func (s *Leaderboard) ComputePlatformOverview(ctx context.Context) (*leaderboard.PlatformOverview, error) {
	var totals leaderboard.Totals
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() (err error) {
		totals.Incidents, err = s.IncidentRepo.CountIncidents(ctx)
		return errors.Wrap(err, "failed to count incidents")
	})
	eg.Go(func() (err error) {
		totals.Users, err = s.AccountRepo.CountAccounts(ctx)
		return errors.Wrap(err, "failed to count accounts")
	})
	eg.Go(func() (err error) {
		totals.Outlets, err = s.OutletRepo.CountOutlets(ctx)
		return errors.Wrap(err, "failed to count outlets")
	})

	facets, err := s.ComplaintRepo.GetComplaintFacets(ctx)
	if err != nil {
		_ = eg.Wait()
		return nil, errOverviewUnavailable.WithCause(errors.Wrap(err, "failed to fetch complaints"))
	}
	if err := eg.Wait(); err != nil {
		return nil, errOverviewUnavailable.WithCause(err)
	}

	return leaderboard.Overview(totals, facets), nil
}
