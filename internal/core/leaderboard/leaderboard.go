// Package leaderboard ranks presenters and outlets by the complaints their
// incidents received. Everything in here is a pure function of its input and
// safe for concurrent use.
package leaderboard

import (
	"sort"

	"github.com/ahmetb/go-linq/v3"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/guregu/null.v3"

	"mediawatch.dev/backend/internal/model"
)

// DefaultLimit is the number of entries returned when no positive limit is given.
const DefaultLimit = 50

// ErrInvalidGroupBy is returned for any grouping mode other than presenter or outlet.
var ErrInvalidGroupBy = errors.New(`invalid groupBy parameter: use "presenter" or "outlet"`)

type GroupBy string

const (
	GroupByPresenter GroupBy = "presenter"
	GroupByOutlet    GroupBy = "outlet"
)

func ParseGroupBy(s string) (GroupBy, error) {
	switch g := GroupBy(s); g {
	case GroupByPresenter, GroupByOutlet:
		return g, nil
	default:
		return "", ErrInvalidGroupBy
	}
}

// Stats is the aggregate shared by both views. AvgSeverityRating is null when
// no complaint in the group carries a rating.
type Stats struct {
	IncidentCount     int        `json:"incidentCount"`
	ComplaintCount    int        `json:"complaintCount"`
	AvgSeverityRating null.Float `json:"avgSeverityRating"`
}

type PresenterEntry struct {
	Presenter string   `json:"presenter"`
	Outlets   []string `json:"outlets"`
	Stats
}

type OutletEntry struct {
	OutletID   string      `json:"outletId"`
	Outlet     string      `json:"outlet"`
	OutletType null.String `json:"outletType"`
	Stats
}

// ByPresenter groups incidents by their exact presenter name. Incidents
// without a presenter name or without complaints are left out. Each incident
// must carry its Outlet and Complaints relations.
func ByPresenter(incidents []*model.Incident, limit int) []*PresenterEntry {
	qualifying := lo.Filter(incidents, func(incident *model.Incident, _ int) bool {
		return incident.PresenterName.String != "" && len(incident.Complaints) > 0
	})

	entries := make([]*PresenterEntry, 0)
	members := make([][]*model.Incident, 0)
	index := make(map[string]int)

	for _, incident := range qualifying {
		name := incident.PresenterName.String
		i, ok := index[name]
		if !ok {
			i = len(entries)
			index[name] = i
			entries = append(entries, &PresenterEntry{Presenter: name})
			members = append(members, nil)
		}
		members[i] = append(members[i], incident)
	}

	for i, entry := range entries {
		acc := &accumulator{}
		for _, incident := range members[i] {
			acc.addIncident(incident)
		}
		entry.Stats = acc.stats()

		// distinct outlet names, in order of first appearance
		entry.Outlets = []string{}
		linq.From(members[i]).
			WhereT(func(el *model.Incident) bool { return el.Outlet != nil }).
			SelectT(func(el *model.Incident) string { return el.Outlet.Name }).
			Distinct().
			ToSlice(&entry.Outlets)
	}

	return rank(entries, func(e *PresenterEntry) Stats { return e.Stats }, limit)
}

// ByOutlet aggregates every incident of every outlet and leaves out outlets
// whose incidents drew no complaint at all. Each outlet must carry its
// Incidents relation, each incident its Complaints.
func ByOutlet(outlets []*model.Outlet, limit int) []*OutletEntry {
	entries := make([]*OutletEntry, 0, len(outlets))

	for _, outlet := range outlets {
		acc := &accumulator{}
		for _, incident := range outlet.Incidents {
			acc.addIncident(incident)
		}
		if acc.complaints == 0 {
			continue
		}

		entries = append(entries, &OutletEntry{
			OutletID:   outlet.OutletID,
			Outlet:     outlet.Name,
			OutletType: outlet.Type,
			Stats:      acc.stats(),
		})
	}

	return rank(entries, func(e *OutletEntry) Stats { return e.Stats }, limit)
}

// rank orders entries by complaint count, then by average rating with an
// absent average compared as zero, keeping input order for remaining ties.
// Truncation to limit happens only after the full sort.
func rank[E any](entries []E, statsOf func(E) Stats, limit int) []E {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := statsOf(entries[i]), statsOf(entries[j])
		if a.ComplaintCount != b.ComplaintCount {
			return a.ComplaintCount > b.ComplaintCount
		}
		return a.AvgSeverityRating.Float64 > b.AvgSeverityRating.Float64
	})

	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

type accumulator struct {
	incidents  int
	complaints int
	ratings    ratingSum
}

func (a *accumulator) addIncident(incident *model.Incident) {
	a.incidents++
	a.complaints += len(incident.Complaints)
	for _, complaint := range incident.Complaints {
		a.ratings.add(complaint.SeverityRating)
	}
}

func (a *accumulator) stats() Stats {
	return Stats{
		IncidentCount:     a.incidents,
		ComplaintCount:    a.complaints,
		AvgSeverityRating: a.ratings.average(),
	}
}
