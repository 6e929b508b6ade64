package repo

import (
	"context"

	"github.com/uptrace/bun"

	"mediawatch.dev/backend/internal/constant"
	"mediawatch.dev/backend/internal/model"
	"mediawatch.dev/backend/internal/repo/selector"
)

type Outlet struct {
	db  *bun.DB
	sel selector.S[model.Outlet]
}

func NewOutlet(db *bun.DB) *Outlet {
	return &Outlet{
		db:  db,
		sel: selector.New[model.Outlet](db),
	}
}

func (r *Outlet) GetOutlets(ctx context.Context) ([]*model.Outlet, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("name ASC")
	})
}

func (r *Outlet) GetOutletByID(ctx context.Context, outletID string) (*model.Outlet, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("outlet_id = ?", outletID)
	})
}

// GetOutletWithRecentIncidents loads the outlet together with its most recent incidents.
func (r *Outlet) GetOutletWithRecentIncidents(ctx context.Context, outletID string) (*model.Outlet, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Where("o.outlet_id = ?", outletID).
			Relation("Incidents", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Order("i.date DESC", "i.created_at DESC").Limit(constant.OutletRecentIncidentsLimit)
			})
	})
}

func (r *Outlet) CreateOutlet(ctx context.Context, outlet *model.Outlet) error {
	_, err := r.db.NewInsert().
		Model(outlet).
		Returning("created_at, updated_at").
		Exec(ctx)
	return translateWriteErr(err)
}

// UpsertOutlets inserts outlets or updates the existing rows with the same id.
func (r *Outlet) UpsertOutlets(ctx context.Context, outlets []*model.Outlet) (int64, error) {
	if len(outlets) == 0 {
		return 0, nil
	}
	res, err := r.db.NewInsert().
		Model(&outlets).
		On("CONFLICT (outlet_id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("type = EXCLUDED.type").
		Set("complaint_email = EXCLUDED.complaint_email").
		Set("complaint_url = EXCLUDED.complaint_url").
		Set("notes = EXCLUDED.notes").
		Set("updated_at = current_timestamp").
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// GetOutletsWithComplaintRatings loads every outlet with all of its incidents
// and the severity ratings of their complaints.
func (r *Outlet) GetOutletsWithComplaintRatings(ctx context.Context) ([]*model.Outlet, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Column("o.outlet_id", "o.name", "o.type").
			Relation("Incidents", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Column("i.incident_id", "i.outlet_id")
			}).
			Relation("Incidents.Complaints", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Column("c.complaint_id", "c.incident_id", "c.severity_rating")
			}).
			Order("o.outlet_id ASC")
	})
}

func (r *Outlet) CountOutlets(ctx context.Context) (int, error) {
	return r.sel.Count(ctx, func(q *bun.SelectQuery) *bun.SelectQuery { return q })
}
