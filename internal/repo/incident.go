package repo

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"mediawatch.dev/backend/internal/model"
	"mediawatch.dev/backend/internal/repo/selector"
)

type Incident struct {
	db  *bun.DB
	sel selector.S[model.Incident]
}

func NewIncident(db *bun.DB) *Incident {
	return &Incident{
		db:  db,
		sel: selector.New[model.Incident](db),
	}
}

// IncidentFilter narrows ListIncidents. Zero fields do not filter. Until is exclusive.
type IncidentFilter struct {
	OutletID       string
	PresenterName  string
	InfractionType string
	Since          time.Time
	Until          time.Time
	Offset         int
	Limit          int
}

func (f *IncidentFilter) apply(q *bun.SelectQuery) *bun.SelectQuery {
	if f.OutletID != "" {
		q = q.Where("i.outlet_id = ?", f.OutletID)
	}
	if f.PresenterName != "" {
		q = q.Where("i.presenter_name ILIKE ?", "%"+escapeLike(f.PresenterName)+"%")
	}
	if f.InfractionType != "" {
		q = q.Where("i.infraction_type = ?", f.InfractionType)
	}
	if !f.Since.IsZero() {
		q = q.Where("i.date >= ?", f.Since)
	}
	if !f.Until.IsZero() {
		q = q.Where("i.date < ?", f.Until)
	}
	return q
}

// ListIncidents returns one page of incidents with their outlet and
// complaint count, and the total number of matches.
func (r *Incident) ListIncidents(ctx context.Context, filter *IncidentFilter) ([]*model.Incident, int, error) {
	return r.sel.SelectManyAndCount(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return filter.apply(q).
			ColumnExpr("i.*").
			ColumnExpr("(SELECT count(*) FROM complaints AS c WHERE c.incident_id = i.incident_id) AS complaint_count").
			Relation("Outlet").
			Order("i.date DESC", "i.created_at DESC").
			Offset(filter.Offset).
			Limit(filter.Limit)
	})
}

func (r *Incident) GetIncidentByID(ctx context.Context, incidentID string) (*model.Incident, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("i.incident_id = ?", incidentID)
	})
}

// GetIncidentWithOutlet loads the incident together with its outlet.
func (r *Incident) GetIncidentWithOutlet(ctx context.Context, incidentID string) (*model.Incident, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("i.incident_id = ?", incidentID).Relation("Outlet")
	})
}

// GetIncidentDetail loads the incident with its outlet, creator and complaints.
func (r *Incident) GetIncidentDetail(ctx context.Context, incidentID string) (*model.Incident, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Where("i.incident_id = ?", incidentID).
			Relation("Outlet").
			Relation("Creator").
			Relation("Complaints", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.
					Column("c.complaint_id", "c.incident_id", "c.account_id", "c.status", "c.sent_at", "c.created_at").
					Order("c.created_at DESC")
			}).
			Relation("Complaints.Submitter")
	})
}

func (r *Incident) CreateIncident(ctx context.Context, incident *model.Incident) error {
	_, err := r.db.NewInsert().
		Model(incident).
		Returning("created_at, updated_at").
		Exec(ctx)
	return translateWriteErr(err)
}

func (r *Incident) UpdateIncident(ctx context.Context, incident *model.Incident) error {
	incident.UpdatedAt = time.Now()
	_, err := r.db.NewUpdate().
		Model(incident).
		Column("date", "time", "program_name", "presenter_name", "description", "media_url", "infraction_type", "updated_at").
		WherePK().
		Exec(ctx)
	return err
}

// DeleteIncident removes the incident. Its complaints go with it through the
// ON DELETE CASCADE foreign key.
func (r *Incident) DeleteIncident(ctx context.Context, incidentID string) error {
	_, err := r.db.NewDelete().
		Model((*model.Incident)(nil)).
		Where("incident_id = ?", incidentID).
		Exec(ctx)
	return err
}

// GetIncidentsWithPresenterAndComplaints loads every incident that names a
// presenter and drew at least one complaint, with its outlet name and the
// severity ratings of its complaints.
func (r *Incident) GetIncidentsWithPresenterAndComplaints(ctx context.Context) ([]*model.Incident, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Column("i.incident_id", "i.outlet_id", "i.presenter_name", "i.created_at").
			Where("i.presenter_name IS NOT NULL").
			Where("i.presenter_name <> ''").
			Where("EXISTS (SELECT 1 FROM complaints AS c WHERE c.incident_id = i.incident_id)").
			Relation("Outlet", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Column("outlet_id", "name")
			}).
			Relation("Complaints", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Column("c.complaint_id", "c.incident_id", "c.severity_rating")
			}).
			Order("i.created_at ASC", "i.incident_id ASC")
	})
}

func (r *Incident) CountIncidents(ctx context.Context) (int, error) {
	return r.sel.Count(ctx, func(q *bun.SelectQuery) *bun.SelectQuery { return q })
}
