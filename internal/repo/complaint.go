package repo

import (
	"context"
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"

	"mediawatch.dev/backend/internal/constant"
	"mediawatch.dev/backend/internal/model"
	"mediawatch.dev/backend/internal/repo/selector"
)

type Complaint struct {
	db       *bun.DB
	sel      selector.S[model.Complaint]
	facetSel selector.S[model.ComplaintFacet]
}

func NewComplaint(db *bun.DB) *Complaint {
	return &Complaint{
		db:       db,
		sel:      selector.New[model.Complaint](db),
		facetSel: selector.New[model.ComplaintFacet](db),
	}
}

func withIncidentAndOutlet(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Relation("Incident").Relation("Incident.Outlet")
}

func (r *Complaint) GetComplaintByID(ctx context.Context, complaintID string) (*model.Complaint, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("c.complaint_id = ?", complaintID)
	})
}

// GetComplaintWithIncident loads the complaint with its incident and the
// incident's outlet.
func (r *Complaint) GetComplaintWithIncident(ctx context.Context, complaintID string) (*model.Complaint, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return withIncidentAndOutlet(q.Where("c.complaint_id = ?", complaintID))
	})
}

func (r *Complaint) GetComplaintsByAccountID(ctx context.Context, accountID string) ([]*model.Complaint, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return withIncidentAndOutlet(q.Where("c.account_id = ?", accountID)).
			Order("c.created_at DESC")
	})
}

func (r *Complaint) GetComplaintByAccountAndIncident(ctx context.Context, accountID, incidentID string) (*model.Complaint, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("c.account_id = ?", accountID).Where("c.incident_id = ?", incidentID)
	})
}

func (r *Complaint) CountComplaintsByIncidentID(ctx context.Context, incidentID string) (int, error) {
	return r.sel.Count(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("incident_id = ?", incidentID)
	})
}

func (r *Complaint) CreateComplaint(ctx context.Context, complaint *model.Complaint) error {
	_, err := r.db.NewInsert().
		Model(complaint).
		Returning("created_at, updated_at").
		Exec(ctx)
	return translateWriteErr(err)
}

// UpdateLetter rewrites the letter and rating of a complaint that is still a draft.
func (r *Complaint) UpdateLetter(ctx context.Context, complaint *model.Complaint) error {
	complaint.UpdatedAt = time.Now()
	_, err := r.db.NewUpdate().
		Model(complaint).
		Column("letter_content", "severity_rating", "updated_at").
		WherePK().
		Where("status = ?", constant.ComplaintStatusDraft).
		Exec(ctx)
	return err
}

// MarkSent flips a draft complaint to sent. It reports false when the
// complaint was no longer a draft.
func (r *Complaint) MarkSent(ctx context.Context, complaintID string, sentTo string, sentAt time.Time) (bool, error) {
	res, err := r.db.NewUpdate().
		Model((*model.Complaint)(nil)).
		Set("status = ?", constant.ComplaintStatusSent).
		Set("sent_at = ?", sentAt).
		Set("sent_to = ?", sentTo).
		Set("updated_at = ?", sentAt).
		Where("complaint_id = ?", complaintID).
		Where("status = ?", constant.ComplaintStatusDraft).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *Complaint) RecordResponse(ctx context.Context, complaint *model.Complaint, text string) error {
	now := time.Now()
	complaint.Status = constant.ComplaintStatusResponseReceived
	complaint.ResponseText = null.StringFrom(text)
	complaint.ResponseAt = null.TimeFrom(now)
	complaint.UpdatedAt = now
	_, err := r.db.NewUpdate().
		Model(complaint).
		Column("status", "response_text", "response_at", "updated_at").
		WherePK().
		Exec(ctx)
	return err
}

func (r *Complaint) DeleteComplaint(ctx context.Context, complaintID string) error {
	_, err := r.db.NewDelete().
		Model((*model.Complaint)(nil)).
		Where("complaint_id = ?", complaintID).
		Exec(ctx)
	return err
}

// GetComplaintFacets loads the status and rating of every complaint.
func (r *Complaint) GetComplaintFacets(ctx context.Context) ([]*model.ComplaintFacet, error) {
	return r.facetSel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Column("status", "severity_rating")
	})
}

// GetSentComplaintsPage returns up to limit complaints sent in [since, until),
// ordered by (created_at, complaint_id) and strictly after cursor.
func (r *Complaint) GetSentComplaintsPage(ctx context.Context, since, until time.Time, cursor model.Cursor, limit int) ([]*model.Complaint, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		q = q.
			Where("c.status IN (?)", bun.In([]string{constant.ComplaintStatusSent, constant.ComplaintStatusResponseReceived})).
			Where("c.sent_at >= ?", since).
			Where("c.sent_at < ?", until)
		if !cursor.IsZero() {
			q = q.Where("(c.created_at, c.complaint_id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		}
		return q.
			Order("c.created_at ASC", "c.complaint_id ASC").
			Limit(limit)
	})
}
