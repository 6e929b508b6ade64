package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"mediawatch.dev/backend/internal/model"
	"mediawatch.dev/backend/internal/model/types"
	"mediawatch.dev/backend/internal/pkg/apierr"
	"mediawatch.dev/backend/internal/repo"
)

const (
	defaultIncidentPageSize = 20
)

var (
	ErrInvalidOutlet        = apierr.ErrInvalidReq.Msg("Invalid outlet ID")
	ErrNotIncidentCreator   = apierr.ErrForbidden.Msg("Not authorized to modify this incident")
	ErrIncidentNotFound     = apierr.ErrNotFound.Msg("Incident not found")
	ErrInvalidIncidentDate  = apierr.ErrInvalidReq.Msg("Invalid date: use RFC 3339 or YYYY-MM-DD")
	ErrInvalidIncidentRange = apierr.ErrInvalidReq.Msg("Invalid date range: use YYYY-MM-DD")
)

type Incident struct {
	IncidentRepo *repo.Incident
	OutletRepo   *repo.Outlet
}

func NewIncident(incidentRepo *repo.Incident, outletRepo *repo.Outlet) *Incident {
	return &Incident{
		IncidentRepo: incidentRepo,
		OutletRepo:   outletRepo,
	}
}

// ParseIncidentDate accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date (taken as UTC midnight).
func ParseIncidentDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func (s *Incident) ListIncidents(ctx context.Context, query *types.IncidentListQuery) ([]*model.Incident, model.Pagination, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = defaultIncidentPageSize
	}

	filter := &repo.IncidentFilter{
		OutletID:       query.OutletID,
		PresenterName:  strings.TrimSpace(query.PresenterName),
		InfractionType: query.InfractionType,
		Offset:         (page - 1) * limit,
		Limit:          limit,
	}
	if query.StartDate != "" {
		since, err := ParseIncidentDate(query.StartDate)
		if err != nil {
			return nil, model.Pagination{}, ErrInvalidIncidentRange
		}
		filter.Since = since
	}
	if query.EndDate != "" {
		until, err := ParseIncidentDate(query.EndDate)
		if err != nil {
			return nil, model.Pagination{}, ErrInvalidIncidentRange
		}
		// end dates are inclusive
		filter.Until = until.AddDate(0, 0, 1)
	}

	incidents, total, err := s.IncidentRepo.ListIncidents(ctx, filter)
	if err != nil {
		return nil, model.Pagination{}, errors.Wrap(err, "failed to list incidents")
	}
	return incidents, model.NewPagination(page, limit, total), nil
}

func (s *Incident) GetIncidentDetail(ctx context.Context, incidentID string) (*model.Incident, error) {
	incident, err := s.IncidentRepo.GetIncidentDetail(ctx, incidentID)
	if errors.Is(err, apierr.ErrNotFound) {
		return nil, ErrIncidentNotFound
	}
	return incident, err
}

func (s *Incident) CreateIncident(ctx context.Context, account *model.Account, req *types.CreateIncidentRequest) (*model.Incident, error) {
	date, err := ParseIncidentDate(req.Date)
	if err != nil {
		return nil, ErrInvalidIncidentDate
	}

	outlet, err := s.OutletRepo.GetOutletByID(ctx, req.OutletID)
	if errors.Is(err, apierr.ErrNotFound) {
		return nil, ErrInvalidOutlet
	} else if err != nil {
		return nil, err
	}

	incident := &model.Incident{
		IncidentID:     uuid.NewString(),
		OutletID:       outlet.OutletID,
		Date:           date,
		Time:           optionalString(req.Time),
		ProgramName:    optionalString(req.ProgramName),
		PresenterName:  optionalString(req.PresenterName),
		Description:    strings.TrimSpace(req.Description),
		MediaURL:       optionalString(req.MediaURL),
		InfractionType: optionalString(req.InfractionType),
		CreatedBy:      account.AccountID,
	}
	if err := s.IncidentRepo.CreateIncident(ctx, incident); err != nil {
		if errors.Is(err, repo.ErrDanglingReference) {
			return nil, ErrInvalidOutlet
		}
		return nil, errors.Wrap(err, "failed to create incident")
	}

	incident.Outlet = outlet
	return incident, nil
}

// getOwnIncident loads the incident and checks that account created it.
func (s *Incident) getOwnIncident(ctx context.Context, account *model.Account, incidentID string) (*model.Incident, error) {
	incident, err := s.IncidentRepo.GetIncidentByID(ctx, incidentID)
	if errors.Is(err, apierr.ErrNotFound) {
		return nil, ErrIncidentNotFound
	} else if err != nil {
		return nil, err
	}
	if incident.CreatedBy != account.AccountID {
		return nil, ErrNotIncidentCreator
	}
	return incident, nil
}

func (s *Incident) UpdateIncident(ctx context.Context, account *model.Account, incidentID string, req *types.UpdateIncidentRequest) (*model.Incident, error) {
	incident, err := s.getOwnIncident(ctx, account, incidentID)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, err := ParseIncidentDate(*req.Date)
		if err != nil {
			return nil, ErrInvalidIncidentDate
		}
		incident.Date = date
	}
	if req.Time != nil {
		incident.Time = optionalString(*req.Time)
	}
	if req.ProgramName != nil {
		incident.ProgramName = optionalString(*req.ProgramName)
	}
	if req.PresenterName != nil {
		incident.PresenterName = optionalString(*req.PresenterName)
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, apierr.ErrInvalidReq.Msg("Description cannot be empty")
		}
		incident.Description = description
	}
	if req.MediaURL != nil {
		incident.MediaURL = optionalString(*req.MediaURL)
	}
	if req.InfractionType != nil {
		incident.InfractionType = optionalString(*req.InfractionType)
	}

	if err := s.IncidentRepo.UpdateIncident(ctx, incident); err != nil {
		return nil, errors.Wrap(err, "failed to update incident")
	}
	return incident, nil
}

func (s *Incident) DeleteIncident(ctx context.Context, account *model.Account, incidentID string) error {
	if _, err := s.getOwnIncident(ctx, account, incidentID); err != nil {
		return err
	}
	return errors.Wrap(s.IncidentRepo.DeleteIncident(ctx, incidentID), "failed to delete incident")
}
