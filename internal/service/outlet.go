package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/guregu/null.v3"

	"mediawatch.dev/backend/internal/model"
	"mediawatch.dev/backend/internal/model/cache"
	"mediawatch.dev/backend/internal/model/types"
	"mediawatch.dev/backend/internal/repo"
)

const outletCacheLifetime = 10 * time.Minute

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

type Outlet struct {
	OutletRepo *repo.Outlet
}

func NewOutlet(outletRepo *repo.Outlet) *Outlet {
	return &Outlet{
		OutletRepo: outletRepo,
	}
}

// Cache: outlets, 10 mins
func (s *Outlet) GetOutlets(ctx context.Context) ([]*model.Outlet, error) {
	var outlets []*model.Outlet
	err := cache.Outlets.MutexGetSet(&outlets, func() ([]*model.Outlet, error) {
		return s.OutletRepo.GetOutlets(ctx)
	}, outletCacheLifetime)
	return outlets, err
}

func (s *Outlet) GetOutletWithRecentIncidents(ctx context.Context, outletID string) (*model.Outlet, error) {
	return s.OutletRepo.GetOutletWithRecentIncidents(ctx, outletID)
}

// Cache: outletContact#outletId:{outletId}, 10 mins
func (s *Outlet) GetOutletContact(ctx context.Context, outletID string) (*model.OutletContact, error) {
	var contact model.OutletContact
	err := cache.OutletContactByID.MutexGetSet(outletID, &contact, func() (model.OutletContact, error) {
		outlet, err := s.OutletRepo.GetOutletByID(ctx, outletID)
		if err != nil {
			return model.OutletContact{}, err
		}
		return contactOf(outlet), nil
	}, outletCacheLifetime)
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func contactOf(outlet *model.Outlet) model.OutletContact {
	return model.OutletContact{
		OutletID:       outlet.OutletID,
		Name:           outlet.Name,
		ComplaintEmail: outlet.ComplaintEmail,
		ComplaintURL:   outlet.ComplaintURL,
		Notes:          outlet.Notes,
	}
}

func (s *Outlet) CreateOutlet(ctx context.Context, req *types.CreateOutletRequest) (*model.Outlet, error) {
	outlet := &model.Outlet{
		OutletID:       Slugify(req.Name),
		Name:           strings.TrimSpace(req.Name),
		Type:           optionalString(req.Type),
		ComplaintEmail: optionalString(req.ComplaintEmail),
		ComplaintURL:   optionalString(req.ComplaintURL),
		Notes:          optionalString(req.Notes),
	}

	err := s.OutletRepo.CreateOutlet(ctx, outlet)
	if errors.Is(err, repo.ErrConflict) {
		// same slug as an existing outlet: keep the name, disambiguate the id
		outlet.OutletID = outlet.OutletID + "-" + strings.ToLower(newShortID())
		err = s.OutletRepo.CreateOutlet(ctx, outlet)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create outlet")
	}

	s.flushCaches()
	return outlet, nil
}

// SeedOutlets upserts outlets by id.
func (s *Outlet) SeedOutlets(ctx context.Context, seeds []types.SeedOutlet) (int64, error) {
	outlets := make([]*model.Outlet, 0, len(seeds))
	for _, seed := range seeds {
		outlets = append(outlets, &model.Outlet{
			OutletID:       seed.ID,
			Name:           seed.Name,
			Type:           optionalString(seed.Type),
			ComplaintEmail: optionalString(seed.ComplaintEmail),
			ComplaintURL:   optionalString(seed.ComplaintURL),
			Notes:          optionalString(seed.Notes),
		})
	}

	n, err := s.OutletRepo.UpsertOutlets(ctx, outlets)
	if err != nil {
		return 0, errors.Wrap(err, "failed to upsert outlets")
	}

	s.flushCaches()
	return n, nil
}

func (s *Outlet) flushCaches() {
	if err := cache.Outlets.Delete(); err != nil {
		log.Warn().Err(err).Msg("failed to flush outlets cache")
	}
	if err := cache.OutletContactByID.Flush(); err != nil {
		log.Warn().Err(err).Msg("failed to flush outlet contact cache")
	}
}

// Slugify derives an outlet id from its name, e.g. "BBC One" becomes "bbc-one".
func Slugify(name string) string {
	slug := slugSeparators.ReplaceAllString(strings.ToLower(name), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 48 {
		slug = strings.TrimRight(slug[:48], "-")
	}
	if slug == "" {
		return "outlet-" + strings.ToLower(newShortID())
	}
	return slug
}

// optionalString trims s and maps the empty string to null.
func optionalString(s string) null.String {
	s = strings.TrimSpace(s)
	return null.NewString(s, s != "")
}
