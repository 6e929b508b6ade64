package service

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/guregu/null.v3"

	"mediawatch.dev/backend/internal/app/appconfig"
	"mediawatch.dev/backend/internal/constant"
	"mediawatch.dev/backend/internal/model"
	"mediawatch.dev/backend/internal/model/cache"
	"mediawatch.dev/backend/internal/model/types"
	"mediawatch.dev/backend/internal/pkg/apierr"
	"mediawatch.dev/backend/internal/pkg/bearer"
	"mediawatch.dev/backend/internal/pkg/passwd"
	"mediawatch.dev/backend/internal/repo"
)

var (
	ErrEmailTaken         = apierr.ErrInvalidReq.Msg("Email already registered")
	ErrInvalidCredentials = apierr.ErrUnauthorized.Msg("Invalid credentials")
	ErrMissingToken       = apierr.ErrUnauthorized.Msg("Authentication required")
	ErrInvalidToken       = apierr.ErrUnauthorized.Msg("Invalid token")
)

type Account struct {
	AccountRepo *repo.Account
	hasher      *passwd.Hasher
}

func NewAccount(accountRepo *repo.Account, conf *appconfig.Config) *Account {
	return &Account{
		AccountRepo: accountRepo,
		hasher:      passwd.NewHasher(conf.BcryptCost),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Account) Register(ctx context.Context, req *types.RegisterRequest) (*model.Account, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	account := &model.Account{
		AccountID:     uuid.NewString(),
		Email:         normalizeEmail(req.Email),
		PasswordHash:  hash,
		AccessToken:   bearer.New(),
		Name:          null.NewString(strings.TrimSpace(req.Name), strings.TrimSpace(req.Name) != ""),
		PreferredTone: req.PreferredTone,
	}
	if account.PreferredTone == "" {
		account.PreferredTone = constant.DefaultTone
	}

	if err := s.AccountRepo.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, errors.Wrap(err, "failed to create account")
	}

	log.Info().
		Str("evt.name", "account.register").
		Str("accountId", account.AccountID).
		Msg("account registered")

	return account, nil
}

func (s *Account) Login(ctx context.Context, req *types.LoginRequest) (*model.Account, error) {
	account, err := s.AccountRepo.GetAccountByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, apierr.ErrNotFound) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, err
	}

	if err := s.hasher.Compare(account.PasswordHash, req.Password); err != nil {
		if errors.Is(err, passwd.ErrMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return account, nil
}

// Cache: account#accessToken:{token}, 24hrs
func (s *Account) GetAccountByAccessToken(ctx context.Context, token string) (*model.Account, error) {
	var account model.Account
	err := cache.AccountByToken.Get(token, &account)
	if err == nil {
		return &account, nil
	}

	dbAccount, err := s.AccountRepo.GetAccountByAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}
	go cache.AccountByToken.Set(token, *dbAccount, constant.AccountCacheLifetime)
	return dbAccount, nil
}

// GetAccountFromRequest resolves the account of the bearer token carried by
// the request.
func (s *Account) GetAccountFromRequest(ctx *fiber.Ctx) (*model.Account, error) {
	token := bearer.Extract(ctx)
	if token == "" {
		return nil, ErrMissingToken
	}

	account, err := s.GetAccountByAccessToken(ctx.UserContext(), token)
	if errors.Is(err, apierr.ErrNotFound) {
		return nil, ErrInvalidToken
	} else if err != nil {
		log.Warn().Err(err).Msg("failed to get account from request")
		return nil, err
	}
	return account, nil
}

func (s *Account) UpdatePreferences(ctx context.Context, account *model.Account, req *types.UpdatePreferencesRequest) (*model.Account, error) {
	// the cached copy carries no password hash, so always work on a fresh row
	updated, err := s.AccountRepo.GetAccountByID(ctx, account.AccountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		updated.Name = null.NewString(name, name != "")
	}
	if req.PreferredTone != nil {
		updated.PreferredTone = *req.PreferredTone
	}

	if err := s.AccountRepo.UpdatePreferences(ctx, updated); err != nil {
		return nil, errors.Wrap(err, "failed to update preferences")
	}

	if err := cache.AccountByToken.Delete(updated.AccessToken); err != nil {
		log.Warn().Err(err).Str("accountId", updated.AccountID).Msg("failed to invalidate account cache")
	}

	return updated, nil
}

func (s *Account) View(account *model.Account) *model.AccountView {
	var view model.AccountView
	_ = copier.Copy(&view, account)
	return &view
}
