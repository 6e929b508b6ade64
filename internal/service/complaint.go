package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/guregu/null.v3"

	"mediawatch.dev/backend/internal/constant"
	"mediawatch.dev/backend/internal/core/letter"
	"mediawatch.dev/backend/internal/model"
	"mediawatch.dev/backend/internal/model/types"
	"mediawatch.dev/backend/internal/pkg/apierr"
	"mediawatch.dev/backend/internal/pkg/jetstream"
	"mediawatch.dev/backend/internal/repo"
)

var (
	ErrComplaintNotFound    = apierr.ErrNotFound.Msg("Complaint not found")
	ErrNotComplaintOwner    = apierr.ErrForbidden.Msg("Not authorized to access this complaint")
	ErrComplaintAlreadySent = apierr.ErrInvalidReq.Msg("Complaint already sent")
	ErrCannotEditSent       = apierr.ErrInvalidReq.Msg("Cannot edit a sent complaint")
	ErrCannotDeleteSent     = apierr.ErrInvalidReq.Msg("Cannot delete a sent complaint")
	ErrComplaintNotSent     = apierr.ErrInvalidReq.Msg("Only sent complaints can record a response")
	ErrCannotRegenerateSent = apierr.ErrInvalidReq.Msg("Cannot regenerate a sent complaint")
)

// ErrDispatchPermanent marks dispatch failures that a redelivery cannot fix.
var ErrDispatchPermanent = errors.New("permanent dispatch failure")

type DispatchOutcome string

const (
	DispatchSent    DispatchOutcome = "sent"
	DispatchSkipped DispatchOutcome = "skipped"
	DispatchFailed  DispatchOutcome = "failed"
)

type Complaint struct {
	ComplaintRepo *repo.Complaint
	IncidentRepo  *repo.Incident
	AccountRepo   *repo.Account
	LetterService *Letter
	MailService   *Mail

	js      nats.JetStreamContext
	redSync *redsync.Redsync
}

func NewComplaint(complaintRepo *repo.Complaint, incidentRepo *repo.Incident, accountRepo *repo.Account, letterService *Letter, mailService *Mail, js nats.JetStreamContext, redSync *redsync.Redsync) *Complaint {
	return &Complaint{
		ComplaintRepo: complaintRepo,
		IncidentRepo:  incidentRepo,
		AccountRepo:   accountRepo,
		LetterService: letterService,
		MailService:   mailService,
		js:            js,
		redSync:       redSync,
	}
}

func ratingOf(rating *int) null.Int {
	if rating == nil {
		return null.Int{}
	}
	return null.IntFrom(int64(*rating))
}

func writerOf(account *model.Account) letter.Writer {
	return letter.Writer{Name: account.Name.String, Tone: account.PreferredTone}
}

// GenerateLetter drafts a new complaint of account about an incident. An
// account files at most one complaint per incident.
func (s *Complaint) GenerateLetter(ctx context.Context, account *model.Account, req *types.GenerateLetterRequest) (*model.Complaint, error) {
	if !s.LetterService.Enabled() {
		return nil, apierr.ErrLetterGenerationDisabled
	}

	incident, err := s.IncidentRepo.GetIncidentWithOutlet(ctx, req.IncidentID)
	if errors.Is(err, apierr.ErrNotFound) {
		return nil, ErrIncidentNotFound
	} else if err != nil {
		return nil, err
	}

	existing, err := s.ComplaintRepo.GetComplaintByAccountAndIncident(ctx, account.AccountID, incident.IncidentID)
	if err == nil {
		return nil, apierr.ErrInvalidReq.
			Msg("You have already created a complaint for this incident").
			WithExtras(apierr.Extras{"complaint": existing})
	} else if !errors.Is(err, apierr.ErrNotFound) {
		return nil, err
	}

	count, err := s.ComplaintRepo.CountComplaintsByIncidentID(ctx, incident.IncidentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count complaints")
	}

	content, err := s.LetterService.Generate(ctx, incident, writerOf(account), count)
	if err != nil {
		return nil, err
	}

	complaint := &model.Complaint{
		ComplaintID:    uuid.NewString(),
		IncidentID:     incident.IncidentID,
		AccountID:      account.AccountID,
		LetterContent:  content,
		SeverityRating: ratingOf(req.SeverityRating),
		Status:         constant.ComplaintStatusDraft,
	}
	if err := s.ComplaintRepo.CreateComplaint(ctx, complaint); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, apierr.ErrInvalidReq.Msg("You have already created a complaint for this incident")
		}
		return nil, errors.Wrap(err, "failed to create complaint")
	}

	log.Info().
		Str("evt.name", "complaint.generate").
		Str("complaintId", complaint.ComplaintID).
		Str("incidentId", incident.IncidentID).
		Int("variation", count).
		Msg("complaint letter generated")

	complaint.Incident = incident
	return complaint, nil
}

// RegenerateLetter replaces the letter of a draft complaint with a fresh one
// built on a variation not handed out on first generation.
func (s *Complaint) RegenerateLetter(ctx context.Context, account *model.Account, complaintID string) (*model.Complaint, error) {
	if !s.LetterService.Enabled() {
		return nil, apierr.ErrLetterGenerationDisabled
	}

	complaint, err := s.GetOwnComplaint(ctx, account, complaintID)
	if err != nil {
		return nil, err
	}
	if complaint.Status != constant.ComplaintStatusDraft {
		return nil, ErrCannotRegenerateSent
	}

	count, err := s.ComplaintRepo.CountComplaintsByIncidentID(ctx, complaint.IncidentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count complaints")
	}

	content, err := s.LetterService.Generate(ctx, complaint.Incident, writerOf(account), count+constant.RegenerationVariationOffset)
	if err != nil {
		return nil, err
	}

	complaint.LetterContent = content
	if err := s.ComplaintRepo.UpdateLetter(ctx, complaint); err != nil {
		return nil, errors.Wrap(err, "failed to update complaint")
	}
	return complaint, nil
}

func (s *Complaint) ListOwnComplaints(ctx context.Context, account *model.Account) ([]*model.Complaint, error) {
	return s.ComplaintRepo.GetComplaintsByAccountID(ctx, account.AccountID)
}

// GetOwnComplaint loads the complaint with its incident and outlet, and
// checks that account filed it.
func (s *Complaint) GetOwnComplaint(ctx context.Context, account *model.Account, complaintID string) (*model.Complaint, error) {
	complaint, err := s.ComplaintRepo.GetComplaintWithIncident(ctx, complaintID)
	if errors.Is(err, apierr.ErrNotFound) {
		return nil, ErrComplaintNotFound
	} else if err != nil {
		return nil, err
	}
	if complaint.AccountID != account.AccountID {
		return nil, ErrNotComplaintOwner
	}
	return complaint, nil
}

func (s *Complaint) UpdateComplaint(ctx context.Context, account *model.Account, complaintID string, req *types.UpdateComplaintRequest) (*model.Complaint, error) {
	complaint, err := s.GetOwnComplaint(ctx, account, complaintID)
	if err != nil {
		return nil, err
	}
	if complaint.Status != constant.ComplaintStatusDraft {
		return nil, ErrCannotEditSent
	}

	complaint.LetterContent = strings.TrimSpace(req.LetterContent)
	if req.SeverityRating != nil {
		complaint.SeverityRating = ratingOf(req.SeverityRating)
	}
	if err := s.ComplaintRepo.UpdateLetter(ctx, complaint); err != nil {
		return nil, errors.Wrap(err, "failed to update complaint")
	}
	return complaint, nil
}

// QueueSend hands a draft complaint over to the dispatch workers.
func (s *Complaint) QueueSend(ctx context.Context, account *model.Account, complaintID string) (*model.Complaint, error) {
	complaint, err := s.GetOwnComplaint(ctx, account, complaintID)
	if err != nil {
		return nil, err
	}
	if complaint.Status != constant.ComplaintStatusDraft {
		return nil, ErrComplaintAlreadySent
	}
	outlet := complaint.Incident.Outlet
	if !outlet.ComplaintEmail.Valid || outlet.ComplaintEmail.String == "" {
		return nil, apierr.ErrInvalidReq.
			Msg("This outlet has no complaint email on record: please use their complaint form").
			WithExtras(apierr.Extras{"complaintUrl": outlet.ComplaintURL})
	}

	task := &types.DispatchTask{
		TaskID:      newTaskID(),
		ComplaintID: complaint.ComplaintID,
		AccountID:   account.AccountID,
		CreatedAt:   time.Now().UnixMicro(),
	}
	data, err := json.Marshal(task)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal dispatch task")
	}

	if err := jetstream.Publish(ctx, s.js, constant.DispatchSubject, data, complaint.ComplaintID, constant.DispatchPublishTimeout); err != nil {
		return nil, errors.Wrap(err, "failed to queue complaint")
	}

	log.Info().
		Str("evt.name", "complaint.dispatch.queued").
		Str("complaintId", complaint.ComplaintID).
		Str("taskId", task.TaskID).
		Msg("complaint queued for sending")

	return complaint, nil
}

func (s *Complaint) RecordResponse(ctx context.Context, account *model.Account, complaintID string, req *types.RecordResponseRequest) (*model.Complaint, error) {
	complaint, err := s.GetOwnComplaint(ctx, account, complaintID)
	if err != nil {
		return nil, err
	}
	if complaint.Status == constant.ComplaintStatusDraft {
		return nil, ErrComplaintNotSent
	}

	if err := s.ComplaintRepo.RecordResponse(ctx, complaint, strings.TrimSpace(req.ResponseText)); err != nil {
		return nil, errors.Wrap(err, "failed to record response")
	}
	return complaint, nil
}

func (s *Complaint) DeleteComplaint(ctx context.Context, account *model.Account, complaintID string) error {
	complaint, err := s.GetOwnComplaint(ctx, account, complaintID)
	if err != nil {
		return err
	}
	if complaint.Status != constant.ComplaintStatusDraft {
		return ErrCannotDeleteSent
	}
	return errors.Wrap(s.ComplaintRepo.DeleteComplaint(ctx, complaintID), "failed to delete complaint")
}

// Dispatch delivers the complaint of task by mail and marks it sent. Complaints
// that are no longer drafts are skipped. Errors wrapping ErrDispatchPermanent
// will fail the same way on every redelivery.
func (s *Complaint) Dispatch(ctx context.Context, task *types.DispatchTask) (DispatchOutcome, error) {
	mutex := s.redSync.NewMutex("mutex:complaint-dispatch:"+task.ComplaintID,
		redsync.WithExpiry(2*time.Minute),
		redsync.WithTries(1),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return DispatchFailed, errors.Wrap(err, "complaint is being dispatched elsewhere")
	}
	defer func() {
		if _, err := mutex.UnlockContext(context.Background()); err != nil {
			log.Warn().Err(err).Str("complaintId", task.ComplaintID).Msg("failed to release dispatch lock")
		}
	}()

	complaint, err := s.ComplaintRepo.GetComplaintWithIncident(ctx, task.ComplaintID)
	if errors.Is(err, apierr.ErrNotFound) {
		return DispatchSkipped, nil
	} else if err != nil {
		return DispatchFailed, errors.Wrap(err, "failed to load complaint")
	}
	if complaint.Status != constant.ComplaintStatusDraft {
		return DispatchSkipped, nil
	}

	outlet := complaint.Incident.Outlet
	if !outlet.ComplaintEmail.Valid || outlet.ComplaintEmail.String == "" {
		return DispatchFailed, errors.Wrapf(ErrDispatchPermanent, "outlet %s has no complaint email", outlet.OutletID)
	}

	complainant, err := s.AccountRepo.GetAccountByID(ctx, complaint.AccountID)
	if err != nil {
		return DispatchFailed, errors.Wrap(err, "failed to load complainant")
	}

	if err := s.MailService.SendComplaint(ctx, complaint, complainant); err != nil {
		return DispatchFailed, errors.Wrap(err, "failed to send complaint")
	}

	sent, err := s.ComplaintRepo.MarkSent(ctx, complaint.ComplaintID, outlet.ComplaintEmail.String, time.Now())
	if err != nil {
		// the mail is out: a redelivery would send it twice
		return DispatchFailed, errors.Wrap(ErrDispatchPermanent, err.Error())
	}
	if !sent {
		log.Warn().
			Str("evt.name", "complaint.dispatch.race").
			Str("complaintId", complaint.ComplaintID).
			Msg("complaint changed status while being sent")
	}

	log.Info().
		Str("evt.name", "complaint.dispatch.sent").
		Str("complaintId", complaint.ComplaintID).
		Str("sentTo", outlet.ComplaintEmail.String).
		Msg("complaint sent")

	return DispatchSent, nil
}
