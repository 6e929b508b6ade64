package service

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redsync/redsync/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"mediawatch.dev/backend/internal/app/appconfig"
	"mediawatch.dev/backend/internal/pkg/archiver"
	"mediawatch.dev/backend/internal/repo"
)

var ErrArchiveDisabled = errors.New("archive bucket is not configured")

type Archive struct {
	ComplaintRepo *repo.Complaint
	Config        *appconfig.Config

	lock     *redsync.Mutex
	s3Client *s3.Client
}

func NewArchive(complaintRepo *repo.Complaint, conf *appconfig.Config, redSync *redsync.Redsync, s3Client *s3.Client) *Archive {
	return &Archive{
		ComplaintRepo: complaintRepo,
		Config:        conf,
		lock:          redSync.NewMutex("mutex:archiver", redsync.WithExpiry(30*time.Minute), redsync.WithTries(2)),
		s3Client:      s3Client,
	}
}

// ArchiveByDate uploads every complaint sent on the UTC day of date as a
// gzipped JSON lines object. An existing archive is left untouched and
// reported through archiver.ErrFileAlreadyExists.
func (s *Archive) ArchiveByDate(ctx context.Context, date time.Time) (string, int, error) {
	if s.Config.ArchiveS3Bucket == "" {
		return "", 0, ErrArchiveDisabled
	}

	if err := s.lock.LockContext(ctx); err != nil {
		return "", 0, errors.Wrap(err, "failed to acquire lock")
	}
	defer s.lock.UnlockContext(context.Background())

	a := &archiver.ComplaintArchive{
		Store:     s.s3Client,
		Bucket:    s.Config.ArchiveS3Bucket,
		Prefix:    s.Config.ArchiveS3Prefix,
		Source:    s.ComplaintRepo,
		BatchSize: s.Config.ArchiveBatchSize,
	}

	result, err := a.Archive(ctx, date)
	if err != nil {
		return "", 0, errors.Wrap(err, "failed to archive complaints")
	}

	log.Info().
		Str("evt.name", "archive.finished").
		Str("key", result.Key).
		Int("count", result.Count).
		Msg("finished archiving")

	return result.Key, result.Count, nil
}
