// Package archiver writes the complaints sent on one UTC day to object
// storage as a single gzipped JSON lines file.
package archiver

import (
	"compress/gzip"
	"context"
	"io"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"mediawatch.dev/backend/internal/model"
)

const (
	Realm   = "complaints"
	FileExt = ".jsonl.gz"

	DefaultBatchSize = 500
)

var ErrFileAlreadyExists = errors.New("file already exists")

// ObjectStore is the part of *s3.Client the archiver talks to.
type ObjectStore interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ComplaintSource pages the complaints sent in [since, until) in
// (created_at, id) order, strictly after the cursor.
type ComplaintSource interface {
	GetSentComplaintsPage(ctx context.Context, since, until time.Time, cursor model.Cursor, limit int) ([]*model.Complaint, error)
}

// DayWindow returns the bounds of the UTC day containing t.
func DayWindow(t time.Time) (since, until time.Time) {
	t = t.UTC()
	since = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return since, since.AddDate(0, 0, 1)
}

// Key is the object key of the archive for the UTC day containing date,
// e.g. "v1/complaints/complaints_2024-03-01.jsonl.gz" for prefix "v1/".
func Key(prefix string, date time.Time) string {
	return prefix + Realm + "/" + Realm + "_" + date.UTC().Format(time.DateOnly) + FileExt
}

type ComplaintArchive struct {
	Store  ObjectStore
	Bucket string
	// Prefix has no leading slash and typically a trailing one, e.g. "v1/".
	Prefix string

	Source    ComplaintSource
	BatchSize int
}

type Result struct {
	Key   string
	Count int
}

// Archive uploads the day's complaints. An existing object is never
// overwritten, and nothing is uploaded unless every page was read.
func (a *ComplaintArchive) Archive(ctx context.Context, date time.Time) (*Result, error) {
	key := Key(a.Prefix, date)
	logger := log.With().
		Str("module", "archiver").
		Str("key", key).
		Logger()

	if err := a.assertAbsent(ctx, key); err != nil {
		return nil, err
	}

	file, err := os.CreateTemp("", "mediawatch-archive-*"+FileExt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temporary file")
	}
	defer func() {
		_ = file.Close()
		_ = os.Remove(file.Name())
	}()

	count, err := a.writeDay(ctx, file, date)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("count", count).Msg("wrote archive to temporary file")

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "failed to rewind temporary file")
	}
	if _, err := a.Store.PutObject(ctx, &s3.PutObjectInput{
		Bucket:            aws.String(a.Bucket),
		Key:               aws.String(key),
		Body:              file,
		ContentType:       aws.String("application/gzip"),
		StorageClass:      types.StorageClassStandardIa,
		ChecksumAlgorithm: types.ChecksumAlgorithmSha256,
	}); err != nil {
		return nil, errors.Wrap(err, "failed to invoke PutObject")
	}

	return &Result{Key: key, Count: count}, nil
}

func (a *ComplaintArchive) assertAbsent(ctx context.Context, key string) error {
	object, err := a.Store.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var ae smithy.APIError
		if errors.As(err, &ae) && (ae.ErrorCode() == "NotFound" || ae.ErrorCode() == "NoSuchKey") {
			return nil
		}
		return errors.Wrap(err, "failed to invoke HeadObject")
	}
	return errors.Wrapf(ErrFileAlreadyExists, "%q was last modified at %s", key, aws.ToTime(object.LastModified).Format(time.RFC3339))
}

// writeDay streams every page of the day into w, one complaint per line.
func (a *ComplaintArchive) writeDay(ctx context.Context, w io.Writer, date time.Time) (int, error) {
	batchSize := a.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	since, until := DayWindow(date)

	gz := gzip.NewWriter(w)
	encoder := json.NewEncoder(gz)

	var cursor model.Cursor
	count := 0
	for {
		page, err := a.Source.GetSentComplaintsPage(ctx, since, until, cursor, batchSize)
		if err != nil {
			return count, errors.Wrapf(err, "failed to read complaints after %d rows", count)
		}
		for _, complaint := range page {
			if err := encoder.Encode(complaint); err != nil {
				return count, errors.Wrap(err, "failed to encode complaint")
			}
		}
		count += len(page)

		if len(page) < batchSize {
			break
		}
		last := page[len(page)-1]
		cursor = model.Cursor{CreatedAt: last.CreatedAt, ID: last.ComplaintID}
	}

	if err := gz.Close(); err != nil {
		return count, errors.Wrap(err, "failed to flush gzip stream")
	}
	return count, nil
}
