package archiver

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"mediawatch.dev/backend/internal/model"
)

type memoryStore struct {
	objects map[string][]byte
	puts    int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string][]byte{}}
}

func (s *memoryStore) HeadObject(_ context.Context, params *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := s.objects[aws.ToString(params.Key)]; !ok {
		return nil, &smithy.GenericAPIError{Code: "NotFound", Message: "Not Found"}
	}
	return &s3.HeadObjectOutput{LastModified: aws.Time(time.Date(2024, 3, 2, 1, 0, 0, 0, time.UTC))}, nil
}

func (s *memoryStore) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	s.puts++
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	s.objects[aws.ToString(params.Key)] = body
	return &s3.PutObjectOutput{}, nil
}

// pagedComplaints serves its rows in keyset pages and records every cursor it was asked for.
type pagedComplaints struct {
	rows    []*model.Complaint
	cursors []model.Cursor
	failAt  int
}

func (p *pagedComplaints) GetSentComplaintsPage(_ context.Context, since, until time.Time, cursor model.Cursor, limit int) ([]*model.Complaint, error) {
	p.cursors = append(p.cursors, cursor)
	if p.failAt > 0 && len(p.cursors) == p.failAt {
		return nil, errors.New("connection reset")
	}

	start := 0
	if !cursor.IsZero() {
		for i, row := range p.rows {
			if row.ComplaintID == cursor.ID {
				start = i + 1
			}
		}
	}
	var page []*model.Complaint
	for _, row := range p.rows[start:] {
		if row.SentAt.Time.Before(since) || !row.SentAt.Time.Before(until) {
			continue
		}
		page = append(page, row)
		if len(page) == limit {
			break
		}
	}
	return page, nil
}

func sentComplaints(n int, day time.Time) []*model.Complaint {
	rows := make([]*model.Complaint, 0, n)
	for i := 0; i < n; i++ {
		at := day.Add(time.Duration(i) * time.Minute)
		c := &model.Complaint{
			ComplaintID: fmt.Sprintf("c%d", i+1),
			Status:      "sent",
			CreatedAt:   at,
		}
		c.SentAt.SetValid(at)
		rows = append(rows, c)
	}
	return rows
}

func decodeIDs(t *testing.T, object []byte) []string {
	t.Helper()
	gz, err := gzip.NewReader(bytes.NewReader(object))
	require.NoError(t, err)

	var ids []string
	scanner := bufio.NewScanner(gz)
	for scanner.Scan() {
		ids = append(ids, gjson.GetBytes(scanner.Bytes(), "id").String())
	}
	require.NoError(t, scanner.Err())
	return ids
}

func TestKey(t *testing.T) {
	date := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "v1/complaints/complaints_2024-03-01.jsonl.gz", Key("v1/", date))

	// 00:30 in UTC+2 is still the previous UTC day
	local := time.Date(2024, 3, 2, 0, 30, 0, 0, time.FixedZone("UTC+2", 2*60*60))
	assert.Equal(t, "complaints/complaints_2024-03-01.jsonl.gz", Key("", local))
}

func TestDayWindow(t *testing.T) {
	since, until := DayWindow(time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), since)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), until)
}

func TestArchiveWritesEveryPage(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := sentComplaints(5, day.Add(time.Hour))
	rows = append(rows, sentComplaints(1, day.AddDate(0, 0, 1))[0]) // next day, excluded
	rows[5].ComplaintID = "tomorrow"
	source := &pagedComplaints{rows: rows}
	store := newMemoryStore()

	a := &ComplaintArchive{Store: store, Bucket: "archive", Prefix: "v1/", Source: source, BatchSize: 2}
	result, err := a.Archive(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, "v1/complaints/complaints_2024-03-01.jsonl.gz", result.Key)
	assert.Equal(t, 5, result.Count)
	assert.Equal(t, []string{"c1", "c2", "c3", "c4", "c5"}, decodeIDs(t, store.objects[result.Key]))

	require.Len(t, source.cursors, 3)
	assert.True(t, source.cursors[0].IsZero())
	assert.Equal(t, "c2", source.cursors[1].ID)
	assert.Equal(t, "c4", source.cursors[2].ID)
}

func TestArchiveEmptyDay(t *testing.T) {
	store := newMemoryStore()
	a := &ComplaintArchive{Store: store, Bucket: "archive", Source: &pagedComplaints{}}

	result, err := a.Archive(context.Background(), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, decodeIDs(t, store.objects[result.Key]))
}

func TestArchiveRefusesOverwrite(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	store := newMemoryStore()
	store.objects[Key("", day)] = []byte("existing")
	source := &pagedComplaints{rows: sentComplaints(1, day)}

	a := &ComplaintArchive{Store: store, Bucket: "archive", Source: source}
	_, err := a.Archive(context.Background(), day)

	assert.ErrorIs(t, err, ErrFileAlreadyExists)
	assert.Empty(t, source.cursors)
	assert.Zero(t, store.puts)
	assert.Equal(t, []byte("existing"), store.objects[Key("", day)])
}

func TestArchiveSkipsUploadOnReadFailure(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	store := newMemoryStore()
	source := &pagedComplaints{rows: sentComplaints(5, day), failAt: 2}

	a := &ComplaintArchive{Store: store, Bucket: "archive", Source: source, BatchSize: 2}
	_, err := a.Archive(context.Background(), day)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Zero(t, store.puts)
}
