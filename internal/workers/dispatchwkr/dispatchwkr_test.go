package dispatchwkr

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"mediawatch.dev/backend/internal/pkg/observability"
	"mediawatch.dev/backend/internal/service"
)

func TestHandleDropsMalformedTask(t *testing.T) {
	w := &Worker{}
	failed := observability.DispatchOutcome.WithLabelValues(string(service.DispatchFailed))
	before := testutil.ToFloat64(failed)

	assert.NotPanics(t, func() {
		w.handle(context.Background(), &nats.Msg{Subject: "COMPLAINT.DISPATCH", Data: []byte("{not json")})
	})
	assert.Equal(t, before+1, testutil.ToFloat64(failed))
}

func TestConsumeStopsOnCancel(t *testing.T) {
	w := &Worker{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- w.Consume(ctx, make(chan *nats.Msg))
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop after cancellation")
	}
}
