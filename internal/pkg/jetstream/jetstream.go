// Package jetstream wraps the publish side of NATS JetStream the way every
// producer in this service uses it: asynchronous publish with a dedup id,
// awaited for a bounded time.
package jetstream

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
)

var ErrPublishTimeout = errors.New("timeout waiting for NATS acknowledgement")

// Publish publishes data on subject with msgID as the JetStream deduplication
// id, and waits at most timeout for the stream to acknowledge it.
func Publish(ctx context.Context, js nats.JetStreamContext, subject string, data []byte, msgID string, timeout time.Duration) error {
	pub, err := js.PublishAsync(subject, data, nats.MsgId(msgID))
	if err != nil {
		return errors.Wrap(err, "failed to publish")
	}

	select {
	case err := <-pub.Err():
		return errors.Wrap(err, "publish rejected")
	case <-pub.Ok():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(timeout):
		return ErrPublishTimeout
	}
}

// Latency returns the time the message spent in the stream before delivery.
func Latency(msg *nats.Msg) (time.Duration, bool) {
	meta, err := msg.Metadata()
	if err != nil {
		return 0, false
	}
	return time.Since(meta.Timestamp), true
}
