package dispatchwkr

import (
	"context"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"mediawatch.dev/backend/internal/app/appconfig"
	"mediawatch.dev/backend/internal/constant"
	"mediawatch.dev/backend/internal/model/types"
	"mediawatch.dev/backend/internal/pkg/jetstream"
	"mediawatch.dev/backend/internal/pkg/observability"
	"mediawatch.dev/backend/internal/service"
)

const (
	maxDeliver    = 5
	maxAckPending = 64
)

type WorkerDeps struct {
	fx.In

	ComplaintService *service.Complaint
	MailService      *service.Mail
	JetStream        nats.JetStreamContext
}

type Worker struct {
	WorkerDeps
}

func Start(conf *appconfig.Config, deps WorkerDeps, lc fx.Lifecycle) {
	if !conf.WorkerEnabled {
		log.Info().Str("evt.name", "dispatchwkr.disabled").Msg("dispatch workers disabled by configuration")
		return
	}
	if !deps.MailService.Enabled() {
		log.Warn().Str("evt.name", "dispatchwkr.disabled").Msg("no SMTP relay configured: complaints stay queued until one is")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{WorkerDeps: deps}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for i := 0; i < conf.DispatchWorkerCount; i++ {
				sub, ch, err := w.subscribe()
				if err != nil {
					cancel()
					return err
				}
				go func(id int) {
					defer func() {
						if err := sub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
							log.Warn().Err(err).Int("worker", id).Msg("failed to unsubscribe dispatch consumer")
						}
					}()
					if err := w.Consume(ctx, ch); err != nil && !errors.Is(err, context.Canceled) {
						log.Error().Err(err).Int("worker", id).Msg("dispatch worker stopped")
					}
				}(i)
			}
			log.Info().
				Str("evt.name", "dispatchwkr.started").
				Int("count", conf.DispatchWorkerCount).
				Msg("dispatch workers started")
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func (w *Worker) subscribe() (*nats.Subscription, chan *nats.Msg, error) {
	msgChan := make(chan *nats.Msg, 16)

	sub, err := w.JetStream.ChanQueueSubscribe(constant.DispatchSubjects, constant.DispatchQueueGroup, msgChan,
		nats.AckWait(constant.DispatchAckWait),
		nats.MaxAckPending(maxAckPending),
		nats.MaxDeliver(maxDeliver),
		nats.ManualAck(),
	)
	if err != nil {
		log.Err(err).Msg("failed to subscribe to " + constant.DispatchSubjects)
		return nil, nil, err
	}
	return sub, msgChan, nil
}

// Consume handles messages from ch until ctx is cancelled.
func (w *Worker) Consume(ctx context.Context, ch chan *nats.Msg) error {
	for {
		select {
		case msg := <-ch:
			w.handle(ctx, msg)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *Worker) handle(ctx context.Context, msg *nats.Msg) {
	start := time.Now()
	defer func() {
		observability.DispatchConsumeDuration.WithLabelValues().Observe(time.Since(start).Seconds())
	}()
	if latency, ok := jetstream.Latency(msg); ok {
		observability.DispatchConsumeMessagingLatency.WithLabelValues().Observe(latency.Seconds())
	}

	taskCtx, cancelTask := context.WithTimeout(ctx, constant.DispatchAckWait*4)
	defer cancelTask()

	// sending mail may outlive the ack wait
	heartbeat := time.NewTicker(constant.DispatchInProgressEvery)
	defer heartbeat.Stop()
	go func() {
		for {
			select {
			case <-heartbeat.C:
				if err := msg.InProgress(); err != nil {
					log.Error().Err(err).Msg("failed to set msg InProgress")
				}
			case <-taskCtx.Done():
				return
			}
		}
	}()

	task := &types.DispatchTask{}
	if err := json.Unmarshal(msg.Data, task); err != nil {
		log.Error().
			Err(err).
			Str("evt.name", "complaint.dispatch.malformed").
			Str("data", string(msg.Data)).
			Msg("dropping malformed dispatch task")
		observability.DispatchOutcome.WithLabelValues(string(service.DispatchFailed)).Inc()
		ack(msg)
		return
	}

	outcome, err := w.ComplaintService.Dispatch(taskCtx, task)
	observability.DispatchOutcome.WithLabelValues(string(outcome)).Inc()
	if err != nil {
		permanent := errors.Is(err, service.ErrDispatchPermanent)
		log.Error().
			Err(err).
			Str("evt.name", "complaint.dispatch.failed").
			Str("taskId", task.TaskID).
			Bool("permanent", permanent).
			Str("dispatchTask", spew.Sdump(task)).
			Msg("failed to dispatch complaint")
		if permanent {
			ack(msg)
		} else if err := msg.Nak(); err != nil {
			log.Error().Err(err).Msg("failed to nak")
		}
		return
	}

	log.Info().
		Str("taskId", task.TaskID).
		Str("outcome", string(outcome)).
		Msg("dispatch task processed successfully")
	ack(msg)
}

func ack(msg *nats.Msg) {
	if err := msg.Ack(); err != nil {
		log.Error().Err(err).Msg("failed to ack")
	}
}
