//go:generate mockgen -destination mock_queue/mock_queue.go github.com/fieldops/fieldops-push-server/queue Queue

package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fieldops/fieldops-push-server/domain"
	"github.com/fieldops/fieldops-push-server/redisprovider"
)

const CName = "fieldops.queue"

const (
	connTag       = "fieldops-push"
	queueName     = "share-events"
	prefetchLimit = 10
	pollDuration  = 100 * time.Millisecond
)

var log = logger.NewNamed(CName)

func New() Queue {
	return new(queue)
}

// Message is a share event waiting for dispatch.
type Message struct {
	Id         string      `json:"id"`
	Kind       domain.Kind `json:"kind"`
	ItemId     string      `json:"itemId,omitempty"`
	Recipients []string    `json:"recipients,omitempty"`
	ActorId    string      `json:"actorId,omitempty"`
	Created    time.Time   `json:"created"`
}

type Queue interface {
	Add(ctx context.Context, msg Message) error
	// Consume registers one more consumer. A handle error rejects the delivery.
	Consume(ctx context.Context, handle func(msg Message) error) error
	app.ComponentRunnable
}

type queue struct {
	client       *redis.Client
	rmqConn      rmq.Connection
	queue        rmq.Queue
	errCh        chan error
	runCtx       context.Context
	runCtxCancel context.CancelFunc
}

func (q *queue) Init(a *app.App) (err error) {
	q.client = a.MustComponent(redisprovider.CName).(redisprovider.RedisProvider).Redis()
	q.runCtx, q.runCtxCancel = context.WithCancel(context.Background())
	return
}

func (q *queue) Name() (name string) {
	return CName
}

func (q *queue) Run(ctx context.Context) (err error) {
	q.errCh = make(chan error, 10)
	if q.rmqConn, err = rmq.OpenConnectionWithRedisClient(connTag, q.client, q.errCh); err != nil {
		return err
	}
	go q.handleRmqErrs()
	// return unacked deliveries of dead connections to the ready list
	if returned, cErr := rmq.NewCleaner(q.rmqConn).Clean(); cErr != nil {
		log.Warn("rmq clean error", zap.Error(cErr))
	} else if returned > 0 {
		log.Info("returned unacked deliveries", zap.Int64("count", returned))
	}
	if q.queue, err = q.rmqConn.OpenQueue(queueName); err != nil {
		return err
	}
	return q.queue.StartConsuming(prefetchLimit, pollDuration)
}

func (q *queue) Add(ctx context.Context, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return q.queue.Publish(string(data))
}

func (q *queue) Consume(ctx context.Context, handle func(msg Message) error) error {
	cons := func(delivery rmq.Delivery) {
		select {
		case <-q.runCtx.Done():
			_ = delivery.Reject()
			return
		case <-ctx.Done():
			_ = delivery.Reject()
			return
		default:
		}
		var msg Message
		if err := json.Unmarshal([]byte(delivery.Payload()), &msg); err != nil {
			log.Warn("can't decode message", zap.Error(err))
			_ = delivery.Reject()
			return
		}
		if err := handle(msg); err != nil {
			log.Warn("message rejected", zap.String("id", msg.Id), zap.String("kind", string(msg.Kind)), zap.Error(err))
			_ = delivery.Reject()
		} else {
			_ = delivery.Ack()
		}
	}
	_, err := q.queue.AddConsumerFunc(connTag, cons)
	return err
}

func (q *queue) handleRmqErrs() {
	for {
		select {
		case <-q.runCtx.Done():
			return
		case err := <-q.errCh:
			log.Warn("rmq error", zap.Error(err))
		}
	}
}

func (q *queue) Close(ctx context.Context) (err error) {
	if q.runCtxCancel != nil {
		q.runCtxCancel()
	}
	if q.queue != nil {
		done := q.queue.StopConsuming()
		<-done
	}
	return nil
}
