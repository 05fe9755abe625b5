package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldops/fieldops-push-server/domain"
	"github.com/fieldops/fieldops-push-server/redisprovider/testredisprovider"
)

var ctx = context.Background()

func TestQueue_Consume(t *testing.T) {
	fx := newFixture(t)
	created := time.Now().UTC().Round(time.Second)
	var toSend = []Message{
		{Id: "1", Kind: domain.KindTask, ItemId: "t1", Recipients: []string{"a", "b"}, Created: created},
		{Id: "2", Kind: domain.KindStock, ActorId: "admin", Created: created},
	}
	require.NoError(t, fx.Add(ctx, toSend[0]))
	var msgs = make(chan Message)
	require.NoError(t, fx.Consume(ctx, func(msg Message) error {
		msgs <- msg
		return nil
	}))

	require.NoError(t, fx.Add(ctx, toSend[1]))
	var result = make([]Message, 2)
	for i := range result {
		select {
		case msg := <-msgs:
			result[i] = msg
		case <-time.After(time.Second):
			t.Fatal("timeout")
		}
	}
	assert.Equal(t, toSend, result)
}

func TestQueue_Reject(t *testing.T) {
	fx := newFixture(t)
	var handled = make(chan string, 2)
	require.NoError(t, fx.Consume(ctx, func(msg Message) error {
		handled <- msg.Id
		if msg.Id == "bad" {
			return errors.New("store unavailable")
		}
		return nil
	}))
	require.NoError(t, fx.Add(ctx, Message{Id: "bad", Kind: domain.KindNote}))
	require.NoError(t, fx.Add(ctx, Message{Id: "good", Kind: domain.KindNote}))

	var ids []string
	for range 2 {
		select {
		case id := <-handled:
			ids = append(ids, id)
		case <-time.After(time.Second):
			t.Fatal("timeout")
		}
	}
	assert.ElementsMatch(t, []string{"bad", "good"}, ids)
}

type fixture struct {
	Queue
	a *app.App
}

func newFixture(t *testing.T) *fixture {
	fx := &fixture{
		Queue: New(),
		a:     new(app.App),
	}
	fx.a.Register(testredisprovider.NewTestRedisProvider()).Register(fx.Queue)
	require.NoError(t, fx.a.Start(ctx))
	t.Cleanup(func() {
		require.NoError(t, fx.a.Close(ctx))
	})
	return fx
}
