package eventbus

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type pingEvent struct{}

func (pingEvent) Name() string { return "ping" }

func TestBus_PublishCallsEverySubscriber(t *testing.T) {
	bus := New(zap.NewNop())
	var calls int32

	for i := 0; i < 3; i++ {
		bus.Subscribe("ping", func(ctx context.Context, event Event) error {
			atomic.AddInt32(&calls, 1)
			return nil
		})
	}
	bus.Subscribe("pong", func(ctx context.Context, event Event) error {
		t.Error("чужое событие не должно доходить")
		return nil
	})

	bus.Publish(context.Background(), pingEvent{})
	bus.Wait()

	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestBus_ListenerErrorDoesNotStopOthers(t *testing.T) {
	bus := New(zap.NewNop())
	var ok int32

	bus.Subscribe("ping", func(ctx context.Context, event Event) error { return errors.New("сбой") })
	bus.Subscribe("ping", func(ctx context.Context, event Event) error {
		atomic.AddInt32(&ok, 1)
		return nil
	})

	bus.Publish(context.Background(), pingEvent{})
	bus.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&ok))
}

func TestBus_ListenerContextOutlivesRequest(t *testing.T) {
	bus := New(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var alive int32
	bus.Subscribe("ping", func(ctx context.Context, event Event) error {
		if ctx.Err() == nil {
			atomic.StoreInt32(&alive, 1)
		}
		return nil
	})

	bus.Publish(ctx, pingEvent{})
	bus.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&alive))
}
