package events

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nats-io/nats.go"

	"donorly/internal/infra"
)

func newTestSubscriber(handler Handler) *Subscriber {
	return &Subscriber{
		subject:   SubjectDonationCreated,
		handler:   handler,
		timeout:   time.Second,
		semaphore: make(chan struct{}, 2),
		logger:    infra.NopLogger(),
	}
}

func TestSubscriberStopWaitsForInFlight(t *testing.T) {
	release := make(chan struct{})
	var done atomic.Bool
	s := newTestSubscriber(func(ctx context.Context, msg *nats.Msg) error {
		<-release
		done.Store(true)
		return nil
	})

	s.dispatch(&nats.Msg{Subject: SubjectDonationCreated})

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned before the handler finished")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
	if !done.Load() {
		t.Fatal("handler did not complete")
	}
}

func TestSubscriberDropsMessagesAfterStop(t *testing.T) {
	var calls atomic.Int32
	s := newTestSubscriber(func(ctx context.Context, msg *nats.Msg) error {
		calls.Add(1)
		return nil
	})
	s.Stop()
	s.dispatch(&nats.Msg{Subject: SubjectDonationCreated})
	s.Stop()

	if calls.Load() != 0 {
		t.Fatalf("handler ran %d times after Stop", calls.Load())
	}
}

func TestSubscriberStopRacesDispatch(t *testing.T) {
	var calls atomic.Int32
	s := newTestSubscriber(func(ctx context.Context, msg *nats.Msg) error {
		calls.Add(1)
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.dispatch(&nats.Msg{Subject: SubjectDonationCreated})
		}()
	}
	s.Stop()
	after := calls.Load()
	wg.Wait()

	if got := calls.Load(); got != after {
		t.Fatalf("handlers ran after Stop returned: %d then %d", after, got)
	}
}

func TestSubscriberRecoversHandlerPanic(t *testing.T) {
	s := newTestSubscriber(func(ctx context.Context, msg *nats.Msg) error {
		panic("boom")
	})
	s.dispatch(&nats.Msg{Subject: SubjectDonationCreated})
	s.Stop()

	select {
	case s.semaphore <- struct{}{}:
		<-s.semaphore
	default:
		t.Fatal("semaphore slot leaked after panic")
	}
}
