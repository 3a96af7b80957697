package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/go-zeromq/zmq4"
	"golang.org/x/sync/errgroup"

	"github.com/olivoil/gesturenav/internal/event"
)

// redialInterval is how long a socket waits before redialing a publisher
// that is not up yet.
const redialInterval = time.Second

// Subscriber receives events and logs from a publisher over ZeroMQ.
type Subscriber struct {
	cfg  PublisherConfig
	disp *Dispatcher
	log  *slog.Logger
}

// NewSubscriber creates a subscriber for both publisher streams.
func NewSubscriber(cfg PublisherConfig, disp *Dispatcher, logger *slog.Logger) *Subscriber {
	return &Subscriber{cfg: cfg, disp: disp, log: logger}
}

// Run blocks until ctx is cancelled or a socket fails.
func (s *Subscriber) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.consume(ctx, s.cfg.EventEndpoint(), topics(s.cfg.EventTypes), s.disp.Event)
	})
	g.Go(func() error {
		return s.consume(ctx, s.cfg.LogEndpoint(), []string{""}, s.disp.Log)
	})
	return g.Wait()
}

// topics returns the subscription prefixes for the configured event types,
// including legacy wire names. No known type means everything.
func topics(types []string) []string {
	var out []string
	for _, name := range types {
		t, ok := event.LookupType(name)
		if !ok {
			continue
		}
		for _, wire := range event.WireNames(t) {
			if !slices.Contains(out, wire) {
				out = append(out, wire)
			}
		}
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}

func (s *Subscriber) consume(ctx context.Context, endpoint string, subs []string, handle func(source, topic string, payload []byte)) error {
	sock := zmq4.NewSub(ctx, zmq4.WithDialerRetry(redialInterval))
	var once sync.Once
	closeSock := func() { once.Do(func() { sock.Close() }) }
	defer closeSock()
	// Recv does not watch ctx itself.
	stop := context.AfterFunc(ctx, closeSock)
	defer stop()

	for {
		err := sock.Dial(endpoint)
		if err == nil {
			break
		}
		s.log.Debug("publisher not reachable", "endpoint", endpoint, "err", err)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(redialInterval):
		}
	}
	for _, topic := range subs {
		if err := sock.SetOption(zmq4.OptionSubscribe, topic); err != nil {
			return fmt.Errorf("subscribe %s %q: %w", endpoint, topic, err)
		}
	}
	s.log.Info("subscribed", "endpoint", endpoint, "topics", subs)

	for {
		msg, err := sock.Recv()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("recv %s: %w", endpoint, err)
		}
		topic, payload, ok := splitFrames(msg.Frames)
		if !ok {
			s.log.Warn("unexpected frame count", "endpoint", endpoint, "frames", len(msg.Frames))
			continue
		}
		handle(SourceNetwork, topic, payload)
	}
}
