package backend

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/go-zeromq/zmq4"

	"github.com/olivoil/gesturenav/internal/event"
)

// ErrRequesterClosed is returned by requests after Close.
var ErrRequesterClosed = errors.New("requester closed")

// Requester sends requests to the publisher. The socket is owned by a
// single goroutine; callers never block on the network.
type Requester struct {
	endpoint string
	out      chan []byte
	done     chan struct{}
	once     sync.Once
	log      *slog.Logger
}

// NewRequester connects a PUB socket to endpoint in the background.
func NewRequester(ctx context.Context, endpoint string, logger *slog.Logger) *Requester {
	r := &Requester{
		endpoint: endpoint,
		out:      make(chan []byte, 16),
		done:     make(chan struct{}),
		log:      logger,
	}
	go r.loop(ctx)
	return r
}

// RequestOrientationReset asks the publisher to reset the sensor orientation.
func (r *Requester) RequestOrientationReset() error {
	return r.send(event.EncodeOrientationReset())
}

func (r *Requester) send(b []byte) error {
	select {
	case <-r.done:
		return ErrRequesterClosed
	default:
	}
	select {
	case r.out <- b:
		return nil
	case <-r.done:
		return ErrRequesterClosed
	default:
		r.log.Warn("request queue full, dropping", "endpoint", r.endpoint)
		return nil
	}
}

// Close stops the socket goroutine. Pending requests are dropped.
func (r *Requester) Close() {
	r.once.Do(func() { close(r.done) })
}

func (r *Requester) loop(ctx context.Context) {
	sock := zmq4.NewPub(ctx, zmq4.WithDialerRetry(redialInterval))
	defer sock.Close()

	if err := sock.Dial(r.endpoint); err != nil {
		r.log.Error("requester dial failed", "endpoint", r.endpoint, "err", err)
		r.Close()
		return
	}
	for {
		select {
		case <-ctx.Done():
			r.Close()
			return
		case <-r.done:
			return
		case b := <-r.out:
			if err := sock.Send(zmq4.NewMsg(b)); err != nil {
				r.log.Warn("request send failed", "endpoint", r.endpoint, "err", err)
				continue
			}
			r.log.Debug("request sent", "endpoint", r.endpoint, "payload", string(b))
		}
	}
}
