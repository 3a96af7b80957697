package backend

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Client owns the transports that connect the app to a gesture publisher:
// the ZeroMQ subscriber, the local spool and the request socket.
type Client struct {
	cfg  Config
	disp *Dispatcher
	log  *slog.Logger

	mu        sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
	requester *Requester
}

// NewClient creates a client that delivers messages to sender.
func NewClient(cfg Config, sender Sender, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:  cfg,
		disp: NewDispatcher(sender, cfg.Publisher.EventTypes, logger),
		log:  logger,
	}
}

// Config returns the configuration the client was created with.
func (c *Client) Config() Config { return c.cfg }

// Start launches the enabled transports in the background. A transport
// failure is reported to the sender as TransportErrMsg.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		return fmt.Errorf("client already started")
	}

	var spool *Spool
	if dir := c.cfg.Transport.SpoolDir; dir != "" {
		s, err := NewSpool(dir, c.disp, c.log)
		if err != nil {
			return err
		}
		spool = s
	}

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	if c.cfg.Transport.Network {
		sub := NewSubscriber(c.cfg.Publisher, c.disp, c.log)
		g.Go(func() error { return sub.Run(gctx) })
		c.requester = NewRequester(gctx, c.cfg.Publisher.RequestEndpoint(), c.log)
	}
	if spool != nil {
		g.Go(func() error { return spool.Run(gctx) })
	}

	c.cancel = cancel
	c.done = make(chan struct{})
	go func() {
		defer close(c.done)
		if err := g.Wait(); err != nil {
			c.log.Error("transport stopped", "err", err)
			c.disp.sender.Send(TransportErrMsg{Err: err})
		}
	}()
	c.log.Info("transports started",
		"network", c.cfg.Transport.Network,
		"spool", c.cfg.Transport.SpoolDir,
	)
	return nil
}

// RequestOrientationReset asks the publisher to reset the sensor
// orientation. It fails when the network transport is disabled.
func (c *Client) RequestOrientationReset() error {
	c.mu.Lock()
	r := c.requester
	c.mu.Unlock()
	if r == nil {
		return fmt.Errorf("orientation reset: network transport not running")
	}
	return r.RequestOrientationReset()
}

// Close stops every transport and waits for them to exit.
func (c *Client) Close() {
	c.mu.Lock()
	cancel, done, r := c.cancel, c.done, c.requester
	c.cancel, c.requester = nil, nil
	c.mu.Unlock()

	if r != nil {
		r.Close()
	}
	if cancel != nil {
		cancel()
		<-done
	}
}
