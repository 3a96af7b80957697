package backend

import (
	"log/slog"
	"time"

	"github.com/olivoil/gesturenav/internal/event"
)

// Dispatcher decodes raw payloads from any transport and forwards typed
// messages to the Sender.
type Dispatcher struct {
	sender Sender
	types  map[event.Type]bool
	log    *slog.Logger
	now    func() time.Time
}

// NewDispatcher creates a dispatcher. An empty types list accepts all events.
func NewDispatcher(sender Sender, types []string, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{sender: sender, log: logger, now: time.Now}
	for _, name := range types {
		t, ok := event.LookupType(name)
		if !ok {
			logger.Warn("ignoring unknown event type filter", "type", name)
			continue
		}
		if d.types == nil {
			d.types = make(map[event.Type]bool)
		}
		d.types[t] = true
	}
	return d
}

// Event decodes one event payload. The topic is only used for logging.
func (d *Dispatcher) Event(source, topic string, payload []byte) {
	e, err := event.Decode(payload)
	if err != nil {
		d.log.Warn("could not decode event", "source", source, "topic", topic, "err", err)
		d.sender.Send(DroppedMsg{Source: source, Err: err})
		return
	}
	if d.types != nil && !d.types[e.Type()] {
		return
	}
	d.sender.Send(EventMsg{Source: source, Event: e, Received: d.now()})
}

// Log decodes one publisher log payload.
func (d *Dispatcher) Log(source, level string, payload []byte) {
	l, err := event.DecodeLog(payload)
	if err != nil {
		d.log.Warn("could not decode publisher log", "source", source, "level", level, "err", err)
		d.sender.Send(DroppedMsg{Source: source, Err: err})
		return
	}
	d.sender.Send(LogMsg{Source: source, Log: l})
}

// Line routes a spool line to Event or Log.
func (d *Dispatcher) Line(source string, line SpoolLine) {
	if line.IsEvent() {
		d.Event(source, line.Type, []byte(line.JSON))
		return
	}
	d.Log(source, line.Level, []byte(line.JSON))
}
