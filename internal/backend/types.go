package backend

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/olivoil/gesturenav/internal/event"
)

// Sender can receive messages (matches *tea.Program).
type Sender interface {
	Send(msg tea.Msg)
}

// Transport sources.
const (
	SourceNetwork = "zmq"
	SourceSpool   = "spool"
)

// EventMsg carries a decoded publisher event to the UI.
type EventMsg struct {
	Source   string
	Event    event.Event
	Received time.Time
}

// LogMsg carries a publisher log line to the UI.
type LogMsg struct {
	Source string
	Log    event.Log
}

// DroppedMsg reports a payload that could not be decoded.
type DroppedMsg struct {
	Source string
	Err    error
}

// TransportErrMsg reports a transport that stopped.
type TransportErrMsg struct {
	Err error
}

// Config is the full application configuration.
type Config struct {
	Publisher PublisherConfig
	Transport TransportConfig
	Navigator NavigatorConfig
	// Gestures maps gesture names to navigation commands on top of the
	// default bindings.
	Gestures map[string]string
	Log      LogConfig
}

// PublisherConfig locates the gesture publisher.
type PublisherConfig struct {
	Host        string
	EventPort   int
	LogPort     int
	RequestPort int
	// EventTypes restricts delivered events. Empty means all.
	EventTypes []string
}

func (p PublisherConfig) endpoint(port int) string {
	return fmt.Sprintf("tcp://%s:%d", p.Host, port)
}

// EventEndpoint is the address events are published on.
func (p PublisherConfig) EventEndpoint() string { return p.endpoint(p.EventPort) }

// LogEndpoint is the address log lines are published on.
func (p PublisherConfig) LogEndpoint() string { return p.endpoint(p.LogPort) }

// RequestEndpoint is the address the publisher reads requests from.
func (p PublisherConfig) RequestEndpoint() string { return p.endpoint(p.RequestPort) }

// TransportConfig selects the delivery paths.
type TransportConfig struct {
	Network bool
	// SpoolDir enables the local broadcast spool when set.
	SpoolDir string
}

// NavigatorConfig holds focus navigation settings.
type NavigatorConfig struct {
	Strategy string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
	File  string
}
