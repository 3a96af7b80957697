package app

import "github.com/olivoil/gesturenav/internal/backend"

// ClientReadyMsg carries the started transport client to the model.
type ClientReadyMsg struct {
	Client *backend.Client
}

// ResetResultMsg is sent when an orientation reset request was queued.
type ResetResultMsg struct {
	Err error
}

// animateMsg advances running scroll animations by one frame.
type animateMsg struct{}
