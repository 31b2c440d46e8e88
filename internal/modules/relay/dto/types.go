package dto

import "time"

type PublishInput struct {
	Kind    string
	Payload any
}

type RelayStatusOutput struct {
	Running        bool
	PID            int
	SocketPath     string
	PanelReady     bool
	OverlayVisible bool
	Delivered      int
	Pending        int
	StartedAt      time.Time
}
