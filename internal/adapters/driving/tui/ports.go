// Package tui provides the interactive shopping-list editor.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/shoplist/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session owns sign-in, restore and log-out.
	Session driving.SessionService

	// Dispatch renders and mails the list.
	Dispatch driving.DispatchService

	// Settings provides the saved theme and persists toggles.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	session driving.SessionService,
	dispatch driving.DispatchService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Session:  session,
		Dispatch: dispatch,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
// Settings is optional; without it the shell starts light and forgets toggles.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Dispatch == nil {
		return ErrMissingDispatchService
	}
	return nil
}
