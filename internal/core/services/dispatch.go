package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/shoplist/internal/core/domain"
	"github.com/custodia-labs/shoplist/internal/core/ports/driven"
	"github.com/custodia-labs/shoplist/internal/core/ports/driving"
	"github.com/custodia-labs/shoplist/internal/logger"
)

// Ensure DispatchService implements the interface.
var _ driving.DispatchService = (*DispatchService)(nil)

// ActiveSession exposes the installed grant to the dispatcher.
// SessionService satisfies it.
type ActiveSession interface {
	// Active returns the grant if the session is usable, else nil.
	Active() *driven.Grant
}

// DefaultSendLimit allows a short burst of sends, then one every few seconds.
var DefaultSendLimit = SendLimit{Every: 3 * time.Second, Burst: 3}

// SendLimit configures the local send limiter.
type SendLimit struct {
	Every time.Duration
	Burst int
}

// DispatchService emails the rendered list to the signed-in account.
type DispatchService struct {
	sessions ActiveSession
	renderer driven.Renderer
	mail     domain.MailSettings
	limiter  *rate.Limiter
	now      func() time.Time
}

// NewDispatchService creates a dispatcher with the default send limit.
func NewDispatchService(sessions ActiveSession, renderer driven.Renderer, mail domain.MailSettings) *DispatchService {
	return NewDispatchServiceWithLimit(sessions, renderer, mail, DefaultSendLimit)
}

// NewDispatchServiceWithLimit creates a dispatcher with a custom send limit.
// A zero Every disables limiting.
func NewDispatchServiceWithLimit(
	sessions ActiveSession, renderer driven.Renderer, mail domain.MailSettings, limit SendLimit,
) *DispatchService {
	defaults := domain.DefaultAppSettings().Mail
	if mail.Subject == "" {
		mail.Subject = defaults.Subject
	}
	if mail.AttachmentName == "" {
		mail.AttachmentName = defaults.AttachmentName
	}

	var limiter *rate.Limiter
	if limit.Every > 0 {
		burst := limit.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Every(limit.Every), burst)
	}

	return &DispatchService{
		sessions: sessions,
		renderer: renderer,
		mail:     mail,
		limiter:  limiter,
		now:      time.Now,
	}
}

// Send renders items and mails them, with a text summary, to the account's
// own address. Nothing is retried.
func (s *DispatchService) Send(ctx context.Context, items []string, theme domain.Theme) error {
	logger.Section("Send")

	var grant *driven.Grant
	if s.sessions != nil {
		grant = s.sessions.Active()
	}
	if !grant.Complete() {
		logger.Debug("Send rejected: no active session")
		return domain.ErrNotSignedIn
	}

	if s.limiter != nil && !s.limiter.Allow() {
		logger.Debug("Send rejected: rate limited")
		return domain.ErrRateLimited
	}

	if s.renderer == nil {
		return fmt.Errorf("%w: no renderer configured", domain.ErrRenderFailed)
	}
	image, err := s.renderer.Render(items, theme)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrRenderFailed, err)
	}
	logger.Debug("Rendered %d items into %d bytes", len(items), len(image))

	raw, err := composeMessage(outgoingMessage{
		From:           grant.Email,
		To:             grant.Email,
		Subject:        s.mail.Subject,
		Body:           domain.Summary(items),
		AttachmentName: s.mail.AttachmentName,
		Attachment:     image,
		Date:           s.now(),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSendFailed, err)
	}

	if err := grant.Mailer.Send(ctx, raw); err != nil {
		logger.Warn("Send failed: %v", err)
		return fmt.Errorf("%w: %w", domain.ErrSendFailed, err)
	}

	logger.Info("Sent %d items to %s", len(items), grant.Email)
	return nil
}
