package google

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/custodia-labs/shoplist/internal/core/ports/driven"
	"github.com/custodia-labs/shoplist/internal/logger"
)

// Ensure Mailer implements the interface.
var _ driven.Mailer = (*Mailer)(nil)

// Mailer sends messages as the authorised account.
type Mailer struct {
	svc *gmail.Service
}

// NewMailer creates a Gmail-backed mailer using an authorised client.
// endpoint overrides the API base URL when non-empty.
func NewMailer(ctx context.Context, client *http.Client, endpoint string) (*Mailer, error) {
	svc, err := gmail.NewService(ctx, serviceOptions(client, endpoint)...)
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}
	return &Mailer{svc: svc}, nil
}

// Send submits a complete RFC 5322 message for the authorised user.
func (m *Mailer) Send(ctx context.Context, raw []byte) error {
	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}

	sent, err := m.svc.Users.Messages.Send("me", msg).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("gmail send: %w", WrapError(err))
	}

	logger.Debug("Gmail accepted message %s", sent.Id)
	return nil
}

func serviceOptions(client *http.Client, endpoint string) []option.ClientOption {
	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return opts
}
