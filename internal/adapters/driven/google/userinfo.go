package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	oauth2api "google.golang.org/api/oauth2/v2"
)

// errNoEmail is returned when the userinfo response carries no address.
var errNoEmail = errors.New("userinfo returned no email")

// lookupEmail resolves the authorised account's email address.
func lookupEmail(ctx context.Context, client *http.Client, endpoint string) (string, error) {
	svc, err := oauth2api.NewService(ctx, serviceOptions(client, endpoint)...)
	if err != nil {
		return "", fmt.Errorf("create userinfo service: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("userinfo: %w", WrapError(err))
	}
	if info.Email == "" {
		return "", errNoEmail
	}
	return info.Email, nil
}
