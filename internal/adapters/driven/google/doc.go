// Package google implements sign-in and mail delivery against Google APIs.
//
// Authorizer runs the desktop authorization-code flow (loopback redirect,
// PKCE, offline access) and rebuilds sessions from stored credential
// records. Mailer submits raw RFC 5322 messages through the Gmail API.
// Account email is resolved through the OAuth2 v2 userinfo endpoint.
package google
