// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - CredentialStore: Persists the single OAuth credential record
//   - Authorizer: Interactive sign-in and silent restore against the OAuth provider
//   - Mailer: Submits a raw MIME message as the signed-in user
//   - Renderer: Turns list items into a PNG snapshot
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
