// Package domain defines the core business entities for shoplist.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - List: The ordered, editable rows of the shopping list
//   - CredentialRecord: The stored OAuth credential (the only durable state)
//   - SessionState and Identity: Who is signed in, if anyone
//   - Theme: Light or dark palette shared by the shell and the renderer
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
