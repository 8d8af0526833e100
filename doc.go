// Package classroom implements a small REST backend for a learning
// platform: account registration and login with JWT bearer tokens,
// role-gated access, and CRUD for articles, lessons, and a managed
// file directory.
//
// The package is organized around a few collaborators:
//
//   - TokenService mints and validates signed identity assertions.
//   - Auther owns the account lifecycle: register, authenticate,
//     profile updates, and soft deactivation.
//   - Authorize gates a resolved principal against an explicit role set.
//   - RepositoryManager exposes the bun-backed repositories for users,
//     articles, and lessons.
//
// HTTP controllers live alongside the core (http_*.go) and map error
// categories to transport status codes at the boundary; the core itself
// is transport agnostic.
package classroom
