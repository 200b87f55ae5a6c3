// Package api exposes the account and session endpoints and the request
// guard that the rest of the HTTP surface sits behind.
//
// Security contract:
//   - Credential and token failures answer 401 with an empty body. The
//     response never reveals whether the email, the password, or the token
//     was the problem.
//   - Public identity JSON carries id, email and timestamps only. Password
//     material never serializes.
//   - Request bodies are decoded through allow-list structs, so unknown or
//     privileged fields in the payload are dropped, not applied.
package api
