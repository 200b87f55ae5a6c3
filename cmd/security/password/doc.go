// Package password implements tick's password hashing (bcrypt).
//
// It is the single source of truth for:
//   - bcrypt cost (default + env override)
//   - password length policy (default + env override)
//
// bcrypt's encoded form embeds the per-password random salt; SaltFromEncoded
// exposes the salt section for storage alongside the full encoding.
package password
