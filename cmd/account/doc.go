// Package account implements tick's credential store.
//
// It owns password hashing/verification, email normalization and uniqueness,
// and the store interfaces used by the HTTP layer.
//
// This package is intentionally dependency-light and security-first.
package account
