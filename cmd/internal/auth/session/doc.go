// Package session tracks the set of bearer tokens that are currently
// allowed to authenticate requests.
//
// Tokens themselves are opaque to this package. Only a one-way digest of
// each issued token is persisted, so a database leak does not hand an
// attacker usable credentials. Logout removes the digest, which makes the
// token unusable even though its signature would still verify.
package session
