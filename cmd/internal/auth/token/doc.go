// Package token implements tick's bearer-token codec.
//
// A token is built in two independent layers:
//
//  1. the identity claim {id, type} is serialized and encrypted with AES-GCM
//     under the encryption key (Cipher capability);
//  2. the ciphertext is embedded as a claim of an HS256-signed JWT under the
//     signing key (Signer capability).
//
// Signing prevents tampering/forgery; encryption keeps the embedded account
// id opaque to token holders. Verification always checks the signature before
// any decryption is attempted.
//
// Both keys are injected configuration (TICK_TOKEN_SIGN_KEY,
// TICK_TOKEN_ENC_KEY); the process refuses to start without them.
package token
