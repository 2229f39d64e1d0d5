// Package secrets provides the cryptographic primitives behind hush spaces.
//
// # Keys
//
// Every space has one 256-bit symmetric key. A KeyRing generates keys from an
// injected random source (crypto/rand by default) and returns them together
// with their secret string. The secret string is the unpadded URL-safe base64
// encoding of the raw key bytes, always 43 characters long, with no version
// prefix. ImportSecret reverses it and rejects anything that does not decode
// to exactly 32 bytes with ErrMalformedSecret.
//
// Key.Fingerprint derives a short blake3 tag that identifies a key in logs and
// output without revealing it.
//
// # Posts
//
// Cipher seals post bodies with NaCl secretbox (XSalsa20-Poly1305). A random
// 24-byte nonce is drawn for every call and returned next to the ciphertext,
// so sealing the same text twice never produces the same output.
//
// Decrypt distinguishes a failed authentication tag (ErrAuthenticationFailed,
// the expected result for a post sealed under another key) from structurally
// impossible inputs (ErrMalformedCiphertext).
//
// Neither type holds mutable state beyond its random source, so both are safe
// for concurrent use.
package secrets
