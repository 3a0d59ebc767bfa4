// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto holds the server-side credential primitives.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns plaintext passwords into salted one-way digests and
// checks candidates against them.
type PasswordHasher interface {
	// Hash returns a salted digest of plain. Two calls with the same input
	// return different digests that both verify.
	Hash(plain string) (string, error)

	// Verify reports whether plain matches hash. A malformed hash never
	// matches.
	Verify(plain, hash string) bool
}
