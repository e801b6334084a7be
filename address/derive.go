// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 PDA Labs
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"crypto/sha256"

	"filippo.io/edwards25519"

	"github.com/pdalabs/pdamap/fault"
)

// limits imposed by the host runtime on derivation seeds
const (
	MaximumSeedLength = 32
	MaximumSeedCount  = 16
)

// domain separator appended by the host runtime's deterministic
// address function
const derivedAddressMarker = "ProgramDerivedAddress"

// Derive - compute the deterministic non-signing address for a seed
// list under a program identity
//
// the seeds are hashed in order with no delimiter, each has a fixed or
// caller-known length, then the program identity and the marker; the
// result must not decode as a curve point, otherwise it would be a
// usable signing key and fault.ErrInvalidBump is returned
func Derive(programID Address, seeds ...[]byte) (Address, error) {
	if MaximumSeedCount < len(seeds) {
		return Address{}, fault.ErrTooManySeeds
	}

	h := sha256.New()
	for _, seed := range seeds {
		if MaximumSeedLength < len(seed) {
			return Address{}, fault.ErrSeedTooLong
		}
		h.Write(seed)
	}
	h.Write(programID[:])
	h.Write([]byte(derivedAddressMarker))

	var derived Address
	copy(derived[:], h.Sum(nil))

	if IsOnCurve(derived) {
		return Address{}, fault.ErrInvalidBump
	}
	return derived, nil
}

// IsOnCurve - true when the bytes decode as a valid edwards25519
// point, i.e. the address could correspond to a signing key
func IsOnCurve(address Address) bool {
	_, err := new(edwards25519.Point).SetBytes(address[:])
	return nil == err
}
