// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 PDA Labs
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rent - rent-exempt balance calculation
//
// A storage cell persists indefinitely only while it holds at least
// the rent-exempt minimum for its byte size. The host runtime
// publishes these parameters; they are fixed here as the defaults.
package rent

// host runtime rent parameters
const (
	accountStorageOverhead  = 128 // intrinsic per-account metadata bytes
	lamportsPerByteYear     = 3480
	exemptionThresholdYears = 2
)

// MinimumBalance - the smallest balance that keeps a cell of the
// given data size alive forever
func MinimumBalance(dataSize uint64) uint64 {
	return (accountStorageOverhead + dataSize) * lamportsPerByteYear * exemptionThresholdYears
}
