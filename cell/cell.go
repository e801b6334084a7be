// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 PDA Labs
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cell - storage cell handles
//
// A cell is the unit of persistent state in the host ledger runtime:
// an addressed, owned byte buffer with a funding balance. Handles are
// supplied by the host for the duration of one invocation; the buffer
// is shared with the host and mutated in place.
package cell

import (
	"github.com/pdalabs/pdamap/address"
	"github.com/pdalabs/pdamap/fault"
)

// a storage cell as presented by the host runtime
type Cell struct {
	Address  address.Address
	Owner    address.Address
	Data     []byte
	Lamports uint64
}

// true once the cell has been allocated to the given program
//
// a cell that was never allocated still belongs to the system
// allocator, so ownership doubles as the existence test
func (c *Cell) IsOwnedBy(programID address.Address) bool {
	return programID == c.Owner
}

// true once any program claimed the cell; a never-allocated cell is
// system owned and holds no data
func (c *Cell) IsAllocated() bool {
	return address.System != c.Owner || 0 != len(c.Data)
}

// Validate - gate a cell before reading or overwriting its bytes
//
// checks are ordered so the most structural failure surfaces first:
// address, then data size, then owner; the owner check only applies
// on paths that require the cell to already belong to the program
func Validate(c *Cell, expectedAddress address.Address, expectedOwner address.Address, expectedSize int, requireOwnership bool) error {
	if expectedAddress != c.Address {
		return fault.ErrAddressMismatch
	}
	if expectedSize != len(c.Data) {
		return fault.ErrDataSizeMismatch
	}
	if requireOwnership && expectedOwner != c.Owner {
		return fault.ErrOwnerMismatch
	}
	return nil
}
