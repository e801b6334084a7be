// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 PDA Labs
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package allocator - first-time storage cell allocation
//
// Allocation goes through the host runtime's system account-creation
// service: reserve the requested space, assign ownership to the
// program and fund the cell to the rent-exempt minimum out of the
// payer's balance. The call is authorised by the derivation seeds of
// the target address, since a program-derived address has no signing
// key. The service is atomic: it either creates the fully funded cell
// or leaves no trace.
package allocator

import (
	"github.com/pdalabs/pdamap/address"
	"github.com/pdalabs/pdamap/cell"
	"github.com/pdalabs/pdamap/fault"
	"github.com/pdalabs/pdamap/rent"
)

// SystemProgram - the host runtime's account-creation service
//
// expected failures: a cell that already exists is rejected, as is a
// payer whose balance does not cover the requested lamports
type SystemProgram interface {
	CreateAccount(payer *cell.Cell, target *cell.Cell, lamports uint64, space uint64, owner address.Address, signerSeeds [][]byte) error
}

// Allocate - create the target cell with exactly space bytes, owned
// by owner and funded to the rent-exempt minimum for that size
func Allocate(sys SystemProgram, target *cell.Cell, payer *cell.Cell, space int, owner address.Address, signerSeeds [][]byte) error {
	if nil == sys || nil == target || nil == payer {
		return fault.ErrAllocationFailure
	}
	lamports := rent.MinimumBalance(uint64(space))
	return sys.CreateAccount(payer, target, lamports, uint64(space), owner, signerSeeds)
}
