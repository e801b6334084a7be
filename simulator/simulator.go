// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 PDA Labs
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package simulator - in-memory stand-in for the host ledger runtime
//
// Provides just enough of the host environment to run mapping code
// outside a real ledger: a cell store with lamport balances, the
// system account-creation service and the caller-side bump search.
// State is ephemeral and lives for the life of the Ledger value.
package simulator

import (
	"crypto/rand"
	"sync"

	"github.com/pdalabs/pdamap/address"
	"github.com/pdalabs/pdamap/cell"
	"github.com/pdalabs/pdamap/fault"
)

// Ledger - an in-memory account store
type Ledger struct {
	sync.Mutex
	cells map[address.Address]*cell.Cell
}

// New - create an empty ledger
func New() *Ledger {
	return &Ledger{
		cells: make(map[address.Address]*cell.Cell),
	}
}

// NewFundedAccount - register a system-owned account with a random
// address holding the given balance, e.g. a fee payer
func (l *Ledger) NewFundedAccount(lamports uint64) *cell.Cell {
	l.Lock()
	defer l.Unlock()

	var a address.Address
	_, err := rand.Read(a[:])
	fault.PanicIfError("simulator.NewFundedAccount", err)

	c := &cell.Cell{
		Address:  a,
		Owner:    address.System,
		Lamports: lamports,
	}
	l.cells[a] = c
	return c
}

// Account - fetch the live cell handle for an address, registering an
// empty system-owned cell when the address was never seen
//
// this mirrors how the host hands unallocated account handles to a
// program: the handle exists even though the cell does not
func (l *Ledger) Account(a address.Address) *cell.Cell {
	l.Lock()
	defer l.Unlock()

	if c, ok := l.cells[a]; ok {
		return c
	}
	c := &cell.Cell{
		Address: a,
		Owner:   address.System,
	}
	l.cells[a] = c
	return c
}

// Transfer - move lamports between two accounts, for test setup
func (l *Ledger) Transfer(from *cell.Cell, to *cell.Cell, lamports uint64) error {
	l.Lock()
	defer l.Unlock()

	if from.Lamports < lamports {
		return fault.ErrInsufficientFunds
	}
	from.Lamports -= lamports
	to.Lamports += lamports
	return nil
}

// CreateAccount - the system allocator; implements
// allocator.SystemProgram
//
// the target must be a program-derived address authorised by the
// supplied seeds; creation is rejected when the cell already belongs
// to a program or when the payer cannot cover the lamports; on any
// failure no state changes
func (l *Ledger) CreateAccount(payer *cell.Cell, target *cell.Cell, lamports uint64, space uint64, owner address.Address, signerSeeds [][]byte) error {
	l.Lock()
	defer l.Unlock()

	derived, err := address.Derive(owner, signerSeeds...)
	if nil != err || derived != target.Address {
		return fault.ErrInvalidSignerSeeds
	}

	if existing, ok := l.cells[target.Address]; ok {
		if address.System != existing.Owner || 0 != len(existing.Data) {
			return fault.ErrAllocationFailure
		}
	}

	if payer.Lamports < lamports {
		return fault.ErrInsufficientFunds
	}

	payer.Lamports -= lamports
	target.Lamports += lamports
	target.Owner = owner
	target.Data = make([]byte, space)
	l.cells[target.Address] = target
	return nil
}

// FindAddress - search down from 255 for the first bump whose derived
// address is off-curve
//
// this is the caller-side routine: the mapping core only verifies a
// previously established bump, it never searches
func FindAddress(programID address.Address, seeds ...[]byte) (address.Address, byte, error) {
	for bump := 255; bump >= 0; bump -= 1 {
		trial := make([][]byte, 0, len(seeds)+1)
		trial = append(trial, seeds...)
		trial = append(trial, []byte{byte(bump)})

		a, err := address.Derive(programID, trial...)
		if nil == err {
			return a, byte(bump), nil
		}
		if fault.ErrInvalidBump != err {
			return address.Address{}, 0, err
		}
	}
	return address.Address{}, 0, fault.ErrBumpNotFound
}
