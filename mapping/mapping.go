// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 PDA Labs
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mapping - a key to value map over program-derived cells
//
// Each entry of a logical map lives in its own storage cell whose
// address is derived from a namespace name, a 32 byte key and the
// bump carried by the stored value. The facade verifies the supplied
// cell against this derivation, allocates the cell through the system
// program on first write and copies the value's raw bytes in or out.
//
// A Mapping is cheap, immutable configuration: construct one at the
// start of an instruction handler and drop it when the handler
// returns. All persistent state stays in the cells.
package mapping

import (
	"github.com/pdalabs/pdamap/address"
	"github.com/pdalabs/pdamap/allocator"
	"github.com/pdalabs/pdamap/cell"
	"github.com/pdalabs/pdamap/fault"
	"github.com/pdalabs/pdamap/program"
)

// Bumpy - capability required of every stored value
//
// a value carries the single byte that, together with the map name
// and the entry key, derives its own cell address; establishing a
// valid bump (e.g. by the host's address-finding routine) is the
// caller's job and happens before the value is ever stored
type Bumpy interface {
	Bump() byte
}

// Mapping - immutable configuration for one logical map
type Mapping struct {
	programID address.Address
	name      []byte
	payer     *cell.Cell
	sys       allocator.SystemProgram
}

// NewWithProgram - create a mapping under an explicit program identity
func NewWithProgram(programID address.Address, name []byte, payer *cell.Cell, sys allocator.SystemProgram) *Mapping {
	return &Mapping{
		programID: programID,
		name:      name,
		payer:     payer,
		sys:       sys,
	}
}

// New - create a mapping under the process-wide program identity
//
// fails with fault.ErrNotInitialised before program.Initialise
func New(name []byte, payer *cell.Cell, sys allocator.SystemProgram) (*Mapping, error) {
	programID, err := program.ID()
	if nil != err {
		return nil, err
	}
	return NewWithProgram(programID, name, payer, sys), nil
}

// Create - first-time write of the entry for key
//
// the cell must match the derived address and must never have been
// allocated, otherwise fault.ErrAlreadyInitialised is returned with
// the stored bytes untouched; on success the cell is allocated,
// funded and initialised with the value's bytes
func (m *Mapping) Create(key address.Address, value Bumpy, c *cell.Cell) error {
	size, derived, seeds, err := m.deriveAndVerify(key, value, c)
	if nil != err {
		return err
	}

	if c.IsAllocated() {
		return fault.ErrAlreadyInitialised
	}

	err = allocator.Allocate(m.sys, c, m.payer, size, m.programID, seeds)
	if nil != err {
		return err
	}

	err = cell.Validate(c, derived, m.programID, size, true)
	if nil != err {
		return err
	}
	return writeValue(c, value)
}

// Set - write the entry for key regardless of prior state
//
// behaves as Create when the cell was never allocated and as Update
// when it was; this is the only operation legal in both states
func (m *Mapping) Set(key address.Address, value Bumpy, c *cell.Cell) error {
	size, derived, seeds, err := m.deriveAndVerify(key, value, c)
	if nil != err {
		return err
	}

	if !c.IsAllocated() {
		err = allocator.Allocate(m.sys, c, m.payer, size, m.programID, seeds)
		if nil != err {
			return err
		}
	}

	err = cell.Validate(c, derived, m.programID, size, true)
	if nil != err {
		return err
	}
	return writeValue(c, value)
}

// Update - overwrite the existing entry for key
//
// fails with fault.ErrNotInitialised when the cell was never
// allocated at all and fault.ErrOwnerMismatch when another program
// holds it
func (m *Mapping) Update(key address.Address, value Bumpy, c *cell.Cell) error {
	size, derived, _, err := m.deriveAndVerify(key, value, c)
	if nil != err {
		return err
	}

	if !c.IsAllocated() {
		return fault.ErrNotInitialised
	}

	err = cell.Validate(c, derived, m.programID, size, true)
	if nil != err {
		return err
	}
	return writeValue(c, value)
}

// Read - decode the stored entry for key into value
//
// value must be a pointer to the record type with its bump field
// already set, since the bump takes part in the address derivation
func (m *Mapping) Read(key address.Address, value Bumpy, c *cell.Cell) error {
	size, derived, _, err := m.deriveAndVerify(key, value, c)
	if nil != err {
		return err
	}

	if !c.IsAllocated() {
		return fault.ErrNotInitialised
	}

	err = cell.Validate(c, derived, m.programID, size, true)
	if nil != err {
		return err
	}
	return readValue(c, value)
}

// common entry gate: record size, derived address and the seed tuple
// used as signing authority for allocation
func (m *Mapping) deriveAndVerify(key address.Address, value Bumpy, c *cell.Cell) (int, address.Address, [][]byte, error) {
	size, err := sizeOf(value)
	if nil != err {
		return 0, address.Address{}, nil, err
	}

	seeds := [][]byte{m.name, key.Bytes(), {value.Bump()}}
	derived, err := address.Derive(m.programID, seeds...)
	if nil != err {
		return 0, address.Address{}, nil, err
	}
	if derived != c.Address {
		return 0, address.Address{}, nil, fault.ErrAddressMismatch
	}
	return size, derived, seeds, nil
}
