// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 PDA Labs
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mapping_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdalabs/pdamap/address"
	"github.com/pdalabs/pdamap/cell"
	"github.com/pdalabs/pdamap/fault"
	"github.com/pdalabs/pdamap/fixtures"
	"github.com/pdalabs/pdamap/mapping"
	"github.com/pdalabs/pdamap/rent"
	"github.com/pdalabs/pdamap/simulator"
)

// a fixed-layout test record: 8 + 1 = 9 bytes
type position struct {
	Amount      uint64
	AccountBump byte
}

func (p position) Bump() byte {
	return p.AccountBump
}

const positionSize = 9

var mapName = []byte("positions")

// one ledger, one funded payer, one mapping
func setup(t *testing.T) (*simulator.Ledger, *mapping.Mapping) {
	t.Helper()
	ledger := simulator.New()
	payer := ledger.NewFundedAccount(100_000_000)
	m := mapping.NewWithProgram(fixtures.ProgramID, mapName, payer, ledger)
	return ledger, m
}

// entry cell for a key, bump established the caller-side way
func entryCell(t *testing.T, ledger *simulator.Ledger, key address.Address) (*cell.Cell, byte) {
	t.Helper()
	a, bump, err := simulator.FindAddress(fixtures.ProgramID, mapName, key.Bytes())
	assert.Nil(t, err, "wrong FindAddress")
	return ledger.Account(a), bump
}

func TestCreateThenRead(t *testing.T) {
	ledger, m := setup(t)
	key := address.Address{0x22}
	c, bump := entryCell(t, ledger, key)

	err := m.Create(key, position{Amount: 100, AccountBump: bump}, c)
	assert.Nil(t, err, "wrong Create")
	assert.Equal(t, fixtures.ProgramID, c.Owner, "wrong owner")
	assert.Equal(t, positionSize, len(c.Data), "wrong cell size")
	assert.Equal(t, rent.MinimumBalance(positionSize), c.Lamports, "not rent exempt")

	stored := position{AccountBump: bump}
	err = m.Read(key, &stored, c)
	assert.Nil(t, err, "wrong Read")
	assert.Equal(t, uint64(100), stored.Amount, "wrong amount")
	assert.Equal(t, bump, stored.AccountBump, "wrong bump")
}

func TestCreateTwice(t *testing.T) {
	ledger, m := setup(t)
	key := address.Address{0x22}
	c, bump := entryCell(t, ledger, key)

	err := m.Create(key, position{Amount: 100, AccountBump: bump}, c)
	assert.Nil(t, err, "wrong Create")

	err = m.Create(key, position{Amount: 999, AccountBump: bump}, c)
	assert.Equal(t, fault.ErrAlreadyInitialised, err, "wrong second Create")

	// first value must be intact
	stored := position{AccountBump: bump}
	_ = m.Read(key, &stored, c)
	assert.Equal(t, uint64(100), stored.Amount, "first value lost")
}

func TestUpdate(t *testing.T) {
	ledger, m := setup(t)
	key := address.Address{0x22}
	c, bump := entryCell(t, ledger, key)

	err := m.Create(key, position{Amount: 100, AccountBump: bump}, c)
	assert.Nil(t, err, "wrong Create")

	err = m.Update(key, position{Amount: 200, AccountBump: bump}, c)
	assert.Nil(t, err, "wrong Update")

	stored := position{AccountBump: bump}
	_ = m.Read(key, &stored, c)
	assert.Equal(t, uint64(200), stored.Amount, "wrong amount after update")
}

func TestUpdateWithoutCreate(t *testing.T) {
	ledger, m := setup(t)
	key := address.Address{0x22}
	c, bump := entryCell(t, ledger, key)

	err := m.Update(key, position{Amount: 200, AccountBump: bump}, c)
	assert.Equal(t, fault.ErrNotInitialised, err, "wrong Update")
	assert.Equal(t, address.System, c.Owner, "cell allocated by update")
}

func TestReadWithoutCreate(t *testing.T) {
	ledger, m := setup(t)
	key := address.Address{0x22}
	c, bump := entryCell(t, ledger, key)

	stored := position{AccountBump: bump}
	err := m.Read(key, &stored, c)
	assert.Equal(t, fault.ErrNotInitialised, err, "wrong Read")
}

func TestSetOnFreshCell(t *testing.T) {
	ledger, m := setup(t)
	key := address.Address{0x22}
	c, bump := entryCell(t, ledger, key)

	err := m.Set(key, position{Amount: 100, AccountBump: bump}, c)
	assert.Nil(t, err, "wrong Set")
	assert.Equal(t, fixtures.ProgramID, c.Owner, "wrong owner")
	assert.Equal(t, rent.MinimumBalance(positionSize), c.Lamports, "not rent exempt")

	stored := position{AccountBump: bump}
	err = m.Read(key, &stored, c)
	assert.Nil(t, err, "wrong Read")
	assert.Equal(t, uint64(100), stored.Amount, "wrong amount")
}

func TestSetOnInitialisedCell(t *testing.T) {
	ledger, m := setup(t)
	key := address.Address{0x22}
	c, bump := entryCell(t, ledger, key)

	err := m.Set(key, position{Amount: 100, AccountBump: bump}, c)
	assert.Nil(t, err, "wrong first Set")

	err = m.Set(key, position{Amount: 300, AccountBump: bump}, c)
	assert.Nil(t, err, "wrong second Set")

	stored := position{AccountBump: bump}
	_ = m.Read(key, &stored, c)
	assert.Equal(t, uint64(300), stored.Amount, "wrong amount")
}

// a set over an existing entry must leave exactly the bytes a direct
// update would have written
func TestSetMatchesUpdate(t *testing.T) {
	ledger, m := setup(t)
	keySet := address.Address{0x31}
	keyUpd := address.Address{0x32}

	cSet, bumpSet := entryCell(t, ledger, keySet)
	cUpd, bumpUpd := entryCell(t, ledger, keyUpd)

	assert.Nil(t, m.Create(keySet, position{Amount: 1, AccountBump: bumpSet}, cSet), "wrong Create")
	assert.Nil(t, m.Create(keyUpd, position{Amount: 1, AccountBump: bumpUpd}, cUpd), "wrong Create")

	assert.Nil(t, m.Set(keySet, position{Amount: 7, AccountBump: bumpSet}, cSet), "wrong Set")
	assert.Nil(t, m.Update(keyUpd, position{Amount: 7, AccountBump: bumpUpd}, cUpd), "wrong Update")

	// identical apart from the trailing bump byte
	assert.Equal(t, cSet.Data[:positionSize-1], cUpd.Data[:positionSize-1], "set and update bytes differ")
}

func TestAddressMismatch(t *testing.T) {
	ledger, m := setup(t)
	key := address.Address{0x22}
	other := address.Address{0x23}

	// cell for a different key
	c, _ := entryCell(t, ledger, other)
	_, bump := entryCell(t, ledger, key)

	err := m.Create(key, position{Amount: 100, AccountBump: bump}, c)
	assert.Equal(t, fault.ErrAddressMismatch, err, "wrong Create")
}

func TestOwnerMismatch(t *testing.T) {
	ledger, m := setup(t)
	key := address.Address{0x22}
	c, bump := entryCell(t, ledger, key)

	err := m.Create(key, position{Amount: 100, AccountBump: bump}, c)
	assert.Nil(t, err, "wrong Create")

	// another program claims the cell behind our back; the address
	// still matches exactly
	c.Owner = fixtures.OtherProgram

	err = m.Update(key, position{Amount: 200, AccountBump: bump}, c)
	assert.Equal(t, fault.ErrOwnerMismatch, err, "wrong Update")

	err = m.Set(key, position{Amount: 200, AccountBump: bump}, c)
	assert.Equal(t, fault.ErrOwnerMismatch, err, "wrong Set")
}

// create never reclaims a cell another program holds
func TestCreateOnForeignCell(t *testing.T) {
	ledger, m := setup(t)
	key := address.Address{0x22}
	c, bump := entryCell(t, ledger, key)

	err := m.Create(key, position{Amount: 100, AccountBump: bump}, c)
	assert.Nil(t, err, "wrong Create")

	c.Owner = fixtures.OtherProgram

	err = m.Create(key, position{Amount: 200, AccountBump: bump}, c)
	assert.Equal(t, fault.ErrAlreadyInitialised, err, "wrong Create")
}

func TestSizeMismatch(t *testing.T) {
	ledger, m := setup(t)
	key := address.Address{0x22}
	c, bump := entryCell(t, ledger, key)

	err := m.Create(key, position{Amount: 100, AccountBump: bump}, c)
	assert.Nil(t, err, "wrong Create")

	// the host would never shrink a cell, simulate corruption
	c.Data = c.Data[:positionSize-1]

	err = m.Update(key, position{Amount: 200, AccountBump: bump}, c)
	assert.Equal(t, fault.ErrDataSizeMismatch, err, "wrong Update")

	err = m.Set(key, position{Amount: 200, AccountBump: bump}, c)
	assert.Equal(t, fault.ErrDataSizeMismatch, err, "wrong Set")
}

func TestInvalidBump(t *testing.T) {
	ledger, m := setup(t)
	key := address.Address{0x22}
	c, _ := entryCell(t, ledger, key)

	// search for a bump that derives on-curve; the seed space almost
	// surely contains one, skip otherwise
	bad := -1
	for trial := 0; trial <= 255; trial += 1 {
		_, err := address.Derive(fixtures.ProgramID, mapName, key.Bytes(), []byte{byte(trial)})
		if fault.ErrInvalidBump == err {
			bad = trial
			break
		}
	}
	if bad < 0 {
		t.Skip("no on-curve bump in seed space")
	}

	err := m.Create(key, position{Amount: 100, AccountBump: byte(bad)}, c)
	assert.Equal(t, fault.ErrInvalidBump, err, "wrong Create")
}

func TestDistinctKeysDistinctCells(t *testing.T) {
	ledger, m := setup(t)
	key1 := address.Address{0x41}
	key2 := address.Address{0x42}

	c1, bump1 := entryCell(t, ledger, key1)
	c2, bump2 := entryCell(t, ledger, key2)
	assert.NotEqual(t, c1.Address, c2.Address, "keys share a cell")

	assert.Nil(t, m.Create(key1, position{Amount: 1, AccountBump: bump1}, c1), "wrong Create")
	assert.Nil(t, m.Create(key2, position{Amount: 2, AccountBump: bump2}, c2), "wrong Create")

	stored := position{AccountBump: bump1}
	_ = m.Read(key1, &stored, c1)
	assert.Equal(t, uint64(1), stored.Amount, "wrong amount for key1")
}

func TestVariableSizeValueRejected(t *testing.T) {
	ledger, m := setup(t)
	key := address.Address{0x22}
	c, _ := entryCell(t, ledger, key)

	err := m.Create(key, variablePosition{Notes: []byte("x")}, c)
	assert.Equal(t, fault.ErrInvalidValueType, err, "wrong Create")
}

type variablePosition struct {
	Notes []byte
}

func (v variablePosition) Bump() byte { return 0 }

func TestNewRequiresProgramIdentity(t *testing.T) {
	ledger := simulator.New()
	payer := ledger.NewFundedAccount(1)

	_, err := mapping.New(mapName, payer, ledger)
	assert.Equal(t, fault.ErrNotInitialised, err, "wrong New")
}

func TestInsufficientPayer(t *testing.T) {
	ledger := simulator.New()
	payer := ledger.NewFundedAccount(10) // far below rent exemption
	m := mapping.NewWithProgram(fixtures.ProgramID, mapName, payer, ledger)

	key := address.Address{0x22}
	c, bump := entryCell(t, ledger, key)

	err := m.Create(key, position{Amount: 100, AccountBump: bump}, c)
	assert.Equal(t, fault.ErrInsufficientFunds, err, "wrong Create")
	assert.Equal(t, address.System, c.Owner, "cell allocated")
	assert.Equal(t, uint64(10), payer.Lamports, "payer debited")
}
