// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 PDA Labs
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/pdalabs/pdamap/address"
	"github.com/pdalabs/pdamap/mapping"
	"github.com/pdalabs/pdamap/simulator"
)

func runDerive(c *cli.Context) error {
	programID, name, key, err := mappingArguments(c)
	if nil != err {
		return err
	}

	bump := c.Int("bump")
	if bump < 0 || bump > 255 {
		return fmt.Errorf("bump must be in 0..255")
	}

	derived, err := address.Derive(programID, name, key.Bytes(), []byte{byte(bump)})
	if nil != err {
		return err
	}

	fmt.Fprintf(c.App.Writer, "address: %s\n", derived)
	return nil
}

func runFind(c *cli.Context) error {
	programID, name, key, err := mappingArguments(c)
	if nil != err {
		return err
	}

	derived, bump, err := simulator.FindAddress(programID, name, key.Bytes())
	if nil != err {
		return err
	}

	fmt.Fprintf(c.App.Writer, "address: %s\n", derived)
	fmt.Fprintf(c.App.Writer, "bump: %d\n", bump)
	return nil
}

// a self-contained round trip on the in-memory ledger

type demoRecord struct {
	Amount      uint64
	AccountBump byte
}

func (r demoRecord) Bump() byte {
	return r.AccountBump
}

func runDemo(c *cli.Context) error {
	w := c.App.Writer

	programID, err := address.AddressFromBytes([]byte("pdamap demo program identity 000"))
	if nil != err {
		return err
	}

	ledger := simulator.New()
	payer := ledger.NewFundedAccount(100_000_000)
	fmt.Fprintf(w, "payer: %s  balance: %d\n", payer.Address, payer.Lamports)

	m := mapping.NewWithProgram(programID, []byte("positions"), payer, ledger)

	key := payer.Address // any 32 byte identity works as a key
	cellAddress, bump, err := simulator.FindAddress(programID, []byte("positions"), key.Bytes())
	if nil != err {
		return err
	}
	fmt.Fprintf(w, "entry cell: %s  bump: %d\n", cellAddress, bump)

	entry := ledger.Account(cellAddress)

	err = m.Create(key, demoRecord{Amount: 100, AccountBump: bump}, entry)
	if nil != err {
		return err
	}
	fmt.Fprintf(w, "created: owner=%s size=%d lamports=%d\n", entry.Owner, len(entry.Data), entry.Lamports)

	err = m.Update(key, demoRecord{Amount: 200, AccountBump: bump}, entry)
	if nil != err {
		return err
	}

	stored := demoRecord{AccountBump: bump}
	err = m.Read(key, &stored, entry)
	if nil != err {
		return err
	}
	fmt.Fprintf(w, "stored amount: %d\n", stored.Amount)
	fmt.Fprintf(w, "payer balance after rent: %d\n", payer.Lamports)

	return nil
}
