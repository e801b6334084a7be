// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 PDA Labs
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/urfave/cli"

	"github.com/pdalabs/pdamap/address"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "pdamap"
	app.Usage = "derive and inspect program-derived mapping addresses"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	programFlag := cli.StringFlag{
		Name:  "program, p",
		Value: "",
		Usage: "*program identity `ADDRESS` (base58)",
	}
	nameFlag := cli.StringFlag{
		Name:  "name, n",
		Value: "",
		Usage: "*mapping namespace `NAME`",
	}
	keyFlag := cli.StringFlag{
		Name:  "key, k",
		Value: "",
		Usage: "*entry key `ADDRESS` (base58)",
	}

	app.Commands = []cli.Command{
		{
			Name:      "derive",
			Usage:     "derive the cell address for a known bump",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				programFlag,
				nameFlag,
				keyFlag,
				cli.IntFlag{
					Name:  "bump, b",
					Value: -1,
					Usage: "*previously established bump `BYTE`",
				},
			},
			Action: runDerive,
		},
		{
			Name:      "find",
			Usage:     "search for the first valid bump and its address",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				programFlag,
				nameFlag,
				keyFlag,
			},
			Action: runFind,
		},
		{
			Name:   "demo",
			Usage:  "run a create/update round trip on the in-memory ledger",
			Flags:  []cli.Flag{},
			Action: runDemo,
		},
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("%s: error: %s", app.Name, err)
	}
}

// common flag decoding for derive and find
func mappingArguments(c *cli.Context) (address.Address, []byte, address.Address, error) {
	programID, err := address.AddressFromBase58(c.String("program"))
	if nil != err {
		return address.Address{}, nil, address.Address{}, fmt.Errorf("program: %s", err)
	}

	name := c.String("name")
	if "" == name {
		return address.Address{}, nil, address.Address{}, fmt.Errorf("name is required")
	}

	key, err := address.AddressFromBase58(c.String("key"))
	if nil != err {
		return address.Address{}, nil, address.Address{}, fmt.Errorf("key: %s", err)
	}

	return programID, []byte(name), key, nil
}
