// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 PDA Labs
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package program - process-wide program identity
//
// A program knows its own deployed identity as a constant. It is set
// exactly once during startup and is read-only until Finalise, so
// mappings constructed anywhere in the program agree on the identity
// used for address derivation.
package program

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/pdalabs/pdamap/address"
	"github.com/pdalabs/pdamap/fault"
)

var globalData struct {
	sync.RWMutex
	log *logger.L
	id  address.Address

	// set once during initialise
	initialised bool
}

// set up the program identity
func Initialise(programID address.Address) error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("program")
	globalData.log.Info("starting…")
	globalData.log.Infof("program identity: %s", programID)

	globalData.id = programID

	// all data initialised
	globalData.initialised = true

	return nil
}

// shutdown identity handling
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.id = address.Address{}

	// finally...
	globalData.initialised = false

	return nil
}

// fetch the program identity
func ID() (address.Address, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return address.Address{}, fault.ErrNotInitialised
	}
	return globalData.id, nil
}

// detect whether the identity was set
func IsInitialised() bool {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.initialised
}
