// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 PDA Labs
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"github.com/mr-tron/base58"

	"github.com/pdalabs/pdamap/fault"
)

// number of bytes in an address
const Length = 32

// type for a ledger address
// stored as a fixed byte array
// represented as base58 text for print and JSON encoding
type Address [Length]byte

// System - identity of the host runtime's system allocator; a cell
// belongs to it until a program claims the cell by allocation
var System = Address{}

// convert a base58 encoded string to an address
func AddressFromBase58(addressBase58Encoded string) (Address, error) {
	buffer, err := base58.Decode(addressBase58Encoded)
	if nil != err {
		return Address{}, fault.ErrCannotDecodeAddress
	}
	return AddressFromBytes(buffer)
}

// convert and validate a binary byte slice to an address
func AddressFromBytes(buffer []byte) (Address, error) {
	if Length != len(buffer) {
		return Address{}, fault.ErrKeyLength
	}
	var address Address
	copy(address[:], buffer)
	return address, nil
}

// copy of the underlying bytes
func (address Address) Bytes() []byte {
	buffer := make([]byte, Length)
	copy(buffer, address[:])
	return buffer
}

// convert a binary address to its base58 string for use by the fmt package (for %s)
func (address Address) String() string {
	return base58.Encode(address[:])
}

// convert a binary address to its base58 string for use by the fmt package (for %#v)
func (address Address) GoString() string {
	return "<address:" + base58.Encode(address[:]) + ">"
}

// convert an address to base58 text
func (address Address) MarshalText() ([]byte, error) {
	return []byte(base58.Encode(address[:])), nil
}

// convert base58 text into an address
func (address *Address) UnmarshalText(s []byte) error {
	a, err := AddressFromBase58(string(s))
	if nil != err {
		return err
	}
	*address = a
	return nil
}
