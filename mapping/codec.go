// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 PDA Labs
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mapping

import (
	"bytes"
	"encoding/binary"

	"github.com/pdalabs/pdamap/cell"
	"github.com/pdalabs/pdamap/fault"
)

// the cell buffer holds the record's fixed little-endian layout and
// nothing else: no length prefix, no version header; a record type
// must therefore have a size known up front

// fixed byte size of a record, fails for any type with
// variable-length or unsupported fields
func sizeOf(value interface{}) (int, error) {
	size := binary.Size(value)
	if size < 0 {
		return 0, fault.ErrInvalidValueType
	}
	return size, nil
}

// copy the record's bytes into the cell buffer
func writeValue(c *cell.Cell, value interface{}) error {
	buffer := bytes.NewBuffer(make([]byte, 0, len(c.Data)))
	err := binary.Write(buffer, binary.LittleEndian, value)
	if nil != err {
		return fault.ErrInvalidValueType
	}
	if len(c.Data) != buffer.Len() {
		return fault.ErrDataSizeMismatch
	}
	copy(c.Data, buffer.Bytes())
	return nil
}

// decode the cell buffer into the record, which must be a pointer
func readValue(c *cell.Cell, value interface{}) error {
	err := binary.Read(bytes.NewReader(c.Data), binary.LittleEndian, value)
	if nil != err {
		return fault.ErrInvalidValueType
	}
	return nil
}
