// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 PDA Labs
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAddressMismatch      = InvalidError("derived address does not match the account")
	ErrAllocationFailure    = ProcessError("account allocation failed")
	ErrAlreadyInitialised   = ExistsError("already initialised")
	ErrBumpNotFound         = NotFoundError("no bump yields an off-curve address")
	ErrCannotDecodeAddress  = InvalidError("cannot decode address")
	ErrDataSizeMismatch     = InvalidError("account data size mismatch")
	ErrInsufficientFunds    = ProcessError("insufficient funds for allocation")
	ErrInvalidBump          = InvalidError("bump derives an on-curve address")
	ErrInvalidLoggerChannel = InvalidError("invalid logger channel")
	ErrInvalidSignerSeeds   = InvalidError("signer seeds do not derive the target address")
	ErrInvalidValueType     = InvalidError("value type is not a fixed size record")
	ErrKeyLength            = InvalidError("key length is invalid")
	ErrNotInitialised       = NotFoundError("not initialised")
	ErrOwnerMismatch        = InvalidError("account owner mismatch")
	ErrSeedTooLong          = InvalidError("seed exceeds maximum length")
	ErrTooManySeeds         = InvalidError("too many seeds")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
