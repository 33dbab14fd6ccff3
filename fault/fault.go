// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type AccessError GenericError
type ConflictError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	AddressChecksumMismatch  = InvalidError("address checksum mismatch")
	AddressLengthIsInvalid   = InvalidError("address length is invalid")
	AlreadyInitialised       = ProcessError("already initialised")
	CannotDecodeAddress      = InvalidError("cannot decode address")
	DatabaseIsNotSet         = ProcessError("database is not set")
	DynamicFieldsNotEmpty    = InvalidError("dynamic fields not empty")
	FieldAlreadyExists       = ExistsError("dynamic field already exists")
	FieldNotFound            = NotFoundError("dynamic field not found")
	InvalidConfigurationFile = InvalidError("configuration file must return a table")
	InvalidFieldKey          = InvalidError("invalid dynamic field key")
	InvalidFieldValue        = InvalidError("invalid dynamic field value")
	InvalidOperation         = InvalidError("invalid operation")
	NotInitialised           = ProcessError("not initialised")
	NotObjectRecordPack      = InvalidError("not an object record pack")
	NotOwner                 = AccessError("not the object owner")
	NotOwnershipModePack     = InvalidError("not an ownership mode pack")
	NotWrappedByParent       = InvalidError("object is not wrapped by this parent")
	ObjectFrozen             = AccessError("object is frozen")
	ObjectNotFound           = NotFoundError("object not found")
	PayloadTooLong           = InvalidError("payload too long")
	TransactionClosed        = ProcessError("transaction already finished")
	TransactionConflict      = ConflictError("transaction commit conflict")
	TransactionInUse         = ProcessError("transaction already in use")
	TypeTagIsRequired        = InvalidError("type tag is required")
	TypeTagTooLong           = InvalidError("type tag too long")
	VersionConflict          = ConflictError("object version conflict")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AccessError) Error() string   { return string(e) }
func (e ConflictError) Error() string { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// IsErrAccess - determine if an access class error
func IsErrAccess(e error) bool { _, ok := e.(AccessError); return ok }

// IsErrConflict - determine if a conflict class error
func IsErrConflict(e error) bool { _, ok := e.(ConflictError); return ok }

// IsErrExists - determine if an exists class error
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine if an invalid class error
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrNotFound - determine if a not found class error
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine if a process class error
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }
