// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package store - create, read, mutate and delete object records
//
// all operations work against a transaction's staged view; nothing
// becomes durable until that transaction commits
package store

import (
	"github.com/Sui-Community-Network/objectstore/account"
	"github.com/Sui-Community-Network/objectstore/fault"
	"github.com/Sui-Community-Network/objectstore/objectid"
	"github.com/Sui-Community-Network/objectstore/record"
	"github.com/Sui-Community-Network/objectstore/storage"
	"github.com/Sui-Community-Network/objectstore/transaction"
)

// Create - allocate an id and stage a new object owned by an address
//
// the new object starts at version 0 with no dynamic fields and is
// appended to the owner's list
func Create(trx *transaction.Handle, typeTag string, payload []byte, owner account.Address) (objectid.ObjectId, error) {

	id, err := trx.Allocate()
	if nil != err {
		return objectid.ObjectId{}, err
	}

	r := &record.ObjectRecord{
		Id:      id,
		TypeTag: typeTag,
		Version: 0,
		Owner:   record.OwnedMode{Owner: owner},
		Payload: payload,
	}
	err = trx.StageRecord(r)
	if nil != err {
		return objectid.ObjectId{}, err
	}

	trx.PutN(storage.Pool.FieldCounts, id[:], 0)
	AddToOwnerList(trx, owner, id)

	return id, nil
}

// Fetch - internal record access, wrapped records included
//
// records the committed version in the transaction's read set; use
// Read for the external view that hides wrapped objects
func Fetch(trx *transaction.Handle, id objectid.ObjectId) (*record.ObjectRecord, error) {
	return trx.FetchRecord(id)
}

// Read - fetch an object as seen by top level operations
//
// wrapped objects are invisible: they can only be reached through
// their parent, so a direct read reports not found
func Read(trx *transaction.Handle, id objectid.ObjectId, expectedVersion *uint64) (*record.ObjectRecord, error) {

	r, err := trx.FetchRecord(id)
	if nil != err {
		return nil, err
	}

	if record.WrappedTag == r.Owner.Tag() {
		return nil, fault.ObjectNotFound
	}

	if nil != expectedVersion && *expectedVersion != r.Version {
		return nil, fault.VersionConflict
	}

	return r, nil
}

// Mutate - replace an object's state through a mutator function
//
// the mutator receives a private copy; on success the staged record
// carries the mutated state with the version advanced by one
func Mutate(
	trx *transaction.Handle,
	id objectid.ObjectId,
	expectedVersion uint64,
	mutator func(*record.ObjectRecord) error,
) (uint64, error) {

	r, err := Read(trx, id, &expectedVersion)
	if nil != err {
		return 0, err
	}

	if record.ImmutableTag == r.Owner.Tag() {
		return 0, fault.ObjectFrozen
	}

	mutated := r.Copy()
	err = mutator(mutated)
	if nil != err {
		return 0, err
	}

	// id, version and mode are not the mutator's to change
	mutated.Id = r.Id
	mutated.Owner = r.Owner
	mutated.Version = r.Version + 1

	err = trx.StageRecord(mutated)
	if nil != err {
		return 0, err
	}
	return mutated.Version, nil
}

// Delete - stage removal of an object
//
// requires a version match and all dynamic fields removed first; a
// frozen object can never be deleted and a wrapped object is not
// reachable here at all
func Delete(trx *transaction.Handle, id objectid.ObjectId, expectedVersion uint64) error {

	r, err := trx.FetchRecord(id)
	if nil != err {
		return err
	}

	switch r.Owner.Tag() {
	case record.WrappedTag:
		// invisible until unwrapped by the parent
		return fault.ObjectNotFound
	case record.ImmutableTag:
		return fault.ObjectFrozen
	}

	if expectedVersion != r.Version {
		return fault.VersionConflict
	}

	count, _ := trx.GetN(storage.Pool.FieldCounts, id[:])
	if 0 != count {
		return fault.DynamicFieldsNotEmpty
	}

	err = trx.DeleteRecord(id)
	if nil != err {
		return err
	}
	trx.Delete(storage.Pool.FieldCounts, id[:])

	if owned, ok := r.Owner.(record.OwnedMode); ok {
		RemoveFromOwnerList(trx, owned.Owner, id)
	}

	return nil
}
