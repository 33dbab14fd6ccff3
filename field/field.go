// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package field - dynamic key-value entries attached to an object
//
// fields live outside the object's static payload and are addressable
// and removable independently; an object cannot be deleted while any
// field is still attached
//
// a field value holding an object reference wraps the referenced
// object on add and unwraps it back to the caller on remove, keeping
// responsibility for nested objects explicit
//
// attaching, updating or detaching a field advances the holder's
// version, so concurrent field changes on the same holder collide at
// commit like any other mutation
package field

import (
	"github.com/Sui-Community-Network/objectstore/account"
	"github.com/Sui-Community-Network/objectstore/fault"
	"github.com/Sui-Community-Network/objectstore/objectid"
	"github.com/Sui-Community-Network/objectstore/ownership"
	"github.com/Sui-Community-Network/objectstore/record"
	"github.com/Sui-Community-Network/objectstore/storage"
	"github.com/Sui-Community-Network/objectstore/store"
	"github.com/Sui-Community-Network/objectstore/transaction"
)

// build the field pool key: owner id followed by the packed key
func fieldKey(ownerId objectid.ObjectId, key record.FieldKey) ([]byte, error) {
	packedKey, err := key.Pack()
	if nil != err {
		return nil, err
	}
	return append(append([]byte{}, ownerId[:]...), packedKey...), nil
}

// the capability must be able to mutate the holding object
func checkAccess(trx *transaction.Handle, cap account.Capability, ownerId objectid.ObjectId) (*record.ObjectRecord, error) {

	r, err := store.Fetch(trx, ownerId)
	if nil != err {
		return nil, err
	}

	switch r.Owner.Tag() {
	case record.WrappedTag:
		return nil, fault.ObjectNotFound
	case record.ImmutableTag:
		return nil, fault.ObjectFrozen
	}
	if !ownership.CanMutate(cap, r) {
		return nil, fault.NotOwner
	}
	return r, nil
}

// Add - attach a new field to an object
//
// a value referencing another object wraps that object into the
// holder, so the nested object vanishes from top level reads
func Add(
	trx *transaction.Handle,
	cap account.Capability,
	ownerId objectid.ObjectId,
	key record.FieldKey,
	value record.FieldValue,
) error {

	holder, err := checkAccess(trx, cap, ownerId)
	if nil != err {
		return err
	}

	storeKey, err := fieldKey(ownerId, key)
	if nil != err {
		return err
	}
	if trx.Has(storage.Pool.ObjectFields, storeKey) {
		return fault.FieldAlreadyExists
	}

	packedValue, err := value.Pack()
	if nil != err {
		return err
	}

	if ref, ok := value.(record.ObjectRefValue); ok {
		// an object cannot hold a reference to itself
		if ref.Id == ownerId {
			return fault.InvalidFieldValue
		}
		_, err = ownership.Wrap(trx, cap, ref.Id, versionOf(trx, ref.Id), ownerId)
		if nil != err {
			return err
		}
	}

	trx.Put(storage.Pool.ObjectFields, storeKey, packedValue)

	count, _ := trx.GetN(storage.Pool.FieldCounts, ownerId[:])
	trx.PutN(storage.Pool.FieldCounts, ownerId[:], count+1)

	return bumpHolder(trx, holder)
}

// Borrow - read a field value
//
// any holder of a capability may read; visibility of the holding
// object is still enforced
func Borrow(
	trx *transaction.Handle,
	ownerId objectid.ObjectId,
	key record.FieldKey,
) (record.FieldValue, error) {

	r, err := store.Fetch(trx, ownerId)
	if nil != err {
		return nil, err
	}
	if record.WrappedTag == r.Owner.Tag() {
		return nil, fault.ObjectNotFound
	}

	storeKey, err := fieldKey(ownerId, key)
	if nil != err {
		return nil, err
	}

	packedValue := trx.Get(storage.Pool.ObjectFields, storeKey)
	if nil == packedValue {
		return nil, fault.FieldNotFound
	}

	return record.ValueFromBytes(packedValue)
}

// Update - replace the value of an existing field
//
// the key must already be present; reference values are rejected here
// as re-parenting a nested object must go through remove and add
func Update(
	trx *transaction.Handle,
	cap account.Capability,
	ownerId objectid.ObjectId,
	key record.FieldKey,
	value record.FieldValue,
) error {

	holder, err := checkAccess(trx, cap, ownerId)
	if nil != err {
		return err
	}

	storeKey, err := fieldKey(ownerId, key)
	if nil != err {
		return err
	}
	oldPacked := trx.Get(storage.Pool.ObjectFields, storeKey)
	if nil == oldPacked {
		return fault.FieldNotFound
	}

	oldValue, err := record.ValueFromBytes(oldPacked)
	if nil != err {
		return err
	}
	if _, ok := oldValue.(record.ObjectRefValue); ok {
		return fault.InvalidFieldValue
	}
	if _, ok := value.(record.ObjectRefValue); ok {
		return fault.InvalidFieldValue
	}

	packedValue, err := value.Pack()
	if nil != err {
		return err
	}
	trx.Put(storage.Pool.ObjectFields, storeKey, packedValue)

	return bumpHolder(trx, holder)
}

// Remove - detach a field and hand its value back to the caller
//
// a reference value unwraps the nested object to the capability's
// signer, who becomes responsible for its lifecycle
func Remove(
	trx *transaction.Handle,
	cap account.Capability,
	ownerId objectid.ObjectId,
	key record.FieldKey,
) (record.FieldValue, error) {

	holder, err := checkAccess(trx, cap, ownerId)
	if nil != err {
		return nil, err
	}

	storeKey, err := fieldKey(ownerId, key)
	if nil != err {
		return nil, err
	}

	packedValue := trx.Get(storage.Pool.ObjectFields, storeKey)
	if nil == packedValue {
		return nil, fault.FieldNotFound
	}

	value, err := record.ValueFromBytes(packedValue)
	if nil != err {
		return nil, err
	}

	if ref, ok := value.(record.ObjectRefValue); ok {
		_, err = ownership.Unwrap(trx, cap, ref.Id, ownerId)
		if nil != err {
			return nil, err
		}
	}

	trx.Delete(storage.Pool.ObjectFields, storeKey)

	count, _ := trx.GetN(storage.Pool.FieldCounts, ownerId[:])
	if count > 0 {
		trx.PutN(storage.Pool.FieldCounts, ownerId[:], count-1)
	}

	err = bumpHolder(trx, holder)
	if nil != err {
		return nil, err
	}
	return value, nil
}

// Exists - whether a field key is attached to an object
func Exists(trx *transaction.Handle, ownerId objectid.ObjectId, key record.FieldKey) (bool, error) {
	storeKey, err := fieldKey(ownerId, key)
	if nil != err {
		return false, err
	}
	return trx.Has(storage.Pool.ObjectFields, storeKey), nil
}

// Count - number of fields attached to an object
func Count(trx *transaction.Handle, ownerId objectid.ObjectId) uint64 {
	count, _ := trx.GetN(storage.Pool.FieldCounts, ownerId[:])
	return count
}

// advance the holding object's version after a field change
func bumpHolder(trx *transaction.Handle, holder *record.ObjectRecord) error {
	bumped := holder.Copy()
	bumped.Version += 1
	return trx.StageRecord(bumped)
}

// current version of an object through the staged view, zero if the
// object cannot be read
func versionOf(trx *transaction.Handle, id objectid.ObjectId) uint64 {
	r, err := store.Fetch(trx, id)
	if nil != err {
		return 0
	}
	return r.Version
}
