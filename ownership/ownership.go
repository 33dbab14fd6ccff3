// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ownership - transitions between object ownership modes
//
// legal transitions:
//
//   Owned    -> Owned     transfer to another address
//   Owned    -> Shared    share, irreversible
//   Owned    -> Immutable freeze, terminal
//   Owned    -> Wrapped   wrap into a parent object
//   Wrapped  -> Owned     unwrap by the wrapping parent
//
// shared objects stay shared, frozen objects admit no operation at
// all, and a wrapped object can only be reached through its parent
package ownership

import (
	"github.com/Sui-Community-Network/objectstore/account"
	"github.com/Sui-Community-Network/objectstore/fault"
	"github.com/Sui-Community-Network/objectstore/objectid"
	"github.com/Sui-Community-Network/objectstore/record"
	"github.com/Sui-Community-Network/objectstore/store"
	"github.com/Sui-Community-Network/objectstore/transaction"
)

// CanMutate - whether a capability may change an object's state
//
// owned objects answer only to their owner, shared objects to any
// capability; frozen and wrapped objects cannot be mutated directly
func CanMutate(cap account.Capability, r *record.ObjectRecord) bool {
	switch mode := r.Owner.(type) {
	case record.OwnedMode:
		return cap.Is(mode.Owner)
	case record.SharedMode:
		return true
	default:
		return false
	}
}

// Transfer - move an owned object to a new owner
func Transfer(
	trx *transaction.Handle,
	cap account.Capability,
	id objectid.ObjectId,
	expectedVersion uint64,
	newOwner account.Address,
) (uint64, error) {

	r, oldOwner, err := fetchOwned(trx, cap, id, expectedVersion)
	if nil != err {
		return 0, err
	}

	r.Owner = record.OwnedMode{Owner: newOwner}
	r.Version += 1
	err = trx.StageRecord(r)
	if nil != err {
		return 0, err
	}

	store.RemoveFromOwnerList(trx, oldOwner, id)
	store.AddToOwnerList(trx, newOwner, id)
	return r.Version, nil
}

// Share - make an owned object accessible to every capability
//
// the transition cannot be undone, there is no way back to owned
func Share(
	trx *transaction.Handle,
	cap account.Capability,
	id objectid.ObjectId,
	expectedVersion uint64,
) (uint64, error) {

	r, oldOwner, err := fetchOwned(trx, cap, id, expectedVersion)
	if nil != err {
		return 0, err
	}

	r.Owner = record.SharedMode{}
	r.Version += 1
	err = trx.StageRecord(r)
	if nil != err {
		return 0, err
	}

	store.RemoveFromOwnerList(trx, oldOwner, id)
	return r.Version, nil
}

// Freeze - make an owned object permanently read only
func Freeze(
	trx *transaction.Handle,
	cap account.Capability,
	id objectid.ObjectId,
	expectedVersion uint64,
) (uint64, error) {

	r, oldOwner, err := fetchOwned(trx, cap, id, expectedVersion)
	if nil != err {
		return 0, err
	}

	r.Owner = record.ImmutableMode{}
	r.Version += 1
	err = trx.StageRecord(r)
	if nil != err {
		return 0, err
	}

	store.RemoveFromOwnerList(trx, oldOwner, id)
	return r.Version, nil
}

// Wrap - absorb an owned object into a parent object
//
// the wrapped object disappears from top level reads and from its
// owner's list until the parent unwraps it again
func Wrap(
	trx *transaction.Handle,
	cap account.Capability,
	id objectid.ObjectId,
	expectedVersion uint64,
	parent objectid.ObjectId,
) (uint64, error) {

	// an object wrapped into itself would be unreachable forever
	if id == parent {
		return 0, fault.InvalidOperation
	}

	err := checkParentAccess(trx, cap, parent)
	if nil != err {
		return 0, err
	}

	r, oldOwner, err := fetchOwned(trx, cap, id, expectedVersion)
	if nil != err {
		return 0, err
	}

	r.Owner = record.WrappedMode{Parent: parent}
	r.Version += 1
	err = trx.StageRecord(r)
	if nil != err {
		return 0, err
	}

	store.RemoveFromOwnerList(trx, oldOwner, id)
	return r.Version, nil
}

// Unwrap - release a wrapped object back to an owner
//
// only the parent recorded at wrap time can release the object; the
// released object is owned by the capability's signer
func Unwrap(
	trx *transaction.Handle,
	cap account.Capability,
	id objectid.ObjectId,
	parent objectid.ObjectId,
) (uint64, error) {

	err := checkParentAccess(trx, cap, parent)
	if nil != err {
		return 0, err
	}

	r, err := store.Fetch(trx, id)
	if nil != err {
		return 0, err
	}

	wrapped, ok := r.Owner.(record.WrappedMode)
	if !ok {
		return 0, fault.NotWrappedByParent
	}
	if wrapped.Parent != parent {
		return 0, fault.NotWrappedByParent
	}

	r.Owner = record.OwnedMode{Owner: cap.Signer}
	r.Version += 1
	err = trx.StageRecord(r)
	if nil != err {
		return 0, err
	}

	store.AddToOwnerList(trx, cap.Signer, id)
	return r.Version, nil
}

// the capability must be able to mutate the parent of a wrap pair
func checkParentAccess(trx *transaction.Handle, cap account.Capability, parent objectid.ObjectId) error {

	parentRecord, err := store.Fetch(trx, parent)
	if nil != err {
		return err
	}

	switch parentRecord.Owner.Tag() {
	case record.WrappedTag:
		return fault.ObjectNotFound
	case record.ImmutableTag:
		return fault.ObjectFrozen
	}
	if !CanMutate(cap, parentRecord) {
		return fault.NotOwner
	}
	return nil
}

// fetch an object that must be owned by the capability's signer
//
// the errors mirror what a caller can act on: a wrapped object is
// simply not found, a frozen one refuses with frozen and a shared one
// with not-owner; the version is compared last so a stale caller
// still learns the real reason the transition can never succeed
func fetchOwned(
	trx *transaction.Handle,
	cap account.Capability,
	id objectid.ObjectId,
	expectedVersion uint64,
) (*record.ObjectRecord, account.Address, error) {

	r, err := store.Fetch(trx, id)
	if nil != err {
		return nil, account.Address{}, err
	}

	switch mode := r.Owner.(type) {
	case record.OwnedMode:
		if !cap.Is(mode.Owner) {
			return nil, account.Address{}, fault.NotOwner
		}
		if expectedVersion != r.Version {
			return nil, account.Address{}, fault.VersionConflict
		}
		return r, mode.Owner, nil
	case record.WrappedMode:
		return nil, account.Address{}, fault.ObjectNotFound
	case record.ImmutableMode:
		return nil, account.Address{}, fault.ObjectFrozen
	default:
		// shared objects have no owner to authorise a transition
		return nil, account.Address{}, fault.NotOwner
	}
}
