// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/Sui-Community-Network/objectstore/account"
	"github.com/Sui-Community-Network/objectstore/fault"
	"github.com/Sui-Community-Network/objectstore/objectid"
	"github.com/Sui-Community-Network/objectstore/record"
	"github.com/Sui-Community-Network/objectstore/storage"
	"github.com/Sui-Community-Network/objectstore/store"
	"github.com/Sui-Community-Network/objectstore/transaction"
)

// test database file
const (
	testingDirName   = "testing"
	databaseFileName = testingDirName + "/test"
)

var (
	alice = account.Address{0xa1}
	bob   = account.Address{0xb2}
)

// remove all files created by test
func removeFiles() {
	os.RemoveAll(testingDirName)
}

// configure for testing
func setup(t *testing.T) {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	err := storage.Initialise(databaseFileName, false)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	err = transaction.Initialise()
	if nil != err {
		t.Fatalf("transaction initialise error: %s", err)
	}
}

// post test cleanup
func teardown(t *testing.T) {
	transaction.Finalise()
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

// create and commit one object for an owner
func createCommitted(t *testing.T, owner account.Address, payload string) objectid.ObjectId {
	trx, err := transaction.Begin()
	assert.Nil(t, err, "begin error")
	id, err := store.Create(trx, "test.Item", []byte(payload), owner)
	assert.Nil(t, err, "create error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")
	return id
}

func TestCreateAndRead(t *testing.T) {
	setup(t)
	defer teardown(t)

	id := createCommitted(t, alice, "hello")

	trx, err := transaction.Begin()
	assert.Nil(t, err, "begin error")
	defer trx.Abort()

	r, err := store.Read(trx, id, nil)
	assert.Nil(t, err, "read error")
	assert.Equal(t, id, r.Id, "id mismatch")
	assert.Equal(t, "test.Item", r.TypeTag, "type tag mismatch")
	assert.Equal(t, uint64(0), r.Version, "new object version not zero")
	assert.Equal(t, []byte("hello"), r.Payload, "payload mismatch")

	owned, ok := r.Owner.(record.OwnedMode)
	assert.True(t, ok, "new object not owned")
	assert.Equal(t, alice, owned.Owner, "owner mismatch")
}

func TestReadVersionCheck(t *testing.T) {
	setup(t)
	defer teardown(t)

	id := createCommitted(t, alice, "versioned")

	trx, err := transaction.Begin()
	assert.Nil(t, err, "begin error")
	defer trx.Abort()

	good := uint64(0)
	_, err = store.Read(trx, id, &good)
	assert.Nil(t, err, "read at correct version")

	bad := uint64(7)
	_, err = store.Read(trx, id, &bad)
	assert.Equal(t, fault.VersionConflict, err, "stale read accepted")
}

func TestReadMissing(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx, err := transaction.Begin()
	assert.Nil(t, err, "begin error")
	defer trx.Abort()

	missing := objectid.ObjectId{0xff}
	_, err = store.Read(trx, missing, nil)
	assert.Equal(t, fault.ObjectNotFound, err, "phantom object found")
}

func TestMutate(t *testing.T) {
	setup(t)
	defer teardown(t)

	id := createCommitted(t, alice, "before")

	trx, err := transaction.Begin()
	assert.Nil(t, err, "begin error")
	version, err := store.Mutate(trx, id, 0, func(r *record.ObjectRecord) error {
		r.Payload = []byte("after")
		return nil
	})
	assert.Nil(t, err, "mutate error")
	assert.Equal(t, uint64(1), version, "version not advanced")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	check, err := transaction.Begin()
	assert.Nil(t, err, "begin error")
	defer check.Abort()
	r, err := store.Read(check, id, nil)
	assert.Nil(t, err, "read error")
	assert.Equal(t, []byte("after"), r.Payload, "mutation lost")
	assert.Equal(t, uint64(1), r.Version, "version mismatch")
}

func TestMutateStaleVersion(t *testing.T) {
	setup(t)
	defer teardown(t)

	id := createCommitted(t, alice, "current")

	trx, err := transaction.Begin()
	assert.Nil(t, err, "begin error")
	defer trx.Abort()

	_, err = store.Mutate(trx, id, 3, func(r *record.ObjectRecord) error {
		return nil
	})
	assert.Equal(t, fault.VersionConflict, err, "stale mutate accepted")
}

func TestMutatorCannotForgeIdentity(t *testing.T) {
	setup(t)
	defer teardown(t)

	id := createCommitted(t, alice, "guarded")

	trx, err := transaction.Begin()
	assert.Nil(t, err, "begin error")
	_, err = store.Mutate(trx, id, 0, func(r *record.ObjectRecord) error {
		r.Id = objectid.ObjectId{0xee}
		r.Version = 99
		r.Owner = record.OwnedMode{Owner: bob}
		return nil
	})
	assert.Nil(t, err, "mutate error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	check, err := transaction.Begin()
	assert.Nil(t, err, "begin error")
	defer check.Abort()
	r, err := store.Read(check, id, nil)
	assert.Nil(t, err, "read error")
	assert.Equal(t, uint64(1), r.Version, "mutator forged version")
	owned := r.Owner.(record.OwnedMode)
	assert.Equal(t, alice, owned.Owner, "mutator forged owner")
}

func TestDelete(t *testing.T) {
	setup(t)
	defer teardown(t)

	id := createCommitted(t, alice, "temporary")

	trx, err := transaction.Begin()
	assert.Nil(t, err, "begin error")
	err = store.Delete(trx, id, 0)
	assert.Nil(t, err, "delete error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	check, err := transaction.Begin()
	assert.Nil(t, err, "begin error")
	defer check.Abort()
	_, err = store.Read(check, id, nil)
	assert.Equal(t, fault.ObjectNotFound, err, "deleted object still readable")
}

func TestDeleteStaleVersion(t *testing.T) {
	setup(t)
	defer teardown(t)

	id := createCommitted(t, alice, "still here")

	trx, err := transaction.Begin()
	assert.Nil(t, err, "begin error")
	defer trx.Abort()
	err = store.Delete(trx, id, 5)
	assert.Equal(t, fault.VersionConflict, err, "stale delete accepted")
}

func TestDeleteWithFieldsAttached(t *testing.T) {
	setup(t)
	defer teardown(t)

	id := createCommitted(t, alice, "holder")

	trx, err := transaction.Begin()
	assert.Nil(t, err, "begin error")
	defer trx.Abort()

	// simulate one attached dynamic field
	trx.PutN(storage.Pool.FieldCounts, id[:], 1)

	err = store.Delete(trx, id, 0)
	assert.Equal(t, fault.DynamicFieldsNotEmpty, err, "delete with fields accepted")
}

func TestOwnedByListing(t *testing.T) {
	setup(t)
	defer teardown(t)

	first := createCommitted(t, alice, "one")
	second := createCommitted(t, alice, "two")
	createCommitted(t, bob, "other owner")

	ids, err := store.OwnedBy(alice, 0, 10)
	assert.Nil(t, err, "owned-by error")
	assert.Equal(t, 2, len(ids), "wrong owned count")
	assert.Equal(t, first, ids[0], "allocation order lost")
	assert.Equal(t, second, ids[1], "allocation order lost")

	// deletion leaves a hole that listing tolerates
	trx, err := transaction.Begin()
	assert.Nil(t, err, "begin error")
	err = store.Delete(trx, first, 0)
	assert.Nil(t, err, "delete error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	ids, err = store.OwnedBy(alice, 0, 10)
	assert.Nil(t, err, "owned-by error")
	assert.Equal(t, 1, len(ids), "deleted object still listed")
	assert.Equal(t, second, ids[0], "survivor mismatch")
}

func TestConcurrentCreateSameOwner(t *testing.T) {
	setup(t)
	defer teardown(t)

	// both transactions read the same next-count for alice
	first, err := transaction.Begin()
	assert.Nil(t, err, "begin error")
	second, err := transaction.Begin()
	assert.Nil(t, err, "begin error")

	winner, err := store.Create(first, "test.Item", []byte("one"), alice)
	assert.Nil(t, err, "create error")
	_, err = store.Create(second, "test.Item", []byte("two"), alice)
	assert.Nil(t, err, "create error")

	err = first.Commit()
	assert.Nil(t, err, "first commit error")

	// the loser must conflict, not overwrite the claimed list slot
	err = second.Commit()
	assert.Equal(t, fault.TransactionConflict, err, "same slot committed twice")

	ids, err := store.OwnedBy(alice, 0, 10)
	assert.Nil(t, err, "owned-by error")
	assert.Equal(t, 1, len(ids), "list slot corrupted")
	assert.Equal(t, winner, ids[0], "wrong object survived")

	// a retry starts from the advanced count and lands cleanly
	retried := createCommitted(t, alice, "two again")
	ids, err = store.OwnedBy(alice, 0, 10)
	assert.Nil(t, err, "owned-by error")
	assert.Equal(t, 2, len(ids), "retried create lost")
	assert.Equal(t, retried, ids[1], "retried create out of order")
}
