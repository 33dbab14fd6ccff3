// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/Sui-Community-Network/objectstore/account"
	"github.com/Sui-Community-Network/objectstore/engine"
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
	alice    = account.Address{0xa1}
	bob      = account.Address{0xb2}
	aliceCap = account.NewCapability(alice)
	bobCap   = account.NewCapability(bob)
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

// run a single create and return the new id
func createOne(t *testing.T, e *engine.Engine, owner account.Address, payload string) objectid.ObjectId {
	responses, err := e.Run([]engine.Request{{
		Op:      engine.OpCreate,
		TypeTag: "test.Item",
		Payload: []byte(payload),
		Owner:   owner,
	}})
	assert.Nil(t, err, "create batch error")
	assert.Equal(t, 1, len(responses), "response count")
	return responses[0].Id
}

func TestConcurrentMutateConflict(t *testing.T) {
	setup(t)
	defer teardown(t)

	e := engine.New(aliceCap)
	id := createOne(t, e, alice, "counter: 0")

	// two transactions both based on version 0
	first, err := transaction.Begin()
	assert.Nil(t, err, "begin error")
	second, err := transaction.Begin()
	assert.Nil(t, err, "begin error")

	mutate := engine.Request{
		Op:              engine.OpMutate,
		Id:              id,
		ExpectedVersion: 0,
		Patch: func(r *record.ObjectRecord) error {
			r.Payload = []byte("counter: 1")
			return nil
		},
	}

	response, err := e.Execute(first, mutate)
	assert.Nil(t, err, "first mutate error")
	assert.Equal(t, uint64(1), response.Version, "version not advanced")

	_, err = e.Execute(second, mutate)
	assert.Nil(t, err, "second mutate error")

	err = first.Commit()
	assert.Nil(t, err, "first commit error")

	// the loser must fail with a conflict and leave no trace
	err = second.Commit()
	assert.Equal(t, fault.TransactionConflict, err, "stale commit accepted")

	check, err := transaction.Begin()
	assert.Nil(t, err, "begin error")
	defer check.Abort()
	r, err := store.Read(check, id, nil)
	assert.Nil(t, err, "read error")
	assert.Equal(t, uint64(1), r.Version, "final version mismatch")
	assert.Equal(t, []byte("counter: 1"), r.Payload, "final payload mismatch")
}

func TestTransferChain(t *testing.T) {
	setup(t)
	defer teardown(t)

	aliceEngine := engine.New(aliceCap)
	bobEngine := engine.New(bobCap)

	id := createOne(t, aliceEngine, alice, "nft")

	// alice hands the object to bob
	responses, err := aliceEngine.Run([]engine.Request{{
		Op:              engine.OpTransfer,
		Id:              id,
		ExpectedVersion: 0,
		Owner:           bob,
	}})
	assert.Nil(t, err, "transfer batch error")
	assert.Equal(t, uint64(1), responses[0].Version, "transfer version")

	// alice no longer controls it
	_, err = aliceEngine.Run([]engine.Request{{
		Op:              engine.OpTransfer,
		Id:              id,
		ExpectedVersion: 1,
		Owner:           alice,
	}})
	assert.Equal(t, fault.NotOwner, err, "stale owner still in control")

	// bob does
	responses, err = bobEngine.Run([]engine.Request{{
		Op:              engine.OpTransfer,
		Id:              id,
		ExpectedVersion: 1,
		Owner:           alice,
	}})
	assert.Nil(t, err, "return transfer error")
	assert.Equal(t, uint64(2), responses[0].Version, "return transfer version")
}

func TestWrapUnwrapVisibility(t *testing.T) {
	setup(t)
	defer teardown(t)

	e := engine.New(aliceCap)
	parent := createOne(t, e, alice, "box")
	child := createOne(t, e, alice, "gem")

	_, err := e.Run([]engine.Request{{
		Op:              engine.OpWrap,
		Id:              child,
		Parent:          parent,
		ExpectedVersion: 0,
	}})
	assert.Nil(t, err, "wrap batch error")

	// invisible while wrapped
	_, err = e.Run([]engine.Request{{
		Op: engine.OpRead,
		Id: child,
	}})
	assert.Equal(t, fault.ObjectNotFound, err, "wrapped object readable")

	_, err = e.Run([]engine.Request{{
		Op:     engine.OpUnwrap,
		Id:     child,
		Parent: parent,
	}})
	assert.Nil(t, err, "unwrap batch error")

	responses, err := e.Run([]engine.Request{{
		Op: engine.OpRead,
		Id: child,
	}})
	assert.Nil(t, err, "read after unwrap error")
	assert.Equal(t, []byte("gem"), responses[0].Record.Payload, "payload mismatch")
}

func TestBatchAtomicity(t *testing.T) {
	setup(t)
	defer teardown(t)

	e := engine.New(aliceCap)
	id := createOne(t, e, alice, "stable")

	// op3 fails so op1 and op2 must leave no trace
	_, err := e.Run([]engine.Request{
		{
			Op:              engine.OpMutate,
			Id:              id,
			ExpectedVersion: 0,
			Payload:         []byte("changed"),
		},
		{
			Op:      engine.OpCreate,
			TypeTag: "test.Extra",
			Payload: []byte("extra"),
			Owner:   alice,
		},
		{
			Op: engine.OpRead,
			Id: objectid.ObjectId{0xff}, // does not exist
		},
	})
	assert.Equal(t, fault.ObjectNotFound, err, "failing batch accepted")

	check, err := transaction.Begin()
	assert.Nil(t, err, "begin error")
	defer check.Abort()
	r, err := store.Read(check, id, nil)
	assert.Nil(t, err, "read error")
	assert.Equal(t, uint64(0), r.Version, "aborted mutation leaked")
	assert.Equal(t, []byte("stable"), r.Payload, "aborted payload leaked")

	ids, err := store.OwnedBy(alice, 0, 10)
	assert.Nil(t, err, "owned-by error")
	assert.Equal(t, 1, len(ids), "aborted creation leaked")
}

func TestFieldOperationsBatch(t *testing.T) {
	setup(t)
	defer teardown(t)

	e := engine.New(aliceCap)
	holder := createOne(t, e, alice, "bag")

	responses, err := e.Run([]engine.Request{
		{
			Op:    engine.OpFieldAdd,
			Id:    holder,
			Key:   record.StringKey("level"),
			Value: record.IntegerValue(9),
		},
		{
			Op:  engine.OpFieldBorrow,
			Id:  holder,
			Key: record.StringKey("level"),
		},
		{
			Op:  engine.OpFieldRemove,
			Id:  holder,
			Key: record.StringKey("level"),
		},
	})
	assert.Nil(t, err, "field batch error")
	assert.Equal(t, record.IntegerValue(9), responses[1].Value, "borrowed value mismatch")
	assert.Equal(t, record.IntegerValue(9), responses[2].Value, "removed value mismatch")

	// attach and detach each advanced the holder, so it is at version 2
	_, err = e.Run([]engine.Request{{
		Op:              engine.OpDelete,
		Id:              holder,
		ExpectedVersion: 2,
	}})
	assert.Nil(t, err, "delete batch error")
}

func TestSharedObjectAnyCapability(t *testing.T) {
	setup(t)
	defer teardown(t)

	aliceEngine := engine.New(aliceCap)
	bobEngine := engine.New(bobCap)

	id := createOne(t, aliceEngine, alice, "commons")

	_, err := aliceEngine.Run([]engine.Request{{
		Op:              engine.OpShare,
		Id:              id,
		ExpectedVersion: 0,
	}})
	assert.Nil(t, err, "share batch error")

	// bob may now mutate the shared object
	responses, err := bobEngine.Run([]engine.Request{{
		Op:              engine.OpMutate,
		Id:              id,
		ExpectedVersion: 1,
		Payload:         []byte("updated by bob"),
	}})
	assert.Nil(t, err, "shared mutate error")
	assert.Equal(t, uint64(2), responses[0].Version, "shared mutate version")

	// but nobody may transfer or freeze it
	_, err = bobEngine.Run([]engine.Request{{
		Op:              engine.OpFreeze,
		Id:              id,
		ExpectedVersion: 2,
	}})
	assert.Equal(t, fault.NotOwner, err, "shared object frozen")
}

func TestInvalidOperation(t *testing.T) {
	setup(t)
	defer teardown(t)

	e := engine.New(aliceCap)
	_, err := e.Run([]engine.Request{{Op: engine.Op(99)}})
	assert.Equal(t, fault.InvalidOperation, err, "unknown operation accepted")
}
