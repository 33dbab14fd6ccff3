// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/Sui-Community-Network/objectstore/fault"
	"github.com/Sui-Community-Network/objectstore/objectid"
	"github.com/Sui-Community-Network/objectstore/storage"
	"github.com/Sui-Community-Network/objectstore/storage/mocks"
)

// handle backed by a mocked staged view, no database required
func mockedHandle(access storage.Access) *Handle {
	return &Handle{
		access:   access,
		state:    StatePending,
		reads:    make(map[objectid.ObjectId]readVersion),
		counters: make(map[string]counterRead),
	}
}

func TestFailDiscardsStagedView(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	access := mocks.NewMockAccess(ctl)
	access.EXPECT().Abort().Times(1)

	h := mockedHandle(access)
	h.Fail()
	assert.Equal(t, StateAborted, h.State(), "fail did not abort")

	// a second failure is a no-op, Abort must not run again
	h.Fail()
}

func TestAbortAfterCommitRefused(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	access := mocks.NewMockAccess(ctl)

	h := mockedHandle(access)
	h.state = StateCommitted

	err := h.Abort()
	assert.Equal(t, fault.TransactionClosed, err, "committed transaction aborted")
}

func TestPoolWritesReachStagedView(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	key := []byte("key")
	value := []byte("value")

	access := mocks.NewMockAccess(ctl)
	access.EXPECT().Put(gomock.Any(), key, value).Times(1)
	access.EXPECT().PutN(gomock.Any(), key, uint64(7)).Times(1)
	access.EXPECT().Delete(gomock.Any(), key).Times(1)
	access.EXPECT().Get(gomock.Any(), key).Return(value).Times(1)
	access.EXPECT().Has(gomock.Any(), key).Return(true).Times(1)

	h := mockedHandle(access)
	h.Put(nil, key, value)
	h.PutN(nil, key, 7)
	h.Delete(nil, key)
	assert.Equal(t, value, h.Get(nil, key), "get not forwarded")
	assert.True(t, h.Has(nil, key), "has not forwarded")
	assert.Equal(t, StateStaged, h.State(), "writes did not stage")
}

func TestClosedHandleRefusesOperations(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	// no staged view calls may happen on a closed handle
	access := mocks.NewMockAccess(ctl)

	h := mockedHandle(access)
	h.state = StateAborted

	_, err := h.FetchRecord(objectid.ObjectId{})
	assert.Equal(t, fault.TransactionClosed, err, "fetch on closed handle")

	err = h.StageRecord(nil)
	assert.Equal(t, fault.TransactionClosed, err, "stage on closed handle")

	err = h.DeleteRecord(objectid.ObjectId{})
	assert.Equal(t, fault.TransactionClosed, err, "delete on closed handle")

	// pool accessors must not touch the discarded staged view either
	key := []byte("key")
	h.Put(nil, key, []byte("value"))
	h.PutN(nil, key, 7)
	h.Delete(nil, key)
	assert.Nil(t, h.Get(nil, key), "get on closed handle")
	count, found := h.GetN(nil, key)
	assert.Equal(t, uint64(0), count, "count on closed handle")
	assert.False(t, found, "count found on closed handle")
	assert.False(t, h.Has(nil, key), "has on closed handle")
	assert.Equal(t, StateAborted, h.State(), "closed handle changed state")
}
