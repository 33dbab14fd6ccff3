// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/Sui-Community-Network/objectstore/fault"
	"github.com/Sui-Community-Network/objectstore/objectid"
	"github.com/Sui-Community-Network/objectstore/record"
	"github.com/Sui-Community-Network/objectstore/storage"
)

// State - the transaction life cycle
type State int

// all possible states
const (
	StatePending   State = iota // begun, nothing staged yet
	StateStaged    State = iota // at least one staged effect
	StateCommitted State = iota // published, terminal
	StateAborted   State = iota // discarded, terminal
)

// String - printable state for logging
func (state State) String() string {
	switch state {
	case StatePending:
		return "pending"
	case StateStaged:
		return "staged"
	case StateCommitted:
		return "committed"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// the committed version observed by the first read of an object
type readVersion struct {
	version uint64
	exists  bool
}

// the committed value observed by the first counted read of a pool key
type counterRead struct {
	pool   *storage.PoolHandle
	key    []byte
	value  uint64
	exists bool
}

// Handle - one in-flight transaction with its isolated staged view
type Handle struct {
	sync.Mutex
	access    storage.Access
	state     State
	reads     map[objectid.ObjectId]readVersion
	counters  map[string]counterRead
	allocated bool
}

// Begin - start a transaction
func Begin() (*Handle, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	return &Handle{
		access:   storage.NewAccess(),
		state:    StatePending,
		reads:    make(map[objectid.ObjectId]readVersion),
		counters: make(map[string]counterRead),
	}, nil
}

// State - current state of the transaction
func (h *Handle) State() State {
	h.Lock()
	defer h.Unlock()
	return h.state
}

// IsActive - the transaction can still accept operations
func (h *Handle) IsActive() bool {
	h.Lock()
	defer h.Unlock()
	return StatePending == h.state || StateStaged == h.state
}

// active check without the lock, for internal use while holding it
func (h *Handle) isActive() bool {
	return StatePending == h.state || StateStaged == h.state
}

// Allocate - issue a fresh object id
//
// the id is usable immediately; the persisted high-water mark is
// staged at commit so it is published atomically with the objects
// that reference the allocated ids
func (h *Handle) Allocate() (objectid.ObjectId, error) {
	h.Lock()
	defer h.Unlock()

	if !h.isActive() {
		return objectid.ObjectId{}, fault.TransactionClosed
	}

	id, _ := globalData.allocator.Next()
	h.allocated = true
	h.state = StateStaged
	return id, nil
}

// recordRead - remember the committed version of an object the first
// time this transaction touches it
//
// always reads the committed state: the handle's own staged changes
// must not mask the version this view is based on
func (h *Handle) recordRead(id objectid.ObjectId) {
	if _, ok := h.reads[id]; ok {
		return
	}

	rv := readVersion{}
	packed := storage.Pool.Objects.Get(id[:])
	if nil != packed {
		r, err := record.Packed(packed).Unpack(id)
		if nil != err {
			globalData.log.Criticalf("corrupt object record for id: %s  error: %s", id, err)
			logger.Panic("transaction: object store corrupt")
		}
		rv.version = r.Version
		rv.exists = true
	}
	h.reads[id] = rv
}

// FetchRecord - read an object record through the staged view
//
// returns fault.ObjectNotFound if the record is absent or staged as
// deleted; wrapped records are returned, visibility rules are the
// caller's concern
func (h *Handle) FetchRecord(id objectid.ObjectId) (*record.ObjectRecord, error) {
	h.Lock()
	defer h.Unlock()

	if !h.isActive() {
		return nil, fault.TransactionClosed
	}

	h.recordRead(id)

	packed := h.access.Get(storage.Pool.Objects, id[:])
	if nil == packed {
		return nil, fault.ObjectNotFound
	}
	return record.Packed(packed).Unpack(id)
}

// StageRecord - pack a record and stage it under its id
func (h *Handle) StageRecord(r *record.ObjectRecord) error {
	h.Lock()
	defer h.Unlock()

	if !h.isActive() {
		return fault.TransactionClosed
	}

	packed, err := r.Pack()
	if nil != err {
		return err
	}
	h.access.Put(storage.Pool.Objects, r.Id[:], packed)
	h.state = StateStaged
	return nil
}

// DeleteRecord - stage removal of a record
//
// the version the transaction is based on is recorded so a concurrent
// mutation of the same object is detected at commit
func (h *Handle) DeleteRecord(id objectid.ObjectId) error {
	h.Lock()
	defer h.Unlock()

	if !h.isActive() {
		return fault.TransactionClosed
	}

	h.recordRead(id)
	h.access.Delete(storage.Pool.Objects, id[:])
	h.state = StateStaged
	return nil
}

// Put - stage a key/value pair into an index pool
//
// a closed handle stages nothing
func (h *Handle) Put(pool *storage.PoolHandle, key []byte, value []byte) {
	h.Lock()
	defer h.Unlock()
	if !h.isActive() {
		return
	}
	h.access.Put(pool, key, value)
	h.state = StateStaged
}

// PutN - stage a big endian uint64 into an index pool
//
// a closed handle stages nothing
func (h *Handle) PutN(pool *storage.PoolHandle, key []byte, value uint64) {
	h.Lock()
	defer h.Unlock()
	if !h.isActive() {
		return
	}
	h.access.PutN(pool, key, value)
	h.state = StateStaged
}

// Delete - stage removal of an index pool key
//
// a closed handle stages nothing
func (h *Handle) Delete(pool *storage.PoolHandle, key []byte) {
	h.Lock()
	defer h.Unlock()
	if !h.isActive() {
		return
	}
	h.access.Delete(pool, key)
	h.state = StateStaged
}

// Get - read an index pool key through the staged view
//
// nil on a closed handle, its staged view is already discarded
func (h *Handle) Get(pool *storage.PoolHandle, key []byte) []byte {
	h.Lock()
	defer h.Unlock()
	if !h.isActive() {
		return nil
	}
	return h.access.Get(pool, key)
}

// GetN - read a count through the staged view
func (h *Handle) GetN(pool *storage.PoolHandle, key []byte) (uint64, bool) {
	h.Lock()
	defer h.Unlock()
	if !h.isActive() {
		return 0, false
	}
	return h.access.GetN(pool, key)
}

// CountN - read a count through the staged view, remembering the
// committed value the transaction is based on
//
// read-modify-write counters outside the object pool are invisible to
// the per-object version check; recording the committed value here
// makes two transactions advancing the same counter collide at commit
// instead of both claiming the same slot
func (h *Handle) CountN(pool *storage.PoolHandle, key []byte) (uint64, bool) {
	h.Lock()
	defer h.Unlock()
	if !h.isActive() {
		return 0, false
	}

	mapKey := string(pool.PrefixedKey(key))
	if _, ok := h.counters[mapKey]; !ok {
		value, exists := pool.GetN(key)
		h.counters[mapKey] = counterRead{
			pool:   pool,
			key:    append([]byte{}, key...),
			value:  value,
			exists: exists,
		}
	}
	return h.access.GetN(pool, key)
}

// Has - check an index pool key through the staged view
func (h *Handle) Has(pool *storage.PoolHandle, key []byte) bool {
	h.Lock()
	defer h.Unlock()
	if !h.isActive() {
		return false
	}
	return h.access.Has(pool, key)
}

// Fail - mark the transaction aborted after an operation error
//
// a failed operation poisons the whole batch: effects staged by
// earlier operations are discarded as well
func (h *Handle) Fail() {
	h.Lock()
	defer h.Unlock()

	if !h.isActive() {
		return
	}
	h.access.Abort()
	h.state = StateAborted
}

// Abort - discard all staged effects, always succeeds
func (h *Handle) Abort() error {
	h.Lock()
	defer h.Unlock()

	if StateCommitted == h.state {
		return fault.TransactionClosed
	}
	h.access.Abort()
	h.state = StateAborted
	return nil
}

// Commit - atomically publish every staged effect
//
// under the global commit lock every object read or mutated by this
// transaction, and every counter read through CountN, is checked
// against the committed store; if another transaction advanced any of
// them in the meantime the whole batch is discarded with
// fault.TransactionConflict
func (h *Handle) Commit() error {
	h.Lock()
	defer h.Unlock()

	if !h.isActive() {
		return fault.TransactionClosed
	}

	globalData.commitLock.Lock()
	defer globalData.commitLock.Unlock()

	// optimistic concurrency check
	for id, rv := range h.reads {
		packed := storage.Pool.Objects.Get(id[:])
		if nil == packed {
			if rv.exists {
				return h.conflict(id)
			}
			continue
		}
		if !rv.exists {
			return h.conflict(id)
		}
		r, err := record.Packed(packed).Unpack(id)
		if nil != err {
			globalData.log.Criticalf("corrupt object record for id: %s  error: %s", id, err)
			logger.Panic("transaction: object store corrupt")
		}
		if r.Version != rv.version {
			return h.conflict(id)
		}
	}

	// counters read through CountN must be unchanged as well
	for _, cr := range h.counters {
		value, exists := cr.pool.GetN(cr.key)
		if exists != cr.exists || value != cr.value {
			return h.counterConflict(cr.key)
		}
	}

	// persist the allocator high-water mark together with the batch
	if h.allocated {
		h.access.PutN(storage.Pool.Allocator, storage.AllocatorKey, globalData.allocator.Sequence())
	}

	err := h.access.Commit()
	if nil != err {
		h.state = StateAborted
		return err
	}

	h.state = StateCommitted
	return nil
}

// under both locks: discard and report the losing object
func (h *Handle) conflict(id objectid.ObjectId) error {
	globalData.log.Debugf("commit conflict on object: %s", id)
	h.access.Abort()
	h.state = StateAborted
	return fault.TransactionConflict
}

// under both locks: discard and report the losing counter
func (h *Handle) counterConflict(key []byte) error {
	globalData.log.Debugf("commit conflict on counter: %x", key)
	h.access.Abort()
	h.state = StateAborted
	return fault.TransactionConflict
}
