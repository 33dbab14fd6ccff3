// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
)

// Access - staged read/write view over the pools
//
// reads see this view's own puts and deletes first (read-your-writes)
// and fall back to the committed database; writes stage into a batch
// that is applied in one step by Commit
type Access interface {
	Put(pool *PoolHandle, key []byte, value []byte)
	PutN(pool *PoolHandle, key []byte, value uint64)
	Delete(pool *PoolHandle, key []byte)
	Get(pool *PoolHandle, key []byte) []byte
	GetN(pool *PoolHandle, key []byte) (uint64, bool)
	Has(pool *PoolHandle, key []byte) bool
	Commit() error
	Abort()
}

// AccessData - the standard Access implementation
type AccessData struct {
	batch *leveldb.Batch
	cache Cache
}

// NewAccess - a fresh staged view with nothing in it
func NewAccess() Access {
	return &AccessData{
		batch: new(leveldb.Batch),
		cache: NewCache(),
	}
}

// Put - stage a key/value pair
func (d *AccessData) Put(pool *PoolHandle, key []byte, value []byte) {
	prefixedKey := pool.prefixKey(key)
	d.cache.Set(DBPut, string(prefixedKey), value)
	d.batch.Put(prefixedKey, value)
}

// PutN - stage a big endian uint64 value
func (d *AccessData) PutN(pool *PoolHandle, key []byte, value uint64) {
	d.Put(pool, key, uint64ToBytes(value))
}

// Delete - stage removal of a key
func (d *AccessData) Delete(pool *PoolHandle, key []byte) {
	prefixedKey := pool.prefixKey(key)
	d.cache.Set(DBDelete, string(prefixedKey), nil)
	d.batch.Delete(prefixedKey)
}

// Get - read through the staged view
//
// returns nil if the key is absent or staged as deleted
func (d *AccessData) Get(pool *PoolHandle, key []byte) []byte {
	value, op, found := d.cache.Get(string(pool.prefixKey(key)))
	if found {
		if DBDelete == op {
			return nil
		}
		return value
	}
	return pool.Get(key)
}

// GetN - read through the staged view and decode 8 big endian bytes
func (d *AccessData) GetN(pool *PoolHandle, key []byte) (uint64, bool) {
	value, op, found := d.cache.Get(string(pool.prefixKey(key)))
	if found {
		if DBDelete == op {
			return 0, false
		}
		if len(value) < uint64ByteSize {
			return 0, false
		}
		return bytesToUint64(value), true
	}
	return pool.GetN(key)
}

// Has - check a key through the staged view
func (d *AccessData) Has(pool *PoolHandle, key []byte) bool {
	_, op, found := d.cache.Get(string(pool.prefixKey(key)))
	if found {
		return DBDelete != op
	}
	return pool.Has(key)
}

// Commit - apply every staged change to the database in one write
func (d *AccessData) Commit() error {
	err := WriteBatch(d.batch)
	if nil != err {
		return err
	}
	d.batch.Reset()
	d.cache.Clear()
	return nil
}

// Abort - discard every staged change
func (d *AccessData) Abort() {
	d.batch.Reset()
	d.cache.Clear()
}
