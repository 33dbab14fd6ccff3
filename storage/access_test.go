// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sui-Community-Network/objectstore/storage"
)

func TestReadYourWrites(t *testing.T) {
	setup(t)
	defer teardown(t)

	access := storage.NewAccess()

	key := []byte("key-one")
	value := []byte("data-one")

	assert.Nil(t, access.Get(storage.Pool.TestData, key), "value visible before put")

	access.Put(storage.Pool.TestData, key, value)
	assert.Equal(t, value, access.Get(storage.Pool.TestData, key), "staged put not visible to own reads")
	assert.True(t, access.Has(storage.Pool.TestData, key), "staged put not visible to Has")

	// not yet committed, so the committed view must not see it
	assert.Nil(t, storage.Pool.TestData.Get(key), "staged put leaked to committed view")
}

func TestReadYourDeletes(t *testing.T) {
	setup(t)
	defer teardown(t)

	key := []byte("key-two")
	value := []byte("data-two")
	storage.Pool.TestData.Put(key, value)

	access := storage.NewAccess()
	access.Delete(storage.Pool.TestData, key)

	assert.Nil(t, access.Get(storage.Pool.TestData, key), "staged delete does not hide committed value")
	assert.False(t, access.Has(storage.Pool.TestData, key), "staged delete does not hide Has")

	// committed view unaffected until commit
	assert.Equal(t, value, storage.Pool.TestData.Get(key), "delete applied before commit")
}

func TestCommitPublishes(t *testing.T) {
	setup(t)
	defer teardown(t)

	keyOne := []byte("key-one")
	keyTwo := []byte("key-two")

	storage.Pool.TestData.Put(keyTwo, []byte("old"))

	access := storage.NewAccess()
	access.Put(storage.Pool.TestData, keyOne, []byte("new"))
	access.Delete(storage.Pool.TestData, keyTwo)

	err := access.Commit()
	assert.Nil(t, err, "commit error")

	assert.Equal(t, []byte("new"), storage.Pool.TestData.Get(keyOne), "committed put missing")
	assert.Nil(t, storage.Pool.TestData.Get(keyTwo), "committed delete missing")
}

func TestAbortDiscards(t *testing.T) {
	setup(t)
	defer teardown(t)

	key := []byte("key-three")

	access := storage.NewAccess()
	access.Put(storage.Pool.TestData, key, []byte("doomed"))
	access.Abort()

	assert.Nil(t, access.Get(storage.Pool.TestData, key), "aborted put still visible to staged view")
	assert.Nil(t, storage.Pool.TestData.Get(key), "aborted put leaked to committed view")
}

func TestPutNGetN(t *testing.T) {
	setup(t)
	defer teardown(t)

	key := []byte("counter")

	access := storage.NewAccess()

	_, found := access.GetN(storage.Pool.TestData, key)
	assert.False(t, found, "missing counter was found")

	access.PutN(storage.Pool.TestData, key, 42)
	n, found := access.GetN(storage.Pool.TestData, key)
	assert.True(t, found, "staged counter not found")
	assert.Equal(t, uint64(42), n, "staged counter value")

	err := access.Commit()
	assert.Nil(t, err, "commit error")

	n, found = storage.Pool.TestData.GetN(key)
	assert.True(t, found, "committed counter not found")
	assert.Equal(t, uint64(42), n, "committed counter value")
}

// two independent staged views must not see each other before commit
func TestIsolation(t *testing.T) {
	setup(t)
	defer teardown(t)

	key := []byte("contended")

	one := storage.NewAccess()
	two := storage.NewAccess()

	one.Put(storage.Pool.TestData, key, []byte("one"))
	assert.Nil(t, two.Get(storage.Pool.TestData, key), "staged put visible to another view")

	err := one.Commit()
	assert.Nil(t, err, "commit error")
	assert.Equal(t, []byte("one"), two.Get(storage.Pool.TestData, key), "committed value not visible")
}
