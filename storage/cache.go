// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	gocache "github.com/patrickmn/go-cache"
)

// Cache - staged view of not yet committed puts and deletes
//
// a staged delete must hide the committed value, so entries carry the
// operation alongside the data
type Cache interface {
	Get(key string) ([]byte, int, bool)
	Set(op int, key string, value []byte)
	Clear()
}

// cache operations
const (
	DBPut = iota
	DBDelete
)

type cacheData struct {
	op    int
	value []byte
}

type dbCache struct {
	cache *gocache.Cache
}

// NewCache - create an empty staged view
//
// entries never expire, a transaction discards the whole cache on
// commit or abort
func NewCache() Cache {
	return &dbCache{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

func (c *dbCache) Get(key string) ([]byte, int, bool) {
	obj, found := c.cache.Get(key)
	if !found {
		return nil, DBPut, false
	}

	data := obj.(cacheData)
	return data.value, data.op, true
}

func (c *dbCache) Set(op int, key string, value []byte) {
	c.cache.Set(key, cacheData{op: op, value: value}, gocache.NoExpiration)
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}
