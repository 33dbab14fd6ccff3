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
	"github.com/Sui-Community-Network/objectstore/storage"
)

// global transaction state
var globalData struct {
	sync.RWMutex
	log       *logger.L
	allocator *objectid.Allocator

	// the single serialisation point for commits
	commitLock sync.Mutex

	// set once during initialise
	initialised bool
}

// Initialise - set up the transaction system
//
// storage must already be initialised as the allocator resumes from
// the persisted high-water sequence number
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}
	if !storage.IsInitialised() {
		return fault.DatabaseIsNotSet
	}

	globalData.log = logger.New("transaction")
	globalData.log.Info("starting…")

	highWater, _ := storage.Pool.Allocator.GetN(storage.AllocatorKey)
	globalData.allocator = objectid.NewAllocator(highWater)
	globalData.log.Infof("allocator high-water: %d", highWater)

	globalData.initialised = true
	return nil
}

// Finalise - shut down the transaction system
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.allocator = nil
	globalData.initialised = false
	return nil
}
