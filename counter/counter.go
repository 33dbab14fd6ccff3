// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter

import (
	"sync/atomic"
)

// Counter - a counter that can be synchronously incremented or read
// just a 64 bit unsigned integer
//
// increments are never rolled back: the allocator depends on this to
// guarantee that a sequence number handed out by an aborted
// transaction is not handed out again
type Counter uint64

// Increment - add 1 to a counter, returns new value
func (ic *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(ic), 1)
}

// Uint64 - returns current value
func (ic *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(ic))
}

// Set - store an initial value, only for start up
func (ic *Counter) Set(value uint64) {
	atomic.StoreUint64((*uint64)(ic), value)
}

// IsZero - check if zero
func (ic *Counter) IsZero() bool {
	return 0 == atomic.LoadUint64((*uint64)(ic))
}
