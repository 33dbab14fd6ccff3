// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package objectid

import (
	"github.com/google/uuid"

	"github.com/Sui-Community-Network/objectstore/counter"
)

// Allocator - issues identifiers that never repeat
//
// the sequence counter only ever moves forward, even when the
// enclosing transaction aborts, and the per-process entropy keeps ids
// from separate store instances or process restarts distinct; the
// caller is responsible for persisting the high-water sequence along
// with its transaction commit
type Allocator struct {
	entropy  [16]byte
	sequence counter.Counter
}

// NewAllocator - create an allocator resuming after a persisted
// high-water sequence number
func NewAllocator(lastSequence uint64) *Allocator {
	a := &Allocator{}
	entropy := uuid.New()
	copy(a.entropy[:], entropy[:])
	a.sequence.Set(lastSequence)
	return a
}

// Next - allocate a fresh id
//
// also returns the sequence number to persist as the new high-water
// mark
func (a *Allocator) Next() (ObjectId, uint64) {
	sequence := a.sequence.Increment()
	return New(a.entropy[:], sequence), sequence
}

// Sequence - current high-water mark
func (a *Allocator) Sequence() uint64 {
	return a.sequence.Uint64()
}
