// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package objectid_test

import (
	"sync"
	"testing"

	"github.com/Sui-Community-Network/objectstore/objectid"
)

func TestNewIsDeterministic(t *testing.T) {
	entropy := []byte{0x01, 0x02, 0x03, 0x04}

	a := objectid.New(entropy, 1)
	b := objectid.New(entropy, 1)
	if a != b {
		t.Errorf("same entropy and sequence produced different ids: %s  %s", a, b)
	}

	c := objectid.New(entropy, 2)
	if a == c {
		t.Errorf("different sequence produced the same id: %s", a)
	}
}

func TestTextRoundTrip(t *testing.T) {
	id := objectid.New([]byte("entropy"), 42)

	text, err := id.MarshalText()
	if nil != err {
		t.Fatalf("marshal error: %s", err)
	}

	var restored objectid.ObjectId
	err = restored.UnmarshalText(text)
	if nil != err {
		t.Fatalf("unmarshal error: %s", err)
	}
	if id != restored {
		t.Errorf("round trip changed id: %s → %s", id, restored)
	}
}

func TestIsZero(t *testing.T) {
	var zero objectid.ObjectId
	if !zero.IsZero() {
		t.Errorf("zero id is not zero")
	}
	id := objectid.New([]byte{0xff}, 1)
	if id.IsZero() {
		t.Errorf("allocated id is zero")
	}
}

// uniqueness property: concurrent allocations never collide
func TestAllocatorUniqueness(t *testing.T) {
	const workers = 8
	const each = 500

	allocator := objectid.NewAllocator(0)

	var lock sync.Mutex
	seen := make(map[objectid.ObjectId]struct{}, workers*each)

	var wg sync.WaitGroup
	for i := 0; i < workers; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < each; j += 1 {
				id, _ := allocator.Next()
				lock.Lock()
				if _, ok := seen[id]; ok {
					t.Errorf("duplicate id: %s", id)
				}
				seen[id] = struct{}{}
				lock.Unlock()
			}
		}()
	}
	wg.Wait()

	if workers*each != len(seen) {
		t.Errorf("allocated: %d  expected: %d", len(seen), workers*each)
	}
	if workers*each != int(allocator.Sequence()) {
		t.Errorf("sequence: %d  expected: %d", allocator.Sequence(), workers*each)
	}
}

// two allocators resuming from the same sequence must still differ
// because of per-process entropy
func TestAllocatorEntropy(t *testing.T) {
	a := objectid.NewAllocator(0)
	b := objectid.NewAllocator(0)

	idA, _ := a.Next()
	idB, _ := b.Next()
	if idA == idB {
		t.Errorf("two allocators produced the same id: %s", idA)
	}
}
