// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transaction - all-or-nothing batches of object operations
//
// every transaction owns an isolated staged view of the store; reads
// fall through to the committed database and record the version they
// observed, writes stage into a private batch invisible to any other
// transaction
//
// commit is the only serialisation point: under a single global lock
// every recorded read is checked against the now committed state and
// the whole batch is either published in one database write or
// discarded; first committer wins, the loser receives a conflict
// error and its effects never become visible
//
// identifier allocation is also handled here because the allocator
// high-water mark must persist atomically with the commit that first
// references the allocated ids; the in-memory sequence itself only
// moves forward, aborted transactions leave gaps, never reuse
package transaction
