// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// command line interface to the object store
//
// every command runs as one atomic transaction: either all of its
// effects are committed to the database or none are
package main
