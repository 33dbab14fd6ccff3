// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk object store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++        = concatenation of byte data
// 3. objectId  = 32 byte SHA3-256(entropy ++ sequence)
// 4. owner     = address (32 bytes)
// 5. count     = big endian uint64 (8 bytes)
// 6. fieldKey  = packed dynamic field key (tag byte ++ key data)
//
// Objects:
//
//   O ++ objectId            - object records
//                              data: packed object record
//   F ++ objectId ++ fieldKey - dynamic fields
//                              data: packed field value
//   C ++ objectId            - number of dynamic fields on the object
//                              data: count
//
// Ownership:
//
//   N ++ owner               - next count value to use for appending to owned items
//                              data: count
//   L ++ owner ++ count      - list of owned objects
//                              data: objectId
//   D ++ owner ++ objectId   - position in list of owned objects, for delete after transfer
//                              data: count
//
// Allocation:
//
//   I ++ 'HIGHWATER'         - allocator high-water sequence number
//                              data: count
//
// Testing:
//
//   Z ++ key                 - testing data
package storage
