// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"encoding/binary"

	"github.com/Sui-Community-Network/objectstore/account"
	"github.com/Sui-Community-Network/objectstore/objectid"
	"github.com/Sui-Community-Network/objectstore/storage"
	"github.com/Sui-Community-Network/objectstore/transaction"
)

// owner index layout
//
//   N ++ owner               -> next count
//   L ++ owner ++ count      -> object id
//   D ++ owner ++ object id  -> count
//
// the count only increases so removal leaves a hole in L; listing
// tolerates holes by iterating the keys that exist

// AddToOwnerList - stage the index entries linking an object to its owner
//
// the next-count read goes into the commit read set: two transactions
// claiming the same slot for one owner conflict instead of silently
// overwriting each other's list entry
func AddToOwnerList(trx *transaction.Handle, owner account.Address, id objectid.ObjectId) {

	count, _ := trx.CountN(storage.Pool.OwnerNextCount, owner[:])
	countBytes := make([]byte, countByteSize)
	binary.BigEndian.PutUint64(countBytes, count)

	listKey := append(append([]byte{}, owner[:]...), countBytes...)
	indexKey := append(append([]byte{}, owner[:]...), id[:]...)

	trx.Put(storage.Pool.OwnerList, listKey, id[:])
	trx.Put(storage.Pool.OwnerIndex, indexKey, countBytes)
	trx.PutN(storage.Pool.OwnerNextCount, owner[:], count+1)
}

// RemoveFromOwnerList - stage removal of an object's owner index entries
func RemoveFromOwnerList(trx *transaction.Handle, owner account.Address, id objectid.ObjectId) {

	indexKey := append(append([]byte{}, owner[:]...), id[:]...)
	countBytes := trx.Get(storage.Pool.OwnerIndex, indexKey)
	if nil == countBytes {
		// nothing indexed for this owner/object pair
		return
	}

	listKey := append(append([]byte{}, owner[:]...), countBytes...)
	trx.Delete(storage.Pool.OwnerList, listKey)
	trx.Delete(storage.Pool.OwnerIndex, indexKey)
}

// OwnedBy - list committed objects held by an owner
//
// iterates the owner's slice of the list pool in allocation order;
// only committed state is visible here, staged changes from open
// transactions are not
func OwnedBy(owner account.Address, start uint64, limit int) ([]objectid.ObjectId, error) {

	if limit <= 0 {
		limit = defaultListLimit
	}

	startBytes := make([]byte, countByteSize)
	binary.BigEndian.PutUint64(startBytes, start)

	cursor := storage.Pool.OwnerList.NewFetchCursor()
	cursor.Seek(append(append([]byte{}, owner[:]...), startBytes...))

	items, err := cursor.Fetch(limit)
	if nil != err {
		return nil, err
	}

	ids := make([]objectid.ObjectId, 0, len(items))
	for _, item := range items {
		if len(item.Key) != len(owner)+countByteSize {
			break // past this owner's slice
		}
		var ownerKey account.Address
		copy(ownerKey[:], item.Key[:len(owner)])
		if ownerKey != owner {
			break
		}
		var id objectid.ObjectId
		err := objectid.FromBytes(&id, item.Value)
		if nil != err {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

const (
	countByteSize    = 8
	defaultListLimit = 100
)
