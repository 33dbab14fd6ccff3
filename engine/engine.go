// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package engine - run ordered operation batches as one transaction
//
// each request is resolved against the transaction's staged view in
// order; the first failing operation poisons the batch and nothing
// becomes visible, a fully successful batch commits in one step
package engine

import (
	"github.com/bitmark-inc/logger"

	"github.com/Sui-Community-Network/objectstore/account"
	"github.com/Sui-Community-Network/objectstore/fault"
	"github.com/Sui-Community-Network/objectstore/field"
	"github.com/Sui-Community-Network/objectstore/objectid"
	"github.com/Sui-Community-Network/objectstore/ownership"
	"github.com/Sui-Community-Network/objectstore/record"
	"github.com/Sui-Community-Network/objectstore/store"
	"github.com/Sui-Community-Network/objectstore/transaction"
)

// Op - the operation selector of a request
type Op int

// all possible operations
const (
	OpCreate      Op = iota // TypeTag, Payload, Owner
	OpRead        Op = iota // Id, ExpectedVersion optional
	OpMutate      Op = iota // Id, ExpectedVersion, Patch
	OpDelete      Op = iota // Id, ExpectedVersion
	OpTransfer    Op = iota // Id, ExpectedVersion, Owner is the recipient
	OpShare       Op = iota // Id, ExpectedVersion
	OpFreeze      Op = iota // Id, ExpectedVersion
	OpWrap        Op = iota // Id is the child, Parent, ExpectedVersion
	OpUnwrap      Op = iota // Id is the child, Parent
	OpFieldAdd    Op = iota // Id, Key, Value
	OpFieldBorrow Op = iota // Id, Key
	OpFieldUpdate Op = iota // Id, Key, Value
	OpFieldRemove Op = iota // Id, Key
)

// String - printable operation name for logging
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpRead:
		return "read"
	case OpMutate:
		return "mutate"
	case OpDelete:
		return "delete"
	case OpTransfer:
		return "transfer"
	case OpShare:
		return "share"
	case OpFreeze:
		return "freeze"
	case OpWrap:
		return "wrap"
	case OpUnwrap:
		return "unwrap"
	case OpFieldAdd:
		return "field-add"
	case OpFieldBorrow:
		return "field-borrow"
	case OpFieldUpdate:
		return "field-update"
	case OpFieldRemove:
		return "field-remove"
	default:
		return "unknown"
	}
}

// Request - one operation of a batch
//
// only the fields the selected operation names are consulted; Patch,
// when nil on a mutate, replaces the payload with Payload instead
type Request struct {
	Op              Op
	Id              objectid.ObjectId
	Parent          objectid.ObjectId
	TypeTag         string
	Payload         []byte
	Owner           account.Address
	ExpectedVersion uint64
	CheckVersion    bool // read only: fail unless version matches
	Patch           func(*record.ObjectRecord) error
	Key             record.FieldKey
	Value           record.FieldValue
}

// Response - result of one successful operation
type Response struct {
	Id      objectid.ObjectId    // create: the allocated id
	Version uint64               // new version after a state change
	Record  *record.ObjectRecord // read: snapshot of the object
	Value   record.FieldValue    // field borrow/remove: the value
}

// Engine - executes operation batches on behalf of a capability
type Engine struct {
	log *logger.L
	cap account.Capability
}

// New - an engine bound to the capability that signs its batches
func New(cap account.Capability) *Engine {
	return &Engine{
		log: logger.New("engine"),
		cap: cap,
	}
}

// Execute - apply one operation against an open transaction
//
// a failed operation poisons the transaction: earlier staged effects
// are discarded and the handle refuses further work
func (e *Engine) Execute(trx *transaction.Handle, req Request) (*Response, error) {
	response, err := e.apply(trx, req)
	if nil != err {
		e.log.Debugf("%s failed: %s", req.Op, err)
		trx.Fail()
		return nil, err
	}
	return response, nil
}

// Run - execute a whole batch as one atomic transaction
//
// responses are positional: response n answers request n; any failure
// leaves the committed store untouched and reports the failing error
func (e *Engine) Run(requests []Request) ([]Response, error) {

	trx, err := transaction.Begin()
	if nil != err {
		return nil, err
	}

	responses := make([]Response, 0, len(requests))
	for i, req := range requests {
		response, err := e.Execute(trx, req)
		if nil != err {
			e.log.Warnf("batch aborted at operation %d (%s): %s", i, req.Op, err)
			return nil, err
		}
		responses = append(responses, *response)
	}

	err = trx.Commit()
	if nil != err {
		return nil, err
	}
	return responses, nil
}

func (e *Engine) apply(trx *transaction.Handle, req Request) (*Response, error) {
	switch req.Op {

	case OpCreate:
		id, err := store.Create(trx, req.TypeTag, req.Payload, req.Owner)
		if nil != err {
			return nil, err
		}
		return &Response{Id: id, Version: 0}, nil

	case OpRead:
		var expected *uint64
		if req.CheckVersion {
			expected = &req.ExpectedVersion
		}
		r, err := store.Read(trx, req.Id, expected)
		if nil != err {
			return nil, err
		}
		return &Response{Id: req.Id, Version: r.Version, Record: r}, nil

	case OpMutate:
		patch := req.Patch
		if nil == patch {
			payload := req.Payload
			patch = func(r *record.ObjectRecord) error {
				r.Payload = payload
				return nil
			}
		}
		version, err := e.mutate(trx, req, patch)
		if nil != err {
			return nil, err
		}
		return &Response{Id: req.Id, Version: version}, nil

	case OpDelete:
		err := e.delete(trx, req)
		if nil != err {
			return nil, err
		}
		return &Response{Id: req.Id}, nil

	case OpTransfer:
		version, err := ownership.Transfer(trx, e.cap, req.Id, req.ExpectedVersion, req.Owner)
		if nil != err {
			return nil, err
		}
		return &Response{Id: req.Id, Version: version}, nil

	case OpShare:
		version, err := ownership.Share(trx, e.cap, req.Id, req.ExpectedVersion)
		if nil != err {
			return nil, err
		}
		return &Response{Id: req.Id, Version: version}, nil

	case OpFreeze:
		version, err := ownership.Freeze(trx, e.cap, req.Id, req.ExpectedVersion)
		if nil != err {
			return nil, err
		}
		return &Response{Id: req.Id, Version: version}, nil

	case OpWrap:
		version, err := ownership.Wrap(trx, e.cap, req.Id, req.ExpectedVersion, req.Parent)
		if nil != err {
			return nil, err
		}
		return &Response{Id: req.Id, Version: version}, nil

	case OpUnwrap:
		version, err := ownership.Unwrap(trx, e.cap, req.Id, req.Parent)
		if nil != err {
			return nil, err
		}
		return &Response{Id: req.Id, Version: version}, nil

	case OpFieldAdd:
		err := field.Add(trx, e.cap, req.Id, req.Key, req.Value)
		if nil != err {
			return nil, err
		}
		return &Response{Id: req.Id}, nil

	case OpFieldBorrow:
		value, err := field.Borrow(trx, req.Id, req.Key)
		if nil != err {
			return nil, err
		}
		return &Response{Id: req.Id, Value: value}, nil

	case OpFieldUpdate:
		err := field.Update(trx, e.cap, req.Id, req.Key, req.Value)
		if nil != err {
			return nil, err
		}
		return &Response{Id: req.Id}, nil

	case OpFieldRemove:
		value, err := field.Remove(trx, e.cap, req.Id, req.Key)
		if nil != err {
			return nil, err
		}
		return &Response{Id: req.Id, Value: value}, nil

	default:
		return nil, fault.InvalidOperation
	}
}

// mutate with the capability checked against the object's mode
func (e *Engine) mutate(trx *transaction.Handle, req Request, patch func(*record.ObjectRecord) error) (uint64, error) {

	r, err := store.Read(trx, req.Id, nil)
	if nil != err {
		return 0, err
	}
	if record.ImmutableTag == r.Owner.Tag() {
		return 0, fault.ObjectFrozen
	}
	if !ownership.CanMutate(e.cap, r) {
		return 0, fault.NotOwner
	}

	return store.Mutate(trx, req.Id, req.ExpectedVersion, patch)
}

// delete with the capability checked against the object's mode
func (e *Engine) delete(trx *transaction.Handle, req Request) error {

	r, err := store.Read(trx, req.Id, nil)
	if nil != err {
		return err
	}
	if record.ImmutableTag == r.Owner.Tag() {
		return fault.ObjectFrozen
	}
	if !ownership.CanMutate(e.cap, r) {
		return fault.NotOwner
	}

	return store.Delete(trx, req.Id, req.ExpectedVersion)
}
