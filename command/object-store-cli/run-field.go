// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli"

	"github.com/Sui-Community-Network/objectstore/engine"
	"github.com/Sui-Community-Network/objectstore/objectid"
	"github.com/Sui-Community-Network/objectstore/record"
)

func runFieldAdd(c *cli.Context) error {

	m := commandMetadata(c)

	id, err := parseId(c, "id")
	if nil != err {
		return err
	}
	key, err := parseFieldKey(c)
	if nil != err {
		return err
	}
	value, err := parseFieldValue(c)
	if nil != err {
		return err
	}

	_, err = m.engine.Run([]engine.Request{{
		Op:    engine.OpFieldAdd,
		Id:    id,
		Key:   key,
		Value: value,
	}})
	if nil != err {
		return err
	}

	return printJson(m.w, map[string]interface{}{
		"id":  id.String(),
		"key": key.String(),
	})
}

func runFieldGet(c *cli.Context) error {

	m := commandMetadata(c)

	id, err := parseId(c, "id")
	if nil != err {
		return err
	}
	key, err := parseFieldKey(c)
	if nil != err {
		return err
	}

	responses, err := m.engine.Run([]engine.Request{{
		Op:  engine.OpFieldBorrow,
		Id:  id,
		Key: key,
	}})
	if nil != err {
		return err
	}

	result := describeValue(responses[0].Value)
	result["id"] = id.String()
	result["key"] = key.String()
	return printJson(m.w, result)
}

func runFieldRemove(c *cli.Context) error {

	m := commandMetadata(c)

	id, err := parseId(c, "id")
	if nil != err {
		return err
	}
	key, err := parseFieldKey(c)
	if nil != err {
		return err
	}

	responses, err := m.engine.Run([]engine.Request{{
		Op:  engine.OpFieldRemove,
		Id:  id,
		Key: key,
	}})
	if nil != err {
		return err
	}

	result := describeValue(responses[0].Value)
	result["id"] = id.String()
	result["key"] = key.String()
	result["removed"] = true
	return printJson(m.w, result)
}

// decode exactly one of the field value flags
func parseFieldValue(c *cli.Context) (record.FieldValue, error) {

	stringValue := c.String("value")
	integerValue := c.String("integer-value")
	refValue := c.String("ref")

	selected := 0
	for _, s := range []string{stringValue, integerValue, refValue} {
		if "" != s {
			selected += 1
		}
	}
	if 1 != selected {
		return nil, fmt.Errorf("exactly one of value/integer-value/ref is required")
	}

	switch {
	case "" != stringValue:
		return record.StringValue(stringValue), nil

	case "" != integerValue:
		n, err := strconv.ParseUint(integerValue, 10, 64)
		if nil != err {
			return nil, fmt.Errorf("integer-value: %q error: %s", integerValue, err)
		}
		return record.IntegerValue(n), nil

	default:
		id := objectid.ObjectId{}
		err := id.UnmarshalText([]byte(refValue))
		if nil != err {
			return nil, fmt.Errorf("ref: %q error: %s", refValue, err)
		}
		return record.ObjectRefValue{Id: id}, nil
	}
}
