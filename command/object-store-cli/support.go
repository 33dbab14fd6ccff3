// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli"

	"github.com/Sui-Community-Network/objectstore/account"
	"github.com/Sui-Community-Network/objectstore/objectid"
	"github.com/Sui-Community-Network/objectstore/record"
)

// flags shared by share and freeze
var modeFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "id, i",
		Value: "",
		Usage: "*object `ID`",
	},
	cli.Uint64Flag{
		Name:  "expected-version, e",
		Value: 0,
		Usage: "*version the transition is based on `NUMBER`",
	},
}

// flags shared by all field commands
var fieldKeyFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "id, i",
		Value: "",
		Usage: "*holding object `ID`",
	},
	cli.StringFlag{
		Name:  "key, k",
		Value: "",
		Usage: "+string field key `STRING`",
	},
	cli.StringFlag{
		Name:  "integer-key, K",
		Value: "",
		Usage: "+integer field key `NUMBER`",
	},
	cli.StringFlag{
		Name:  "address-key, a",
		Value: "",
		Usage: "+address field key `ADDRESS`",
	},
}

// current command metadata
func commandMetadata(c *cli.Context) *metadata {
	return c.App.Metadata["config"].(*metadata)
}

// decode a required object id flag
func parseId(c *cli.Context, flag string) (objectid.ObjectId, error) {
	id := objectid.ObjectId{}
	text := c.String(flag)
	if "" == text {
		return id, fmt.Errorf("%s is required", flag)
	}
	err := id.UnmarshalText([]byte(text))
	if nil != err {
		return id, fmt.Errorf("%s: %q error: %s", flag, text, err)
	}
	return id, nil
}

// decode a required address flag
func parseAddress(c *cli.Context, flag string) (account.Address, error) {
	text := c.String(flag)
	if "" == text {
		return account.Address{}, fmt.Errorf("%s is required", flag)
	}
	address, err := account.AddressFromBase58(text)
	if nil != err {
		return account.Address{}, fmt.Errorf("%s: %q error: %s", flag, text, err)
	}
	return *address, nil
}

// decode exactly one of the field key flags
func parseFieldKey(c *cli.Context) (record.FieldKey, error) {

	stringKey := c.String("key")
	integerKey := c.String("integer-key")
	addressKey := c.String("address-key")

	selected := 0
	for _, s := range []string{stringKey, integerKey, addressKey} {
		if "" != s {
			selected += 1
		}
	}
	if 1 != selected {
		return nil, fmt.Errorf("exactly one of key/integer-key/address-key is required")
	}

	switch {
	case "" != stringKey:
		return record.StringKey(stringKey), nil

	case "" != integerKey:
		n, err := strconv.ParseUint(integerKey, 10, 64)
		if nil != err {
			return nil, fmt.Errorf("integer-key: %q error: %s", integerKey, err)
		}
		return record.IntegerKey(n), nil

	default:
		address, err := account.AddressFromBase58(addressKey)
		if nil != err {
			return nil, fmt.Errorf("address-key: %q error: %s", addressKey, err)
		}
		return record.AddressKey(*address), nil
	}
}

// printable summary of a field value
func describeValue(value record.FieldValue) map[string]interface{} {
	result := map[string]interface{}{
		"value": value.String(),
	}
	switch value.(type) {
	case record.IntegerValue:
		result["kind"] = "integer"
	case record.StringValue:
		result["kind"] = "string"
	case record.BytesValue:
		result["kind"] = "bytes"
	case record.ObjectRefValue:
		result["kind"] = "object-ref"
	}
	return result
}
