// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/Sui-Community-Network/objectstore/engine"
)

func runWrap(c *cli.Context) error {

	m := commandMetadata(c)

	child, err := parseId(c, "child")
	if nil != err {
		return err
	}
	parent, err := parseId(c, "parent")
	if nil != err {
		return err
	}

	responses, err := m.engine.Run([]engine.Request{{
		Op:              engine.OpWrap,
		Id:              child,
		Parent:          parent,
		ExpectedVersion: c.Uint64("expected-version"),
	}})
	if nil != err {
		return err
	}

	return printJson(m.w, map[string]interface{}{
		"child":   child.String(),
		"parent":  parent.String(),
		"version": responses[0].Version,
	})
}

func runUnwrap(c *cli.Context) error {

	m := commandMetadata(c)

	child, err := parseId(c, "child")
	if nil != err {
		return err
	}
	parent, err := parseId(c, "parent")
	if nil != err {
		return err
	}

	responses, err := m.engine.Run([]engine.Request{{
		Op:     engine.OpUnwrap,
		Id:     child,
		Parent: parent,
	}})
	if nil != err {
		return err
	}

	return printJson(m.w, map[string]interface{}{
		"child":   child.String(),
		"owner":   m.signer.String(),
		"version": responses[0].Version,
	})
}
