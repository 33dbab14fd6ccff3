// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/Sui-Community-Network/objectstore/engine"
)

func runShare(c *cli.Context) error {
	return runModeTransition(c, engine.OpShare, "shared")
}

func runFreeze(c *cli.Context) error {
	return runModeTransition(c, engine.OpFreeze, "immutable")
}

func runModeTransition(c *cli.Context, op engine.Op, mode string) error {

	m := commandMetadata(c)

	id, err := parseId(c, "id")
	if nil != err {
		return err
	}

	responses, err := m.engine.Run([]engine.Request{{
		Op:              op,
		Id:              id,
		ExpectedVersion: c.Uint64("expected-version"),
	}})
	if nil != err {
		return err
	}

	return printJson(m.w, map[string]interface{}{
		"id":      id.String(),
		"version": responses[0].Version,
		"mode":    mode,
	})
}
