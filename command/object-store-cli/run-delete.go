// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/Sui-Community-Network/objectstore/engine"
)

func runDelete(c *cli.Context) error {

	m := commandMetadata(c)

	id, err := parseId(c, "id")
	if nil != err {
		return err
	}

	_, err = m.engine.Run([]engine.Request{{
		Op:              engine.OpDelete,
		Id:              id,
		ExpectedVersion: c.Uint64("expected-version"),
	}})
	if nil != err {
		return err
	}

	return printJson(m.w, map[string]interface{}{
		"id":      id.String(),
		"deleted": true,
	})
}
