// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/Sui-Community-Network/objectstore/engine"
)

func runInfo(c *cli.Context) error {

	m := commandMetadata(c)

	id, err := parseId(c, "id")
	if nil != err {
		return err
	}

	responses, err := m.engine.Run([]engine.Request{{
		Op: engine.OpRead,
		Id: id,
	}})
	if nil != err {
		return err
	}

	r := responses[0].Record
	return printJson(m.w, map[string]interface{}{
		"id":      r.Id.String(),
		"type":    r.TypeTag,
		"version": r.Version,
		"mode":    r.Owner.String(),
		"payload": string(r.Payload),
	})
}
