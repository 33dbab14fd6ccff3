// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/Sui-Community-Network/objectstore/engine"
)

func runTransfer(c *cli.Context) error {

	m := commandMetadata(c)

	id, err := parseId(c, "id")
	if nil != err {
		return err
	}
	receiver, err := parseAddress(c, "receiver")
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "object: %s\n", id)
		fmt.Fprintf(m.e, "receiver: %s\n", receiver)
	}

	responses, err := m.engine.Run([]engine.Request{{
		Op:              engine.OpTransfer,
		Id:              id,
		ExpectedVersion: c.Uint64("expected-version"),
		Owner:           receiver,
	}})
	if nil != err {
		return err
	}

	return printJson(m.w, map[string]interface{}{
		"id":      id.String(),
		"version": responses[0].Version,
		"owner":   receiver.String(),
	})
}
