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

func runCreate(c *cli.Context) error {

	m := commandMetadata(c)

	typeTag := c.String("type")
	if "" == typeTag {
		return fmt.Errorf("type is required")
	}
	payload := c.String("payload")

	if m.verbose {
		fmt.Fprintf(m.e, "type: %s\n", typeTag)
		fmt.Fprintf(m.e, "owner: %s\n", m.signer)
	}

	responses, err := m.engine.Run([]engine.Request{{
		Op:      engine.OpCreate,
		TypeTag: typeTag,
		Payload: []byte(payload),
		Owner:   m.signer,
	}})
	if nil != err {
		return err
	}

	return printJson(m.w, map[string]interface{}{
		"id":      responses[0].Id.String(),
		"version": responses[0].Version,
		"owner":   m.signer.String(),
	})
}
