// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/Sui-Community-Network/objectstore/store"
)

func runOwned(c *cli.Context) error {

	m := commandMetadata(c)

	owner := m.signer
	if "" != c.String("owner") {
		address, err := parseAddress(c, "owner")
		if nil != err {
			return err
		}
		owner = address
	}

	start := c.Uint64("start")
	count := c.Int("count")
	if count <= 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", owner)
		fmt.Fprintf(m.e, "start: %d\n", start)
		fmt.Fprintf(m.e, "count: %d\n", count)
	}

	ids, err := store.OwnedBy(owner, start, count)
	if nil != err {
		return err
	}

	list := make([]string, len(ids))
	for i, id := range ids {
		list[i] = id.String()
	}
	return printJson(m.w, map[string]interface{}{
		"owner":   owner.String(),
		"objects": list,
	})
}
