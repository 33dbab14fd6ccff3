// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/Sui-Community-Network/objectstore/account"
	"github.com/Sui-Community-Network/objectstore/configuration"
	"github.com/Sui-Community-Network/objectstore/engine"
	"github.com/Sui-Community-Network/objectstore/storage"
	"github.com/Sui-Community-Network/objectstore/transaction"
)

type metadata struct {
	config  *configuration.Configuration
	engine  *engine.Engine
	signer  account.Address
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "object-store-cli"
	app.Usage = "manipulate objects, ownership and dynamic fields"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: "*configuration `FILE`",
		},
		cli.StringFlag{
			Name:  "signer, s",
			Value: "",
			Usage: " signing `ADDRESS` [default from configuration]",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "create",
			Usage:     "create an object owned by the signer",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "type, t",
					Value: "",
					Usage: "*object type tag `STRING`",
				},
				cli.StringFlag{
					Name:  "payload, p",
					Value: "",
					Usage: " object payload `STRING`",
				},
			},
			Action: runCreate,
		},
		{
			Name:      "info",
			Usage:     "show one object",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*object `ID`",
				},
			},
			Action: runInfo,
		},
		{
			Name:      "owned",
			Usage:     "list objects held by an owner",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " owner `ADDRESS` [default the signer]",
				},
				cli.Uint64Flag{
					Name:  "start, b",
					Value: 0,
					Usage: " list position to begin `NUMBER`",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 20,
					Usage: " maximum objects to list `NUMBER`",
				},
			},
			Action: runOwned,
		},
		{
			Name:      "mutate",
			Usage:     "replace an object's payload",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*object `ID`",
				},
				cli.Uint64Flag{
					Name:  "expected-version, e",
					Value: 0,
					Usage: "*version the change is based on `NUMBER`",
				},
				cli.StringFlag{
					Name:  "payload, p",
					Value: "",
					Usage: "*replacement payload `STRING`",
				},
			},
			Action: runMutate,
		},
		{
			Name:      "delete",
			Usage:     "delete an object with no dynamic fields",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*object `ID`",
				},
				cli.Uint64Flag{
					Name:  "expected-version, e",
					Value: 0,
					Usage: "*version the delete is based on `NUMBER`",
				},
			},
			Action: runDelete,
		},
		{
			Name:      "transfer",
			Usage:     "transfer an owned object to a receiver",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*object `ID`",
				},
				cli.Uint64Flag{
					Name:  "expected-version, e",
					Value: 0,
					Usage: "*version the transfer is based on `NUMBER`",
				},
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*address to receive the object `ADDRESS`",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "share",
			Usage:     "make an owned object shared, irreversible",
			ArgsUsage: "\n   (* = required)",
			Flags:     modeFlags,
			Action:    runShare,
		},
		{
			Name:      "freeze",
			Usage:     "make an owned object immutable, terminal",
			ArgsUsage: "\n   (* = required)",
			Flags:     modeFlags,
			Action:    runFreeze,
		},
		{
			Name:      "wrap",
			Usage:     "wrap an owned object into a parent object",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "child, i",
					Value: "",
					Usage: "*object `ID` to wrap",
				},
				cli.Uint64Flag{
					Name:  "expected-version, e",
					Value: 0,
					Usage: "*child version the wrap is based on `NUMBER`",
				},
				cli.StringFlag{
					Name:  "parent, P",
					Value: "",
					Usage: "*wrapping parent object `ID`",
				},
			},
			Action: runWrap,
		},
		{
			Name:      "unwrap",
			Usage:     "release a wrapped object back to the signer",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "child, i",
					Value: "",
					Usage: "*object `ID` to unwrap",
				},
				cli.StringFlag{
					Name:  "parent, P",
					Value: "",
					Usage: "*wrapping parent object `ID`",
				},
			},
			Action: runUnwrap,
		},
		{
			Name:      "field-add",
			Usage:     "attach a dynamic field to an object",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: append(fieldKeyFlags,
				cli.StringFlag{
					Name:  "value, V",
					Value: "",
					Usage: "+inline string value `STRING`",
				},
				cli.StringFlag{
					Name:  "integer-value, N",
					Value: "",
					Usage: "+inline integer value `NUMBER`",
				},
				cli.StringFlag{
					Name:  "ref, r",
					Value: "",
					Usage: "+nested object `ID`, wraps the object",
				},
			),
			Action: runFieldAdd,
		},
		{
			Name:      "field-get",
			Usage:     "read a dynamic field",
			ArgsUsage: "\n   (* = required)",
			Flags:     fieldKeyFlags,
			Action:    runFieldGet,
		},
		{
			Name:      "field-remove",
			Usage:     "detach a dynamic field, unwrapping any nested object",
			ArgsUsage: "\n   (* = required)",
			Flags:     fieldKeyFlags,
			Action:    runFieldRemove,
		},
		{
			Name:  "version",
			Usage: "display object-store-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// open the database and build the engine
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file for certain commands
		command := c.Args().Get(0)
		if "version" == command || "help" == command || "h" == command || "" == command {
			return nil
		}

		configurationFile := c.GlobalString("config")
		if "" == configurationFile {
			return fmt.Errorf("configuration file is required")
		}

		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", configurationFile)
		}

		options, err := configuration.GetConfiguration(configurationFile)
		if nil != err {
			return err
		}

		signerText := c.GlobalString("signer")
		if "" == signerText {
			signerText = options.DefaultSigner
		}
		if "" == signerText {
			return fmt.Errorf("signer address is required")
		}
		signer, err := account.AddressFromBase58(signerText)
		if nil != err {
			return err
		}

		err = logger.Initialise(logger.Configuration{
			Directory: options.Logging.Directory,
			File:      options.Logging.File,
			Size:      options.Logging.Size,
			Count:     options.Logging.Count,
			Console:   options.Logging.Console,
			Levels:    options.Logging.Levels,
		})
		if nil != err {
			return err
		}

		err = storage.Initialise(options.DatabasePath(), false)
		if nil != err {
			return err
		}
		err = transaction.Initialise()
		if nil != err {
			return err
		}

		c.App.Metadata["config"] = &metadata{
			config:  options,
			engine:  engine.New(account.NewCapability(*signer)),
			signer:  *signer,
			verbose: verbose,
			e:       e,
			w:       w,
		}
		return nil
	}

	// release the database
	app.After = func(c *cli.Context) error {
		if _, ok := c.App.Metadata["config"].(*metadata); !ok {
			return nil
		}
		transaction.Finalise()
		storage.Finalise()
		logger.Finalise()
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("terminated with error: %s", err)
	}
}
