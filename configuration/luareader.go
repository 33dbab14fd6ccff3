// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"

	"github.com/Sui-Community-Network/objectstore/fault"
)

// ParseConfigurationFile - run a Lua script and map the table it
// returns onto a configuration structure
//
// the script runs under a full interpreter with its own path exposed
// as arg[0], so it can locate other files relative to itself; field
// names are matched through the gluamapper struct tags
func ParseConfigurationFile(fileName string, config interface{}) error {
	vm := lua.NewState()
	defer vm.Close()

	vm.OpenLibs()

	arg := &lua.LTable{}
	arg.Insert(0, lua.LString(fileName))
	vm.SetGlobal("arg", arg)

	err := vm.DoFile(fileName)
	if nil != err {
		return err
	}

	// the script's final value must be the configuration table
	table, ok := vm.Get(vm.GetTop()).(*lua.LTable)
	if !ok {
		return fault.InvalidConfigurationFile
	}

	mapper := gluamapper.Mapper{
		Option: gluamapper.Option{
			NameFunc: func(name string) string {
				return name
			},
			TagName: "gluamapper",
		},
	}
	return mapper.Map(table, config)
}
