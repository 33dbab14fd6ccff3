// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

// Capability - proof of authorisation presented with every
// ownership-sensitive operation
//
// minimally the address asserted to be the current transaction
// signer; authentication of that address is external to this core
type Capability struct {
	Signer Address `json:"signer"`
}

// NewCapability - capability asserting a signer address
func NewCapability(signer Address) Capability {
	return Capability{Signer: signer}
}

// Is - check the capability asserts a specific address
func (c Capability) Is(address Address) bool {
	return c.Signer == address
}
