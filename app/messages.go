package app

import (
	"fmt"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/x/cash"
	"github.com/iov-one/bazaar/x/marketplace"
	"github.com/iov-one/bazaar/x/nft"
	"github.com/iov-one/bazaar/x/vault"
)

// messages maps every message path to a constructor of its type.
var messages = registerMessages(
	func() bazaar.Msg { return &cash.SendMsg{} },
	func() bazaar.Msg { return &nft.TransferMsg{} },
	func() bazaar.Msg { return &vault.InitializeMsg{} },
	func() bazaar.Msg { return &vault.UpdateConfigurationMsg{} },
	func() bazaar.Msg { return &marketplace.CreateListingSlotMsg{} },
	func() bazaar.Msg { return &marketplace.PublishMsg{} },
	func() bazaar.Msg { return &marketplace.RepriceMsg{} },
	func() bazaar.Msg { return &marketplace.WithdrawMsg{} },
	func() bazaar.Msg { return &marketplace.PlaceBidMsg{} },
	func() bazaar.Msg { return &marketplace.AcceptBidMsg{} },
	func() bazaar.Msg { return &marketplace.CancelBidMsg{} },
)

func registerMessages(constructors ...func() bazaar.Msg) map[string]func() bazaar.Msg {
	m := make(map[string]func() bazaar.Msg, len(constructors))
	for _, fn := range constructors {
		path := fn().Path()
		if _, ok := m[path]; ok {
			panic(fmt.Sprintf("message path %q registered twice", path))
		}
		m[path] = fn
	}
	return m
}
