/*
Package marketplace implements the listing and bid state machine.

An owner allocates one listing slot per asset, then publishes the asset
into the custody vault either as a bid listing, where bidders escrow their
offer upfront, or as an offer listing, where payment happens out of band.
Accepting a bid releases the asset to the bidder and, on a bid listing,
the escrowed value to the owner.

The package never reaches into the storage of the asset or value ledgers.
Both are consumed through the AssetLedger and ValueMover interfaces.
*/
package marketplace
