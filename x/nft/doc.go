/*
Package nft implements the asset ledger: custody of non-fungible assets.

Each asset has exactly one holder. Only an authenticator that controls the
current holder can transfer the asset, and only one unit at a time.
*/
package nft
