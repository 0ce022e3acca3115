/*
Package cash implements the value ledger: a single fungible balance
per address, moved between accounts by the holder of the source
account.
*/
package cash
