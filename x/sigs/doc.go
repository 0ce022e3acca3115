/*
Package sigs verifies transaction signatures and keeps a nonce per signer
key so that a signed transaction cannot be replayed.

The Decorator places the verified signer conditions in the context, where
handlers read them back through Authenticate.
*/
package sigs
