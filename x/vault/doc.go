/*
Package vault implements the custody vault of the marketplace.

The vault has no private key. Its address is derived from a public label
and a numeric salt, and the only way to move assets or value out of it is
the Authority capability handed to the transfer primitives.
*/
package vault
