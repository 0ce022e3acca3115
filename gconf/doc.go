/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension stores its configuration as a singleton under the "_c:<pkg>"
key. Configurations are loaded from the "conf" section of the genesis file
and may later be patched by the configuration owner.
*/
package gconf
