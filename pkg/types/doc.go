// Package types defines the Product record, its line codec, the Inventory
// backend interface, configuration, and the standard errors shared by the
// Stockroom packages.
package types
