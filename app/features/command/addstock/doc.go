// Package addstock adds units to a material. Registered and current quantity grow by the same
// amount in one statement, and a StockAdded entry is journaled with the change.
package addstock
