// Package returnloan closes an open loan and gives its unit back to the material.
//
// A loan is returned at most once. When two returns of the same loan race, the loser's conditional
// write affects no rows, the cycle is retried, and Decide then reports AlreadyReturned.
package returnloan
