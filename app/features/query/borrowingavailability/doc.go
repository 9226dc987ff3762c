// Package borrowingavailability reports how many more loans a person may open.
//
// The capacity is the one the checkout decision uses, so a positive Available means
// the next checkout of that person passes the quota check.
package borrowingavailability
