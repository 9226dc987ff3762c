// Package core holds the pure business rules of library circulation: the quota policy, the catalog
// validation rules, the decision results returned by the Decide functions of the feature slices,
// and the domain events recorded in the circulation journal.
//
// Nothing in this package performs I/O.
package core
