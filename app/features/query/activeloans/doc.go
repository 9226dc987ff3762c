// Package activeloans lists the loans that have not been returned yet, oldest first.
//
// It always reads from the primary. A loan that was just opened must show up here,
// otherwise the desk would hand out a unit it believes is still on the shelf.
package activeloans
