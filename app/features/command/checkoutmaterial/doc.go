// Package checkoutmaterial lends one unit of a material to a person.
//
// The handler loads the person, the material and the person's open-loan count, decides with the
// pure Decide function, and opens the loan with conditional writes. A conflicting concurrent
// checkout or return makes the write affect no rows, and the whole cycle is retried.
package checkoutmaterial
