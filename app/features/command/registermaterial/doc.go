// Package registermaterial adds a new material to the catalog with all its units available.
package registermaterial
