// Package materialtypes lists and reads material types.
package materialtypes
