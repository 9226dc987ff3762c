// Package removematerial deletes a material that has no open loans. Its closed loans stay as history.
package removematerial
