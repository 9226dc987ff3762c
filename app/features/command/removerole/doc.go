// Package removerole deletes a role that no person references.
package removerole
