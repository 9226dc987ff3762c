// Package savematerialtype creates a material type or renames an existing one.
package savematerialtype
