// Package removematerialtype deletes a material type that no material references.
package removematerialtype
