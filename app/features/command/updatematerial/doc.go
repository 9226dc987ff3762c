// Package updatematerial edits title, type and registered quantity of a material.
//
// The current quantity moves by the same net amount as the registered quantity. The edit is
// written only if the material is unchanged since it was loaded, otherwise it is decided again.
package updatematerial
