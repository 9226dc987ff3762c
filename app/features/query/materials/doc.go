// Package materials lists the catalog of materials and reads single materials with their type name.
package materials
