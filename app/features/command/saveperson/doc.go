// Package saveperson registers a person or replaces the name, cedula and role of an existing one.
package saveperson
