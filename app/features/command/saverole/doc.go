// Package saverole creates a role or replaces the name and capacity of an existing one.
package saverole
