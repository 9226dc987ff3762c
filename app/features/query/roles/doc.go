// Package roles lists and reads roles.
package roles
