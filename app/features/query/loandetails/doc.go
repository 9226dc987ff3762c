// Package loandetails reads a single loan by id.
package loandetails
