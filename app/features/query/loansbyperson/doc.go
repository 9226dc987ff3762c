// Package loansbyperson lists the loans of one person, newest first.
package loansbyperson
