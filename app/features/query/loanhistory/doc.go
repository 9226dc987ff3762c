// Package loanhistory lists every loan ever opened, newest first.
package loanhistory
