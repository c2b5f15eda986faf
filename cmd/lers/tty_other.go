//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package main

// isTerminal is false where terminal state cannot be queried, so prompts
// are never printed.
func isTerminal(int) bool {
	return false
}
