// Package util provides utility functions for the application.
package util

import "strings"

// NormalizeAddress ensures addresses are always lowercase and trimmed.
// Use this function whenever accepting addresses from external sources
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// IsValidAddress performs a shape check on an address identity: a 0x prefix
// followed by 40 hex characters. The identity attestor owns real
// authentication; this only rejects obvious garbage at the input boundary.
func IsValidAddress(address string) bool {
	address = NormalizeAddress(address)
	if len(address) != 42 || !strings.HasPrefix(address, "0x") {
		return false
	}
	for _, r := range address[2:] {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
