package core

import (
	"strconv"
	"strings"
)

// OrderIDPrefix is the fixed textual prefix of every order id. The numeric
// tail is the canonical slot index of the order in the primary store
// (spec.md section 3).
const OrderIDPrefix = "OrdId"

// FormatOrderID builds the canonical order id string for a given slot.
func FormatOrderID(slot uint64) string {
	return OrderIDPrefix + strconv.FormatUint(slot, 10)
}

// IsOrderIDFormat reports whether id has the shape "OrdId" followed by one
// or more decimal digits parseable as a uint64. An empty id simply fails
// this check; Validate reports emptiness separately before calling it.
func IsOrderIDFormat(id string) bool {
	_, ok := DecodeOrderID(id)
	return ok
}

// DecodeOrderID splits id into its canonical slot index. It returns
// ok == false if id does not start with OrderIDPrefix, the remainder is
// empty or contains non-digit characters, or the digits overflow uint64.
func DecodeOrderID(id string) (slot uint64, ok bool) {
	rest, found := strings.CutPrefix(id, OrderIDPrefix)
	if !found || rest == "" {
		return 0, false
	}

	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0, false
		}
	}

	slot, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		return 0, false
	}

	return slot, true
}
