package enum

import "strings"

// StorageLocation names where stock for a bill line is drawn from
type StorageLocation string

const (
	StorageLocationShop   StorageLocation = "shop"
	StorageLocationGodown StorageLocation = "godown"
)

// ParseStorageLocation normalises the requested location. An empty value
// means godown. Unknown names are kept as-is and draw on the godown counter.
func ParseStorageLocation(raw string) StorageLocation {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return StorageLocationGodown
	}
	return StorageLocation(s)
}

// IsShop reports whether the shop counter backs this location
func (l StorageLocation) IsShop() bool {
	return l == StorageLocationShop
}
