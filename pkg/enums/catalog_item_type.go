package enums

import "fmt"

// CatalogItemType distinguishes barber services from retail products.
type CatalogItemType string

const (
	CatalogItemService CatalogItemType = "service"
	CatalogItemProduct CatalogItemType = "product"
)

var validCatalogItemTypes = []CatalogItemType{
	CatalogItemService,
	CatalogItemProduct,
}

// String implements fmt.Stringer.
func (t CatalogItemType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known CatalogItemType.
func (t CatalogItemType) IsValid() bool {
	for _, candidate := range validCatalogItemTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseCatalogItemType converts raw input into a CatalogItemType.
func ParseCatalogItemType(value string) (CatalogItemType, error) {
	for _, candidate := range validCatalogItemTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid catalog item type %q", value)
}
