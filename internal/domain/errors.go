package domain

import "fmt"

var (
	ErrProductNotFound  = fmt.Errorf("product not found")
	ErrDuplicateProduct = fmt.Errorf("duplicate product id")
	ErrEmptyCatalog     = fmt.Errorf("catalog source contains no products")
	ErrUnknownDiscount  = fmt.Errorf("unknown discount code")
)
