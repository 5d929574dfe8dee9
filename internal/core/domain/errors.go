package domain

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrAddToCartDisabled  = errors.New("add to cart is disabled for current selection")
)
