package domain

import "errors"

// ProductKind tells which catalog a line item belongs to. Crop listings and
// shop inventory live in different tables with different availability flags.
type ProductKind string

const (
	ProductKindCrop ProductKind = "crop"
	ProductKindShop ProductKind = "shop"
)

var ErrUnknownProductKind = errors.New("unknown product kind")

// ParseProductKind maps the wire tag to the closed kind set. An empty tag
// defaults to crop because legacy cart rows carry no kind at all; anything
// else unrecognized is rejected.
func ParseProductKind(s string) (ProductKind, error) {
	switch s {
	case "", string(ProductKindCrop):
		return ProductKindCrop, nil
	case string(ProductKindShop):
		return ProductKindShop, nil
	default:
		return "", ErrUnknownProductKind
	}
}
