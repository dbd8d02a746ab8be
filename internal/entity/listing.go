package entity

import (
	"fmt"
	"math/big"

	"github.com/gosimple/slug"
)

// Listing is a marketplace record offering a specific token for sale at a
// fixed price. While Sold is false the marketplace holds custody of the
// referenced token; once Sold flips to true the listing is immutable history.
type Listing struct {
	ItemId   uint64   `json:"itemId"`
	Contract string   `json:"contract"`
	TokenId  uint64   `json:"tokenId"`
	Seller   string   `json:"seller"`
	Price    *big.Int `json:"price"`
	Sold     bool     `json:"sold"`
}

func (l Listing) Slug() string {
	return CreateListingSlug(l.ItemId)
}

func CreateListingSlug(itemId uint64) string {
	return slug.Make(fmt.Sprintf("listing-%d", itemId))
}
