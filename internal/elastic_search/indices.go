package elastic_search

import (
	"fmt"

	"github.com/ZilDuck/nft-marketplace/internal/config"
)

type Indices string

var (
	TokenIndex        Indices = "token"
	ListingIndex      Indices = "listing"
	MarketActionIndex Indices = "marketaction"
	ErrorIndex        Indices = "error"
)

// Get prefixes the index with the network and deployment name
func (i *Indices) Get() string {
	return fmt.Sprintf("%s.%s.%s", config.Get().Network, config.Get().Index, string(*i))
}
