package entity

import "math/big"

// Event payloads appended to the journal by the registry and the marketplace.
// They carry everything an observer needs without reading core state.

type TokenMinted struct {
	Contract string
	TokenId  uint64
	TokenUri string
	Owner    string
}

type TokenTransferred struct {
	Contract string
	TokenId  uint64
	From     string
	To       string
}

type ItemOffered struct {
	ItemId   uint64
	Contract string
	TokenId  uint64
	Price    *big.Int
	Seller   string
}

type MetadataRefreshed struct {
	Contract string
	TokenId  uint64
	Metadata map[string]interface{}
}

type ItemBought struct {
	ItemId   uint64
	Contract string
	TokenId  uint64
	Price    *big.Int
	Fee      *big.Int
	Seller   string
	Buyer    string
}
