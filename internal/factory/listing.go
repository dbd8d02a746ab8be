package factory

import (
	"math/big"

	"github.com/ZilDuck/nft-marketplace/internal/entity"
)

func CreateListing(offered entity.ItemOffered) entity.Listing {
	return entity.Listing{
		ItemId:   offered.ItemId,
		Contract: offered.Contract,
		TokenId:  offered.TokenId,
		Seller:   offered.Seller,
		Price:    new(big.Int).Set(offered.Price),
		Sold:     false,
	}
}

func CreateSoldListing(bought entity.ItemBought) entity.Listing {
	return entity.Listing{
		ItemId:   bought.ItemId,
		Contract: bought.Contract,
		TokenId:  bought.TokenId,
		Seller:   bought.Seller,
		Price:    new(big.Int).Set(bought.Price),
		Sold:     true,
	}
}

func CreateToken(minted entity.TokenMinted) entity.Token {
	return entity.Token{
		Contract: minted.Contract,
		TokenId:  minted.TokenId,
		TokenUri: minted.TokenUri,
		Owner:    minted.Owner,
	}
}
