package factory

import (
	"github.com/ZilDuck/nft-marketplace/internal/entity"
	"github.com/ZilDuck/nft-marketplace/pkg/zil"
)

func CreateMintAction(minted entity.TokenMinted, seq uint64) entity.MarketAction {
	return entity.MarketAction{
		Seq:            seq,
		Contract:       minted.Contract,
		ContractBech32: zil.ToBech32(minted.Contract),
		TokenId:        minted.TokenId,
		Action:         entity.MintAction,
		From:           "",
		To:             minted.Owner,
		ToBech32:       zil.ToBech32(minted.Owner),
	}
}

func CreateTransferAction(transferred entity.TokenTransferred, seq uint64) entity.MarketAction {
	return entity.MarketAction{
		Seq:            seq,
		Contract:       transferred.Contract,
		ContractBech32: zil.ToBech32(transferred.Contract),
		TokenId:        transferred.TokenId,
		Action:         entity.TransferAction,
		From:           transferred.From,
		FromBech32:     zil.ToBech32(transferred.From),
		To:             transferred.To,
		ToBech32:       zil.ToBech32(transferred.To),
	}
}

func CreateOfferedAction(offered entity.ItemOffered, seq uint64) entity.MarketAction {
	return entity.MarketAction{
		Seq:            seq,
		ItemId:         offered.ItemId,
		Contract:       offered.Contract,
		ContractBech32: zil.ToBech32(offered.Contract),
		TokenId:        offered.TokenId,
		Action:         entity.OfferedAction,
		From:           offered.Seller,
		FromBech32:     zil.ToBech32(offered.Seller),
		Cost:           offered.Price.String(),
	}
}

func CreateBoughtAction(bought entity.ItemBought, seq uint64) entity.MarketAction {
	return entity.MarketAction{
		Seq:            seq,
		ItemId:         bought.ItemId,
		Contract:       bought.Contract,
		ContractBech32: zil.ToBech32(bought.Contract),
		TokenId:        bought.TokenId,
		Action:         entity.BoughtAction,
		From:           bought.Seller,
		FromBech32:     zil.ToBech32(bought.Seller),
		To:             bought.Buyer,
		ToBech32:       zil.ToBech32(bought.Buyer),
		Cost:           bought.Price.String(),
		Fee:            bought.Fee.String(),
	}
}
