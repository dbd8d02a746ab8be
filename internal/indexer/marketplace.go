package indexer

import (
	"github.com/ZilDuck/nft-marketplace/internal/dev"
	"github.com/ZilDuck/nft-marketplace/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace/internal/entity"
	"github.com/ZilDuck/nft-marketplace/internal/event"
	"github.com/ZilDuck/nft-marketplace/internal/factory"
	"go.uber.org/zap"
)

// MarketplaceIndexer archives committed marketplace events: a listing document
// per offered item, flipped to sold on purchase, plus a market action per
// event.
type MarketplaceIndexer interface {
	OnItemOffered(entry event.Entry)
	OnItemBought(entry event.Entry)
}

type marketplaceIndexer struct {
	elastic elastic_search.Index
}

func NewMarketplaceIndexer(elastic elastic_search.Index) MarketplaceIndexer {
	return marketplaceIndexer{elastic}
}

func (i marketplaceIndexer) OnItemOffered(entry event.Entry) {
	offered, ok := entry.Payload.(entity.ItemOffered)
	if !ok {
		i.badPayload("OnItemOffered", entry)
		return
	}

	zap.L().With(
		zap.Uint64("itemId", offered.ItemId),
		zap.String("contract", offered.Contract),
		zap.Uint64("tokenId", offered.TokenId),
		zap.String("cost", offered.Price.String()),
	).Info("Marketplace listing")

	i.elastic.AddIndexRequest(elastic_search.ListingIndex.Get(), factory.CreateListing(offered), elastic_search.ListingCreate)
	i.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), factory.CreateOfferedAction(offered, entry.Seq), elastic_search.MarketAction)
}

func (i marketplaceIndexer) OnItemBought(entry event.Entry) {
	bought, ok := entry.Payload.(entity.ItemBought)
	if !ok {
		i.badPayload("OnItemBought", entry)
		return
	}

	zap.L().With(
		zap.Uint64("itemId", bought.ItemId),
		zap.String("contract", bought.Contract),
		zap.Uint64("tokenId", bought.TokenId),
		zap.String("from", bought.Seller),
		zap.String("to", bought.Buyer),
		zap.String("cost", bought.Price.String()),
		zap.String("fee", bought.Fee.String()),
	).Info("Marketplace trade")

	i.elastic.AddUpdateRequest(elastic_search.ListingIndex.Get(), factory.CreateSoldListing(bought), elastic_search.ListingSold)
	i.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), factory.CreateBoughtAction(bought, entry.Seq), elastic_search.MarketAction)
}

func (i marketplaceIndexer) badPayload(handler string, entry event.Entry) {
	zap.L().With(zap.String("handler", handler), zap.Uint64("seq", entry.Seq)).Error("MarketplaceIndexer: Unexpected payload")

	i.elastic.AddIndexRequest(elastic_search.ErrorIndex.Get(), dev.NewError("marketplaceIndexer", handler, errUnexpectedPayload, map[string]interface{}{
		"seq":  entry.Seq,
		"type": string(entry.Type),
	}), elastic_search.DevError)
}
