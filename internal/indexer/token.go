package indexer

import (
	"errors"

	"github.com/ZilDuck/nft-marketplace/internal/dev"
	"github.com/ZilDuck/nft-marketplace/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace/internal/entity"
	"github.com/ZilDuck/nft-marketplace/internal/event"
	"github.com/ZilDuck/nft-marketplace/internal/factory"
	"github.com/ZilDuck/nft-marketplace/internal/metadata"
	"github.com/ZilDuck/nft-marketplace/internal/repository"
	"go.uber.org/zap"
)

var errUnexpectedPayload = errors.New("unexpected event payload")

// TokenIndexer archives registry events. Owner and metadata changes are
// applied to the full archived document, never as a partial doc, so an update
// cannot clear fields it does not carry.
type TokenIndexer interface {
	OnTokenMinted(entry event.Entry)
	OnTokenTransferred(entry event.Entry)
	OnMetadataRefreshed(entry event.Entry)
}

type tokenIndexer struct {
	elastic         elastic_search.Index
	tokenRepo       repository.TokenRepository
	metadataService metadata.Service
	journal         *event.Journal
}

func NewTokenIndexer(
	elastic elastic_search.Index,
	tokenRepo repository.TokenRepository,
	metadataService metadata.Service,
	journal *event.Journal,
) TokenIndexer {
	return tokenIndexer{elastic, tokenRepo, metadataService, journal}
}

func (i tokenIndexer) OnTokenMinted(entry event.Entry) {
	minted, ok := entry.Payload.(entity.TokenMinted)
	if !ok {
		i.badPayload("OnTokenMinted", entry)
		return
	}

	zap.L().With(
		zap.String("contract", minted.Contract),
		zap.Uint64("tokenId", minted.TokenId),
		zap.String("owner", minted.Owner),
	).Info("Token minted")

	token := factory.CreateToken(minted)

	md, err := i.metadataService.FetchMetadata(token)
	if err != nil {
		token.MetadataError = err.Error()
		zap.L().With(
			zap.Error(err),
			zap.String("contract", token.Contract),
			zap.Uint64("tokenId", token.TokenId),
		).Warn("TokenIndexer: Failed to fetch metadata")
	}

	i.elastic.AddIndexRequest(elastic_search.TokenIndex.Get(), token, elastic_search.TokenMint)
	i.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), factory.CreateMintAction(minted, entry.Seq), elastic_search.MarketAction)

	if err == nil {
		i.journal.Append(event.MetadataRefreshedEvent, entity.MetadataRefreshed{
			Contract: token.Contract,
			TokenId:  token.TokenId,
			Metadata: md,
		})
	}
}

func (i tokenIndexer) OnTokenTransferred(entry event.Entry) {
	transferred, ok := entry.Payload.(entity.TokenTransferred)
	if !ok {
		i.badPayload("OnTokenTransferred", entry)
		return
	}

	zap.L().With(
		zap.String("contract", transferred.Contract),
		zap.Uint64("tokenId", transferred.TokenId),
		zap.String("from", transferred.From),
		zap.String("to", transferred.To),
	).Debug("Token transferred")

	token, err := i.getToken(transferred.Contract, transferred.TokenId)
	if err != nil {
		i.missingToken("OnTokenTransferred", transferred.Contract, transferred.TokenId, err)
	} else {
		token.Owner = transferred.To
		i.elastic.AddUpdateRequest(elastic_search.TokenIndex.Get(), token, elastic_search.TokenTransfer)
	}

	i.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), factory.CreateTransferAction(transferred, entry.Seq), elastic_search.MarketAction)
}

func (i tokenIndexer) OnMetadataRefreshed(entry event.Entry) {
	refreshed, ok := entry.Payload.(entity.MetadataRefreshed)
	if !ok {
		i.badPayload("OnMetadataRefreshed", entry)
		return
	}

	token, err := i.getToken(refreshed.Contract, refreshed.TokenId)
	if err != nil {
		i.missingToken("OnMetadataRefreshed", refreshed.Contract, refreshed.TokenId, err)
		return
	}

	token.HasMetadata = true
	token.MetadataError = ""
	token.Metadata = refreshed.Metadata

	i.elastic.AddUpdateRequest(elastic_search.TokenIndex.Get(), token, elastic_search.TokenMetadata)
}

// getToken returns the full archived document for a token, preferring a
// buffered write that has not been persisted yet over the archive itself.
func (i tokenIndexer) getToken(contract string, tokenId uint64) (entity.Token, error) {
	if req, found := i.elastic.GetRequest(entity.CreateTokenSlug(tokenId, contract)); found {
		if token, ok := req.Entity.(entity.Token); ok {
			return token, nil
		}
	}

	token, err := i.tokenRepo.GetToken(contract, tokenId)
	if err != nil {
		return entity.Token{}, err
	}

	return *token, nil
}

func (i tokenIndexer) missingToken(handler, contract string, tokenId uint64, err error) {
	zap.L().With(
		zap.Error(err),
		zap.String("handler", handler),
		zap.String("contract", contract),
		zap.Uint64("tokenId", tokenId),
	).Error("TokenIndexer: Archived token not found")

	i.elastic.AddIndexRequest(elastic_search.ErrorIndex.Get(), dev.NewError("tokenIndexer", handler, err, map[string]interface{}{
		"contract": contract,
		"tokenId":  tokenId,
	}), elastic_search.DevError)
}

func (i tokenIndexer) badPayload(handler string, entry event.Entry) {
	zap.L().With(zap.String("handler", handler), zap.Uint64("seq", entry.Seq)).Error("TokenIndexer: Unexpected payload")

	i.elastic.AddIndexRequest(elastic_search.ErrorIndex.Get(), dev.NewError("tokenIndexer", handler, errUnexpectedPayload, map[string]interface{}{
		"seq":  entry.Seq,
		"type": string(entry.Type),
	}), elastic_search.DevError)
}
