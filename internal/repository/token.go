package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ZilDuck/nft-marketplace/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace/internal/entity"
	"github.com/olivere/elastic/v7"
)

var ErrTokenNotFound = errors.New("token not found")

type TokenRepository interface {
	GetToken(contract string, tokenId uint64) (*entity.Token, error)
}

type tokenRepository struct {
	elastic elastic_search.Index
}

func NewTokenRepository(elastic elastic_search.Index) TokenRepository {
	return tokenRepository{elastic}
}

func (r tokenRepository) GetToken(contract string, tokenId uint64) (*entity.Token, error) {
	result, err := r.elastic.GetClient().
		Search(elastic_search.TokenIndex.Get()).
		Query(elastic.NewBoolQuery().Must(
			elastic.NewTermQuery("contract.keyword", contract),
			elastic.NewTermQuery("tokenId", tokenId),
		)).
		Size(1).
		Do(context.Background())

	if err != nil {
		return nil, err
	}

	if len(result.Hits.Hits) == 0 {
		return nil, ErrTokenNotFound
	}

	var token entity.Token
	if err := json.Unmarshal(result.Hits.Hits[0].Source, &token); err != nil {
		return nil, err
	}

	return &token, nil
}
