package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ZilDuck/nft-marketplace/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace/internal/entity"
	"github.com/olivere/elastic/v7"
	"github.com/patrickmn/go-cache"
)

type ActionRepository interface {
	GetActions(contract string, tokenId uint64, size, page int) ([]entity.MarketAction, int64, error)
	GetActionsByItem(itemId uint64, size, page int) ([]entity.MarketAction, int64, error)
}

type actionRepository struct {
	elastic elastic_search.Index
	cache   *cache.Cache
}

func NewActionRepository(elastic elastic_search.Index, c *cache.Cache) ActionRepository {
	return actionRepository{elastic, c}
}

func (r actionRepository) GetActions(contract string, tokenId uint64, size, page int) ([]entity.MarketAction, int64, error) {
	cacheKey := fmt.Sprintf("actions-%s-%d-%d-%d", contract, tokenId, size, page)
	if cached, found := r.cache.Get(cacheKey); found {
		result := cached.(actionResult)
		return result.actions, result.total, nil
	}

	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("contract.keyword", contract),
		elastic.NewTermQuery("tokenId", tokenId),
	)

	actions, total, err := r.findMany(r.search(query, size, page))
	if err == nil {
		r.cache.Set(cacheKey, actionResult{actions, total}, 30*time.Second)
	}

	return actions, total, err
}

func (r actionRepository) GetActionsByItem(itemId uint64, size, page int) ([]entity.MarketAction, int64, error) {
	return r.findMany(r.search(elastic.NewTermQuery("itemId", itemId), size, page))
}

func (r actionRepository) search(query elastic.Query, size, page int) (*elastic.SearchResult, error) {
	return r.elastic.GetClient().
		Search(elastic_search.MarketActionIndex.Get()).
		Query(query).
		Sort("seq", true).
		Size(size).
		From((page - 1) * size).
		Do(context.Background())
}

func (r actionRepository) findMany(results *elastic.SearchResult, err error) ([]entity.MarketAction, int64, error) {
	actions := make([]entity.MarketAction, 0)

	if err != nil {
		return actions, 0, err
	}

	for _, hit := range results.Hits.Hits {
		var action entity.MarketAction
		if err := json.Unmarshal(hit.Source, &action); err == nil {
			actions = append(actions, action)
		}
	}

	return actions, results.TotalHits(), nil
}

type actionResult struct {
	actions []entity.MarketAction
	total   int64
}
