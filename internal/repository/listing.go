package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ZilDuck/nft-marketplace/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace/internal/entity"
	"github.com/olivere/elastic/v7"
)

var (
	ErrListingNotFound = errors.New("listing not found")
)

type ListingRepository interface {
	GetListing(itemId uint64) (*entity.Listing, error)
	GetListings(sold *bool, size, page int) ([]entity.Listing, int64, error)
	GetListingsBySeller(seller string, size, page int) ([]entity.Listing, int64, error)
}

type listingRepository struct {
	elastic elastic_search.Index
}

func NewListingRepository(elastic elastic_search.Index) ListingRepository {
	return listingRepository{elastic}
}

func (r listingRepository) GetListing(itemId uint64) (*entity.Listing, error) {
	result, err := r.elastic.GetClient().
		Search(elastic_search.ListingIndex.Get()).
		Query(elastic.NewTermQuery("itemId", itemId)).
		Size(1).
		Do(context.Background())

	return r.findOne(result, err)
}

func (r listingRepository) GetListings(sold *bool, size, page int) ([]entity.Listing, int64, error) {
	query := elastic.NewBoolQuery()
	if sold != nil {
		query.Must(elastic.NewTermQuery("sold", *sold))
	}

	result, err := r.elastic.GetClient().
		Search(elastic_search.ListingIndex.Get()).
		Query(query).
		Sort("itemId", true).
		Size(size).
		From((page-1)*size).
		Do(context.Background())

	return r.findMany(result, err)
}

func (r listingRepository) GetListingsBySeller(seller string, size, page int) ([]entity.Listing, int64, error) {
	result, err := r.elastic.GetClient().
		Search(elastic_search.ListingIndex.Get()).
		Query(elastic.NewTermQuery("seller.keyword", seller)).
		Sort("itemId", true).
		Size(size).
		From((page-1)*size).
		Do(context.Background())

	return r.findMany(result, err)
}

func (r listingRepository) findOne(results *elastic.SearchResult, err error) (*entity.Listing, error) {
	if err != nil {
		return nil, err
	}

	if len(results.Hits.Hits) == 0 {
		return nil, ErrListingNotFound
	}

	var listing entity.Listing
	if err := json.Unmarshal(results.Hits.Hits[0].Source, &listing); err != nil {
		return nil, err
	}

	return &listing, nil
}

func (r listingRepository) findMany(results *elastic.SearchResult, err error) ([]entity.Listing, int64, error) {
	listings := make([]entity.Listing, 0)

	if err != nil {
		return listings, 0, err
	}

	for _, hit := range results.Hits.Hits {
		var listing entity.Listing
		if err := json.Unmarshal(hit.Source, &listing); err == nil {
			listings = append(listings, listing)
		}
	}

	return listings, results.TotalHits(), nil
}
