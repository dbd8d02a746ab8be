package di

import (
	"time"

	"github.com/ZilDuck/nft-marketplace/internal/api"
	"github.com/ZilDuck/nft-marketplace/internal/config"
	"github.com/ZilDuck/nft-marketplace/internal/daemon"
	"github.com/ZilDuck/nft-marketplace/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace/internal/event"
	"github.com/ZilDuck/nft-marketplace/internal/indexer"
	"github.com/ZilDuck/nft-marketplace/internal/ledger"
	"github.com/ZilDuck/nft-marketplace/internal/marketplace"
	"github.com/ZilDuck/nft-marketplace/internal/metadata"
	"github.com/ZilDuck/nft-marketplace/internal/registry"
	"github.com/ZilDuck/nft-marketplace/internal/repository"
	"github.com/patrickmn/go-cache"
	"github.com/sarulabs/dingo/v4"
	"go.uber.org/zap"
)

var Definitions = []dingo.Def{
	{
		Name: "elastic",
		Build: func() (elastic_search.Index, error) {
			elastic, err := elastic_search.New()
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to start ES")
			}

			return elastic, nil
		},
	},
	{
		Name: "cache",
		Build: func() (*cache.Cache, error) {
			return cache.New(5*time.Minute, 10*time.Minute), nil
		},
	},
	{
		Name: "journal",
		Build: func() (*event.Journal, error) {
			return event.NewJournal(), nil
		},
	},
	{
		Name: "ledger",
		Build: func() (ledger.Ledger, error) {
			return ledger.NewLedger(), nil
		},
	},
	{
		Name: "registry",
		Build: func(journal *event.Journal) (registry.TokenRegistry, error) {
			return registry.NewTokenRegistry(config.Get().Market.Contract, journal), nil
		},
	},
	{
		Name: "marketplace",
		Build: func(accounts ledger.Ledger, journal *event.Journal) (marketplace.Marketplace, error) {
			market := config.Get().Market
			return marketplace.NewMarketplace(market.Address, market.FeeAccount, market.FeePercent, accounts, journal), nil
		},
	},
	{
		Name: "metadata",
		Build: func() (metadata.Service, error) {
			return metadata.NewMetadataService(metadata.NewRetryableClient(), config.Get().IpfsHosts), nil
		},
	},
	{
		Name: "token.repo",
		Build: func(elastic elastic_search.Index) (repository.TokenRepository, error) {
			return repository.NewTokenRepository(elastic), nil
		},
	},
	{
		Name: "token.indexer",
		Build: func(
			elastic elastic_search.Index,
			tokenRepo repository.TokenRepository,
			metadataService metadata.Service,
			journal *event.Journal,
		) (indexer.TokenIndexer, error) {
			return indexer.NewTokenIndexer(elastic, tokenRepo, metadataService, journal), nil
		},
	},
	{
		Name: "marketplace.indexer",
		Build: func(elastic elastic_search.Index) (indexer.MarketplaceIndexer, error) {
			return indexer.NewMarketplaceIndexer(elastic), nil
		},
	},
	{
		Name: "listing.repo",
		Build: func(elastic elastic_search.Index) (repository.ListingRepository, error) {
			return repository.NewListingRepository(elastic), nil
		},
	},
	{
		Name: "action.repo",
		Build: func(elastic elastic_search.Index, c *cache.Cache) (repository.ActionRepository, error) {
			return repository.NewActionRepository(elastic, c), nil
		},
	},
	{
		Name: "api",
		Build: func(
			market marketplace.Marketplace,
			tokens registry.TokenRegistry,
			accounts ledger.Ledger,
			listingRepo repository.ListingRepository,
			actionRepo repository.ActionRepository,
		) (api.Server, error) {
			return api.NewServer(market, tokens, accounts, listingRepo, actionRepo), nil
		},
	},
	{
		Name: "daemon",
		Build: func(elastic elastic_search.Index) (*daemon.Daemon, error) {
			return daemon.NewDaemon(elastic), nil
		},
	},
}
