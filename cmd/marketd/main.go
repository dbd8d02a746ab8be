package main

import (
	"fmt"
	"net/http"

	"github.com/ZilDuck/nft-marketplace/generated/dic"
	"github.com/ZilDuck/nft-marketplace/internal/config"
	"github.com/ZilDuck/nft-marketplace/internal/event"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

var container *dic.Container

func main() {
	config.Init("marketd")
	container, _ = dic.NewContainer()

	tokenIndexer := container.GetTokenIndexer()
	marketplaceIndexer := container.GetMarketplaceIndexer()

	event.AddEventListener(event.TokenMintedEvent, tokenIndexer.OnTokenMinted)
	event.AddEventListener(event.TokenTransferredEvent, tokenIndexer.OnTokenTransferred)
	event.AddEventListener(event.MetadataRefreshedEvent, tokenIndexer.OnMetadataRefreshed)
	event.AddEventListener(event.ItemOfferedEvent, marketplaceIndexer.OnItemOffered)
	event.AddEventListener(event.ItemBoughtEvent, marketplaceIndexer.OnItemBought)

	go api()
	go health()

	zap.L().With(
		zap.String("port", config.Get().ApiPort),
		zap.String("feeAccount", config.Get().Market.FeeAccount),
		zap.Uint("feePercent", config.Get().Market.FeePercent),
	).Info("Marketplace Started")

	container.GetDaemon().Execute()
}

func api() {
	server := container.GetApi()
	if err := http.ListenAndServe(":"+config.Get().ApiPort, server.Router()); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start api")
	}
}

func health() {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "OK")
	}).Methods("GET")

	if err := http.ListenAndServe(":"+config.Get().HealthPort, r); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start health check")
	}
}
