package main

import (
	"fmt"
	"os"

	"github.com/ZilDuck/nft-marketplace/generated/dic"
	"github.com/ZilDuck/nft-marketplace/internal/config"
	"github.com/ZilDuck/nft-marketplace/internal/entity"
	"github.com/ZilDuck/nft-marketplace/internal/repository"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	container   *dic.Container
	listingRepo repository.ListingRepository
	actionRepo  repository.ActionRepository
)

func main() {
	config.Init("cli")

	container, _ = dic.NewContainer()
	listingRepo = container.GetListingRepo()
	actionRepo = container.GetActionRepo()

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "listings",
				Usage:  "Show archived listings",
				Action: showListings,
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "item", Value: 0, Usage: "Show a single listing by item id"},
					&cli.StringFlag{Name: "seller", Value: "", Usage: "Filter by seller address"},
					&cli.StringFlag{Name: "sold", Value: "", Usage: "Filter by sold state (true or false)"},
					&cli.IntFlag{Name: "size", Value: 20},
					&cli.IntFlag{Name: "page", Value: 1},
				},
			},
			{
				Name:   "actions",
				Usage:  "Show archived market actions for a token",
				Action: showActions,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "contract", Value: "", Usage: "Token contract address"},
					&cli.Uint64Flag{Name: "token", Value: 0, Usage: "Token id"},
					&cli.IntFlag{Name: "size", Value: 20},
					&cli.IntFlag{Name: "page", Value: 1},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start CLI")
	}
}

func showListings(c *cli.Context) error {
	if itemId := c.Uint64("item"); itemId != 0 {
		listing, err := listingRepo.GetListing(itemId)
		if err != nil {
			return err
		}
		printListings([]entity.Listing{*listing}, 1)
		return nil
	}

	if seller := c.String("seller"); seller != "" {
		listings, total, err := listingRepo.GetListingsBySeller(seller, c.Int("size"), c.Int("page"))
		if err != nil {
			return err
		}
		printListings(listings, total)
		return nil
	}

	var sold *bool
	if soldFlag := c.String("sold"); soldFlag != "" {
		val := soldFlag == "true"
		sold = &val
	}

	listings, total, err := listingRepo.GetListings(sold, c.Int("size"), c.Int("page"))
	if err != nil {
		return err
	}
	printListings(listings, total)

	return nil
}

func showActions(c *cli.Context) error {
	actions, total, err := actionRepo.GetActions(c.String("contract"), c.Uint64("token"), c.Int("size"), c.Int("page"))
	if err != nil {
		return err
	}

	fmt.Printf("%d actions\n", total)
	for _, action := range actions {
		fmt.Printf("%6d  %-10s  item=%d token=%d from=%s to=%s cost=%s fee=%s\n",
			action.Seq, action.Action, action.ItemId, action.TokenId, action.From, action.To, action.Cost, action.Fee)
	}

	return nil
}

func printListings(listings []entity.Listing, total int64) {
	fmt.Printf("%d listings\n", total)
	for _, listing := range listings {
		fmt.Printf("%6d  contract=%s token=%d seller=%s price=%s sold=%t\n",
			listing.ItemId, listing.Contract, listing.TokenId, listing.Seller, listing.Price.String(), listing.Sold)
	}
}
