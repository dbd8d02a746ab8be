package entity

import (
	"crypto/md5"
	"fmt"
)

// MarketAction is the archive document written for every committed registry or
// marketplace mutation. Amounts are kept as decimal strings of Qa so the
// archive never rounds them.
type MarketAction struct {
	Seq            uint64     `json:"seq"`
	ItemId         uint64     `json:"itemId"`
	Contract       string     `json:"contract"`
	ContractBech32 string     `json:"contractBech32"`
	TokenId        uint64     `json:"tokenId"`
	Action         ActionType `json:"action"`
	From           string     `json:"from"`
	FromBech32     string     `json:"fromBech32"`
	To             string     `json:"to"`
	ToBech32       string     `json:"toBech32"`
	Cost           string     `json:"cost"`
	Fee            string     `json:"fee"`
}

type ActionType string

const (
	MintAction     ActionType = "mint"
	TransferAction ActionType = "transfer"
	OfferedAction  ActionType = "offered"
	BoughtAction   ActionType = "bought"
)

func (a MarketAction) Slug() string {
	return CreateMarketActionSlug(a.Seq, a.Contract, a.TokenId, string(a.Action))
}

func CreateMarketActionSlug(seq uint64, contract string, tokenId uint64, action string) string {
	data := []byte(fmt.Sprintf("marketaction-%d-%s-%d-%s", seq, contract, tokenId, action))
	return fmt.Sprintf("%x", md5.Sum(data))
}
