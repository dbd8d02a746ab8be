package event

type Type string

const (
	TokenMintedEvent       Type = "TokenMintedEvent"
	TokenTransferredEvent  Type = "TokenTransferredEvent"
	ItemOfferedEvent       Type = "ItemOfferedEvent"
	ItemBoughtEvent        Type = "ItemBoughtEvent"
	MetadataRefreshedEvent Type = "MetadataRefreshedEvent"
)
