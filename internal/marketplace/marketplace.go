package marketplace

import (
	"errors"
	"math/big"
	"sync"

	"github.com/ZilDuck/nft-marketplace/internal/entity"
	"github.com/ZilDuck/nft-marketplace/internal/event"
	"go.uber.org/zap"
)

var (
	ErrInvalidPrice        = errors.New("price must be greater than zero")
	ErrItemNotFound        = errors.New("item doesn't exist")
	ErrItemAlreadySold     = errors.New("item is already sold")
	ErrInsufficientPayment = errors.New("not enough value sent to cover item price and market fee")
)

// TokenHolder is the slice of a token registry the marketplace needs: an
// identity and a single-token ownership transfer with an authorization check.
type TokenHolder interface {
	Address() string
	TransferFrom(tokenId uint64, from, to, by string) error
}

// Payer delivers value between accounts. A payout may be rejected, in which
// case the purchase that triggered it is rolled back in full.
type Payer interface {
	Transfer(from, to string, amount *big.Int) error
}

// Marketplace escrows tokens and brokers sales. Every mutation runs under a
// single mutex so listings, item ids and custody are linearizable per
// instance.
type Marketplace interface {
	Address() string
	FeeAccount() string
	FeePercent() uint

	MakeItem(registry TokenHolder, tokenId uint64, price *big.Int, seller string) (uint64, error)
	TotalPrice(itemId uint64) (*big.Int, error)
	PurchaseItem(itemId uint64, payment *big.Int, buyer string) error

	Item(itemId uint64) (entity.Listing, error)
	ItemCount() uint64
}

type marketplace struct {
	mu sync.Mutex

	address    string
	feeAccount string
	feePercent uint

	items     map[uint64]*item
	itemCount uint64

	payer   Payer
	journal *event.Journal
}

// item pairs a listing with the registry that holds its token, so settlement
// can hand custody back out of escrow.
type item struct {
	listing  entity.Listing
	registry TokenHolder
}

func NewMarketplace(address, feeAccount string, feePercent uint, payer Payer, journal *event.Journal) Marketplace {
	return &marketplace{
		address:    address,
		feeAccount: feeAccount,
		feePercent: feePercent,
		items:      make(map[uint64]*item),
		payer:      payer,
		journal:    journal,
	}
}

func (m *marketplace) Address() string {
	return m.address
}

func (m *marketplace) FeeAccount() string {
	return m.feeAccount
}

func (m *marketplace) FeePercent() uint {
	return m.feePercent
}

// MakeItem pulls the token into escrow and records a new listing. The price
// check runs before any effect; a failed custody transfer leaves the item
// ledger untouched.
func (m *marketplace) MakeItem(registry TokenHolder, tokenId uint64, price *big.Int, seller string) (uint64, error) {
	if price == nil || price.Sign() <= 0 {
		return 0, ErrInvalidPrice
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := registry.TransferFrom(tokenId, seller, m.address, seller); err != nil {
		zap.L().With(
			zap.Error(err),
			zap.String("contract", registry.Address()),
			zap.Uint64("tokenId", tokenId),
			zap.String("seller", seller),
		).Warn("Marketplace: Failed to take custody")
		return 0, err
	}

	m.itemCount++
	itemId := m.itemCount

	m.items[itemId] = &item{
		listing: entity.Listing{
			ItemId:   itemId,
			Contract: registry.Address(),
			TokenId:  tokenId,
			Seller:   seller,
			Price:    new(big.Int).Set(price),
			Sold:     false,
		},
		registry: registry,
	}

	zap.L().With(
		zap.Uint64("itemId", itemId),
		zap.String("contract", registry.Address()),
		zap.Uint64("tokenId", tokenId),
		zap.String("seller", seller),
		zap.String("price", price.String()),
	).Info("Marketplace: Item offered")

	m.journal.Append(event.ItemOfferedEvent, entity.ItemOffered{
		ItemId:   itemId,
		Contract: registry.Address(),
		TokenId:  tokenId,
		Price:    new(big.Int).Set(price),
		Seller:   seller,
	})

	return itemId, nil
}

// TotalPrice returns price plus the market fee: fee = price * feePercent / 100,
// computed on the price stored at listing time.
func (m *marketplace) TotalPrice(itemId uint64) (*big.Int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, err := m.get(itemId)
	if err != nil {
		return nil, err
	}

	return m.totalPrice(it.listing.Price), nil
}

// PurchaseItem settles a listing: the seller is paid the price, the fee
// recipient gets everything above it (overpayment is not refunded), and the
// token leaves escrow for the buyer. Either every leg happens or none do.
func (m *marketplace) PurchaseItem(itemId uint64, payment *big.Int, buyer string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, err := m.get(itemId)
	if err != nil {
		return err
	}

	if it.listing.Sold {
		return ErrItemAlreadySold
	}

	if payment == nil || payment.Cmp(m.totalPrice(it.listing.Price)) < 0 {
		return ErrInsufficientPayment
	}

	price := new(big.Int).Set(it.listing.Price)
	fee := new(big.Int).Sub(payment, price)
	seller := it.listing.Seller

	if err := m.payer.Transfer(buyer, seller, price); err != nil {
		zap.L().With(zap.Error(err), zap.Uint64("itemId", itemId)).Warn("Marketplace: Seller payout failed")
		return err
	}

	if err := m.payer.Transfer(buyer, m.feeAccount, fee); err != nil {
		zap.L().With(zap.Error(err), zap.Uint64("itemId", itemId)).Warn("Marketplace: Fee payout failed")
		m.revert(seller, buyer, price, itemId)
		return err
	}

	if err := it.registry.TransferFrom(it.listing.TokenId, m.address, buyer, m.address); err != nil {
		zap.L().With(zap.Error(err), zap.Uint64("itemId", itemId)).Warn("Marketplace: Failed to release escrow")
		m.revert(m.feeAccount, buyer, fee, itemId)
		m.revert(seller, buyer, price, itemId)
		return err
	}

	it.listing.Sold = true

	zap.L().With(
		zap.Uint64("itemId", itemId),
		zap.String("contract", it.listing.Contract),
		zap.Uint64("tokenId", it.listing.TokenId),
		zap.String("seller", seller),
		zap.String("buyer", buyer),
		zap.String("price", price.String()),
		zap.String("fee", fee.String()),
	).Info("Marketplace: Item bought")

	m.journal.Append(event.ItemBoughtEvent, entity.ItemBought{
		ItemId:   itemId,
		Contract: it.listing.Contract,
		TokenId:  it.listing.TokenId,
		Price:    price,
		Fee:      fee,
		Seller:   seller,
		Buyer:    buyer,
	})

	return nil
}

func (m *marketplace) Item(itemId uint64) (entity.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, err := m.get(itemId)
	if err != nil {
		return entity.Listing{}, err
	}

	listing := it.listing
	listing.Price = new(big.Int).Set(it.listing.Price)

	return listing, nil
}

func (m *marketplace) ItemCount() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.itemCount
}

// get validates an item id. Item ids are sequential and gap-free, so the only
// validity check is the numeric range.
func (m *marketplace) get(itemId uint64) (*item, error) {
	if itemId == 0 || itemId > m.itemCount {
		return nil, ErrItemNotFound
	}

	return m.items[itemId], nil
}

func (m *marketplace) totalPrice(price *big.Int) *big.Int {
	fee := new(big.Int).Mul(price, new(big.Int).SetUint64(uint64(m.feePercent)))
	fee.Div(fee, big.NewInt(100))

	return fee.Add(fee, price)
}

// revert compensates an already-delivered transfer while unwinding a failed
// purchase. A compensation that itself fails is unrecoverable here.
func (m *marketplace) revert(from, to string, amount *big.Int, itemId uint64) {
	if err := m.payer.Transfer(from, to, amount); err != nil {
		zap.L().With(
			zap.Error(err),
			zap.Uint64("itemId", itemId),
			zap.String("from", from),
			zap.String("to", to),
			zap.String("amount", amount.String()),
		).Error("Marketplace: Failed to revert transfer")
	}
}
