package registry

import (
	"errors"
	"sync"

	"github.com/ZilDuck/nft-marketplace/internal/entity"
	"github.com/ZilDuck/nft-marketplace/internal/event"
	"go.uber.org/zap"
)

var (
	ErrTokenNotFound = errors.New("token doesn't exist")
	ErrNotTokenOwner = errors.New("from is not the token owner")
	ErrNotAuthorized = errors.New("sender is not owner nor approved for all")
)

// TokenRegistry is the authoritative ownership and metadata ledger for a
// single collection. Token ids are sequential from 1, never reused, tokens are
// never deleted.
type TokenRegistry interface {
	Address() string
	TotalSupply() uint64

	Mint(tokenUri, by string) uint64
	OwnerOf(tokenId uint64) (string, error)
	TokenUri(tokenId uint64) (string, error)

	IsApprovedForAll(owner, operator string) bool
	SetApprovalForAll(owner, operator string, approved bool)
	TransferFrom(tokenId uint64, from, to, by string) error
}

type tokenRegistry struct {
	mu sync.RWMutex

	address    string
	tokens     map[uint64]*entity.Token
	tokenCount uint64
	approvals  map[string]map[string]bool

	journal *event.Journal
}

func NewTokenRegistry(address string, journal *event.Journal) TokenRegistry {
	return &tokenRegistry{
		address:   address,
		tokens:    make(map[uint64]*entity.Token),
		approvals: make(map[string]map[string]bool),
		journal:   journal,
	}
}

func (r *tokenRegistry) Address() string {
	return r.address
}

func (r *tokenRegistry) TotalSupply() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.tokenCount
}

func (r *tokenRegistry) Mint(tokenUri, by string) uint64 {
	r.mu.Lock()
	r.tokenCount++
	tokenId := r.tokenCount
	r.tokens[tokenId] = &entity.Token{
		Contract: r.address,
		TokenId:  tokenId,
		TokenUri: tokenUri,
		Owner:    by,
	}
	r.mu.Unlock()

	zap.L().With(
		zap.String("contract", r.address),
		zap.Uint64("tokenId", tokenId),
		zap.String("owner", by),
	).Info("Registry: Mint")

	r.journal.Append(event.TokenMintedEvent, entity.TokenMinted{
		Contract: r.address,
		TokenId:  tokenId,
		TokenUri: tokenUri,
		Owner:    by,
	})

	return tokenId
}

func (r *tokenRegistry) OwnerOf(tokenId uint64) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	token, ok := r.tokens[tokenId]
	if !ok {
		return "", ErrTokenNotFound
	}

	return token.Owner, nil
}

func (r *tokenRegistry) TokenUri(tokenId uint64) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	token, ok := r.tokens[tokenId]
	if !ok {
		return "", ErrTokenNotFound
	}

	return token.TokenUri, nil
}

func (r *tokenRegistry) IsApprovedForAll(owner, operator string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.approvals[owner][operator]
}

// SetApprovalForAll is idempotent; the last write wins.
func (r *tokenRegistry) SetApprovalForAll(owner, operator string, approved bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.approvals[owner] == nil {
		r.approvals[owner] = make(map[string]bool)
	}
	r.approvals[owner][operator] = approved
}

// TransferFrom moves a token between accounts. The caller must be the current
// holder or an approved operator for it. All checks run before any mutation.
func (r *tokenRegistry) TransferFrom(tokenId uint64, from, to, by string) error {
	r.mu.Lock()

	token, ok := r.tokens[tokenId]
	if !ok {
		r.mu.Unlock()
		return ErrTokenNotFound
	}

	if by != from && !r.approvals[from][by] {
		r.mu.Unlock()
		return ErrNotAuthorized
	}

	if token.Owner != from {
		r.mu.Unlock()
		return ErrNotTokenOwner
	}

	token.Owner = to
	r.mu.Unlock()

	zap.L().With(
		zap.String("contract", r.address),
		zap.Uint64("tokenId", tokenId),
		zap.String("from", from),
		zap.String("to", to),
	).Debug("Registry: Transfer")

	r.journal.Append(event.TokenTransferredEvent, entity.TokenTransferred{
		Contract: r.address,
		TokenId:  tokenId,
		From:     from,
		To:       to,
	})

	return nil
}
