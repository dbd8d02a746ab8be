package registry_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/ZilDuck/nft-marketplace/internal/event"
	"github.com/ZilDuck/nft-marketplace/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	contractAddr = "0x00000000000000000000000000000000000000aa"
	alice        = "0x0000000000000000000000000000000000000001"
	bob          = "0x0000000000000000000000000000000000000002"
	carol        = "0x0000000000000000000000000000000000000003"
)

func newRegistry() registry.TokenRegistry {
	return registry.NewTokenRegistry(contractAddr, event.NewJournal())
}

func TestMint(t *testing.T) {
	tokens := newRegistry()

	// token ids are sequential from 1 in mint order
	for want := uint64(1); want <= 5; want++ {
		tokenId := tokens.Mint(fmt.Sprintf("ipfs://QmToken%d", want), alice)
		assert.Equal(t, want, tokenId)

		owner, err := tokens.OwnerOf(tokenId)
		require.NoError(t, err)
		assert.Equal(t, alice, owner)
	}

	assert.Equal(t, uint64(5), tokens.TotalSupply())

	tokenUri, err := tokens.TokenUri(3)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://QmToken3", tokenUri)
}

func TestMint_Concurrent(t *testing.T) {
	tokens := newRegistry()

	const mints = 50
	var wg sync.WaitGroup
	for i := 0; i < mints; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tokens.Mint("ipfs://QmToken", alice)
		}()
	}
	wg.Wait()

	require.Equal(t, uint64(mints), tokens.TotalSupply())
	for tokenId := uint64(1); tokenId <= mints; tokenId++ {
		_, err := tokens.OwnerOf(tokenId)
		assert.NoError(t, err)
	}
}

func TestOwnerOf_NotFound(t *testing.T) {
	tokens := newRegistry()

	_, err := tokens.OwnerOf(1)
	assert.ErrorIs(t, err, registry.ErrTokenNotFound)

	_, err = tokens.TokenUri(1)
	assert.ErrorIs(t, err, registry.ErrTokenNotFound)
}

func TestSetApprovalForAll(t *testing.T) {
	tokens := newRegistry()

	assert.False(t, tokens.IsApprovedForAll(alice, bob))

	// repeated grants are idempotent
	tokens.SetApprovalForAll(alice, bob, true)
	tokens.SetApprovalForAll(alice, bob, true)
	tokens.SetApprovalForAll(alice, bob, true)
	assert.True(t, tokens.IsApprovedForAll(alice, bob))

	// a single revoke wins regardless of prior repeat grants
	tokens.SetApprovalForAll(alice, bob, false)
	assert.False(t, tokens.IsApprovedForAll(alice, bob))
}

func TestTransferFrom(t *testing.T) {
	tokens := newRegistry()
	tokenId := tokens.Mint("ipfs://QmToken1", alice)

	require.NoError(t, tokens.TransferFrom(tokenId, alice, bob, alice))

	owner, err := tokens.OwnerOf(tokenId)
	require.NoError(t, err)
	assert.Equal(t, bob, owner)
}

func TestTransferFrom_Operator(t *testing.T) {
	tokens := newRegistry()
	tokenId := tokens.Mint("ipfs://QmToken1", alice)

	tokens.SetApprovalForAll(alice, carol, true)
	require.NoError(t, tokens.TransferFrom(tokenId, alice, bob, carol))

	owner, err := tokens.OwnerOf(tokenId)
	require.NoError(t, err)
	assert.Equal(t, bob, owner)
}

func TestTransferFrom_NotAuthorized(t *testing.T) {
	tokens := newRegistry()
	tokenId := tokens.Mint("ipfs://QmToken1", alice)

	err := tokens.TransferFrom(tokenId, alice, bob, carol)
	assert.ErrorIs(t, err, registry.ErrNotAuthorized)

	owner, _ := tokens.OwnerOf(tokenId)
	assert.Equal(t, alice, owner)
}

func TestTransferFrom_RevokedOperator(t *testing.T) {
	tokens := newRegistry()
	tokenId := tokens.Mint("ipfs://QmToken1", alice)

	tokens.SetApprovalForAll(alice, carol, true)
	tokens.SetApprovalForAll(alice, carol, false)

	err := tokens.TransferFrom(tokenId, alice, bob, carol)
	assert.ErrorIs(t, err, registry.ErrNotAuthorized)
}

func TestTransferFrom_NotOwner(t *testing.T) {
	tokens := newRegistry()
	tokenId := tokens.Mint("ipfs://QmToken1", alice)

	err := tokens.TransferFrom(tokenId, bob, carol, bob)
	assert.ErrorIs(t, err, registry.ErrNotTokenOwner)
}

func TestTransferFrom_NotFound(t *testing.T) {
	tokens := newRegistry()

	err := tokens.TransferFrom(9, alice, bob, alice)
	assert.ErrorIs(t, err, registry.ErrTokenNotFound)
}
