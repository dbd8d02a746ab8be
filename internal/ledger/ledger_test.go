package ledger_test

import (
	"math/big"
	"testing"

	"github.com/ZilDuck/nft-marketplace/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice = "0x0000000000000000000000000000000000000001"
	bob   = "0x0000000000000000000000000000000000000002"
)

func TestDeposit(t *testing.T) {
	accounts := ledger.NewLedger()

	require.NoError(t, accounts.Deposit(alice, big.NewInt(100)))
	require.NoError(t, accounts.Deposit(alice, big.NewInt(50)))

	assert.Equal(t, "150", accounts.Balance(alice).String())
	assert.Equal(t, "0", accounts.Balance(bob).String())
}

func TestDeposit_Negative(t *testing.T) {
	accounts := ledger.NewLedger()

	err := accounts.Deposit(alice, big.NewInt(-1))
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
}

func TestTransfer(t *testing.T) {
	accounts := ledger.NewLedger()
	require.NoError(t, accounts.Deposit(alice, big.NewInt(100)))

	require.NoError(t, accounts.Transfer(alice, bob, big.NewInt(60)))

	assert.Equal(t, "40", accounts.Balance(alice).String())
	assert.Equal(t, "60", accounts.Balance(bob).String())
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	accounts := ledger.NewLedger()
	require.NoError(t, accounts.Deposit(alice, big.NewInt(10)))

	err := accounts.Transfer(alice, bob, big.NewInt(11))
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)

	// nothing moved
	assert.Equal(t, "10", accounts.Balance(alice).String())
	assert.Equal(t, "0", accounts.Balance(bob).String())
}

func TestBalance_ReturnsCopy(t *testing.T) {
	accounts := ledger.NewLedger()
	require.NoError(t, accounts.Deposit(alice, big.NewInt(10)))

	balance := accounts.Balance(alice)
	balance.SetInt64(9999)

	assert.Equal(t, "10", accounts.Balance(alice).String())
}
