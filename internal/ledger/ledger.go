package ledger

import (
	"errors"
	"math/big"
	"sync"

	"go.uber.org/zap"
)

var (
	ErrInvalidAmount     = errors.New("amount must not be negative")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Ledger holds account balances in Qa and moves value between accounts with a
// push-payment model. Transfers are all-or-nothing.
type Ledger interface {
	Deposit(account string, amount *big.Int) error
	Balance(account string) *big.Int
	Transfer(from, to string, amount *big.Int) error
}

type ledger struct {
	mu       sync.Mutex
	balances map[string]*big.Int
}

func NewLedger() Ledger {
	return &ledger{balances: make(map[string]*big.Int)}
}

func (l *ledger) Deposit(account string, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.balance(account).Add(l.balance(account), amount)

	zap.L().With(zap.String("account", account), zap.String("amount", amount.String())).Debug("Ledger: Deposit")

	return nil
}

func (l *ledger) Balance(account string) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return new(big.Int).Set(l.balance(account))
}

func (l *ledger) Transfer(from, to string, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fromBalance := l.balance(from)
	if fromBalance.Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}

	fromBalance.Sub(fromBalance, amount)
	l.balance(to).Add(l.balance(to), amount)

	zap.L().With(
		zap.String("from", from),
		zap.String("to", to),
		zap.String("amount", amount.String()),
	).Debug("Ledger: Transfer")

	return nil
}

func (l *ledger) balance(account string) *big.Int {
	if _, ok := l.balances[account]; !ok {
		l.balances[account] = new(big.Int)
	}

	return l.balances[account]
}
