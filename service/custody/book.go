package custody

import (
	"context"
	"errors"
	"strings"
	"sync"

	"lendingpool/core"
)

// ErrInsufficientBalance source account cannot cover the transfer
var ErrInsufficientBalance = errors.New("custody: insufficient balance")

// Book in-process double-entry custody
type Book struct {
	mu       sync.Mutex
	balances map[string]map[string]uint64
	applied  map[string]bool
	// tops up non-pool accounts on demand, dev mode only
	faucet bool
}

// NewBook strict custody book, accounts must be funded first
func NewBook() *Book {
	return &Book{
		balances: make(map[string]map[string]uint64),
		applied:  make(map[string]bool),
	}
}

// NewFaucetBook custody book whose user accounts never run dry
func NewFaucetBook() *Book {
	b := NewBook()
	b.faucet = true
	return b
}

// Fund credits account out of thin air
func (b *Book) Fund(account, assetID string, amount uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.credit(account, assetID, amount)
}

// Balance of account in asset
func (b *Book) Balance(account, assetID string) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[account][assetID]
}

func (b *Book) Transfer(_ context.Context, transfer *core.Transfer) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.applied[transfer.TraceID] {
		return nil
	}

	from, to := transfer.From(), transfer.To()
	b.credit(from, transfer.AssetID, 0)
	if have := b.balances[from][transfer.AssetID]; have < transfer.Amount {
		if !b.faucet || strings.HasPrefix(from, core.PoolAccount("")) {
			return ErrInsufficientBalance
		}

		b.credit(from, transfer.AssetID, transfer.Amount-have)
	}

	b.balances[from][transfer.AssetID] -= transfer.Amount
	b.credit(to, transfer.AssetID, transfer.Amount)
	b.applied[transfer.TraceID] = true
	return nil
}

func (b *Book) credit(account, assetID string, amount uint64) {
	if b.balances[account] == nil {
		b.balances[account] = make(map[string]uint64)
	}

	b.balances[account][assetID] += amount
}
