package player

import (
	"sync"
	"time"
)

// InventoryEntry is one lot of a purchased item: the quantity held at the
// exact price paid. Purchases of the same item at a different price form a
// separate lot.
type InventoryEntry struct {
	ItemID   string `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// State is the mutable ledger of one player: gold plus inventory lots. A
// lot with quantity 0 is never kept.
type State struct {
	Gold      int
	Inventory []InventoryEntry
}

// LotIndex returns the index of the lot keyed by (itemID, price), or -1.
func (s *State) LotIndex(itemID string, price int) int {
	for i, entry := range s.Inventory {
		if entry.ItemID == itemID && entry.Price == price {
			return i
		}
	}
	return -1
}

// Account is a session-scoped player ledger. All mutation goes through
// Update, which holds the account lock for the whole read-check-write.
type Account struct {
	mu       sync.Mutex
	state    State
	lastSeen time.Time
}

func NewAccount(startingGold int) *Account {
	return &Account{
		state:    State{Gold: startingGold},
		lastSeen: time.Now(),
	}
}

// Update runs fn against the ledger state under the account lock. If fn
// returns an error the caller treats the transaction as rejected; fn must
// not mutate state on the error path.
func (a *Account) Update(fn func(s *State) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastSeen = time.Now()
	return fn(&a.state)
}

func (a *Account) Gold() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastSeen = time.Now()
	return a.state.Gold
}

// Inventory returns a copy of the account's lots.
func (a *Account) Inventory() []InventoryEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastSeen = time.Now()
	out := make([]InventoryEntry, len(a.state.Inventory))
	copy(out, a.state.Inventory)
	return out
}

func (a *Account) LastSeen() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastSeen
}
