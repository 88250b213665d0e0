package player

import (
	"sync"
	"time"
)

// Registry maps session player ids to live accounts. Accounts exist only
// for the lifetime of their session; idle ones are dropped by Sweep.
type Registry struct {
	mu           sync.Mutex
	accounts     map[string]*Account
	startingGold int
}

func NewRegistry(startingGold int) *Registry {
	return &Registry{
		accounts:     make(map[string]*Account),
		startingGold: startingGold,
	}
}

// GetOrCreate returns the account for id, seeding a fresh one with the
// starting gold balance on first contact.
func (r *Registry) GetOrCreate(id string) *Account {
	r.mu.Lock()
	defer r.mu.Unlock()

	if acct, ok := r.accounts[id]; ok {
		return acct
	}
	acct := NewAccount(r.startingGold)
	r.accounts[id] = acct
	return acct
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.accounts)
}

// Sweep drops accounts idle for longer than maxIdle and returns how many
// were removed.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, acct := range r.accounts {
		if acct.LastSeen().Before(cutoff) {
			delete(r.accounts, id)
			removed++
		}
	}
	return removed
}
