package trading

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/williamzujkowski/fantasy-merchant/internal/player"
)

var (
	ErrInsufficientGold   = errors.New("insufficient gold")
	ErrItemNotInInventory = errors.New("item not found in inventory")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrInvalidPrice       = errors.New("price must not be negative")
)

type BuyResult struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PlayerGold int    `json:"playerGold"`
}

type SellResult struct {
	Name       string `json:"name"`
	PlayerGold int    `json:"playerGold"`
}

// Engine applies buy and sell transactions against a player ledger. The
// caller supplies the transaction price; the live catalog price is not
// consulted (see DESIGN.md on the trust boundary).
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Buy debits price*quantity and adds the goods to the (itemID, price) lot.
// A rejection leaves the ledger untouched.
func (e *Engine) Buy(acct *player.Account, itemID, name string, price, quantity int) (*BuyResult, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}

	var result BuyResult
	err := acct.Update(func(s *player.State) error {
		cost := price * quantity
		if s.Gold < cost {
			return ErrInsufficientGold
		}
		s.Gold -= cost

		if i := s.LotIndex(itemID, price); i >= 0 {
			s.Inventory[i].Quantity += quantity
		} else {
			s.Inventory = append(s.Inventory, player.InventoryEntry{
				ItemID:   itemID,
				Name:     name,
				Price:    price,
				Quantity: quantity,
			})
		}

		result = BuyResult{Name: name, Quantity: quantity, PlayerGold: s.Gold}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"item":     name,
		"price":    price,
		"quantity": quantity,
	}).Debug("Item bought")
	return &result, nil
}

// Sell credits price*quantity once the (itemID, price) lot is found.
// Selling more than the lot holds removes the lot, it does not fail.
func (e *Engine) Sell(acct *player.Account, itemID, name string, price, quantity int) (*SellResult, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}

	var result SellResult
	err := acct.Update(func(s *player.State) error {
		i := s.LotIndex(itemID, price)
		if i < 0 {
			return ErrItemNotInInventory
		}

		if s.Inventory[i].Quantity > quantity {
			s.Inventory[i].Quantity -= quantity
		} else {
			s.Inventory = append(s.Inventory[:i], s.Inventory[i+1:]...)
		}
		s.Gold += price * quantity

		result = SellResult{Name: name, PlayerGold: s.Gold}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"item":     name,
		"price":    price,
		"quantity": quantity,
	}).Debug("Item sold")
	return &result, nil
}
