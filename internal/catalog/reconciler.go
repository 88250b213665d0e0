package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/williamzujkowski/fantasy-merchant/internal/models"
)

// PriceDrifter perturbs the price of a matched catalog item.
type PriceDrifter interface {
	Drift(price int) int
}

// Reconciler merges external item definitions into the catalog: items
// matched by name get a price drift, unmatched definitions are inserted
// verbatim. Items are never deleted. Each item commits on its own, so a
// failure mid-run leaves earlier updates in place.
type Reconciler struct {
	store   Store
	source  Source
	drifter PriceDrifter
	onCycle func(items []models.Item)
}

func NewReconciler(store Store, source Source, drifter PriceDrifter) *Reconciler {
	return &Reconciler{
		store:   store,
		source:  source,
		drifter: drifter,
	}
}

// OnCycle registers a hook invoked with the full catalog after every
// successful run.
func (r *Reconciler) OnCycle(fn func(items []models.Item)) {
	r.onCycle = fn
}

func (r *Reconciler) Run(ctx context.Context) error {
	defs, err := r.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load item definitions: %w", err)
	}

	drifted, inserted := 0, 0
	for _, def := range defs {
		existing, err := r.store.FindByName(ctx, def.Name)
		switch {
		case err == nil:
			newPrice := r.drifter.Drift(existing.Price)
			if err := r.store.UpdatePrice(ctx, existing.ID, newPrice); err != nil {
				return fmt.Errorf("update price of %q: %w", def.Name, err)
			}
			if err := r.store.RecordPrice(ctx, existing.ID, newPrice); err != nil {
				return fmt.Errorf("record price of %q: %w", def.Name, err)
			}
			drifted++
		case errors.Is(err, ErrItemNotFound):
			item := &models.Item{Name: def.Name, Price: def.Price}
			if err := r.store.Create(ctx, item); err != nil {
				return fmt.Errorf("insert item %q: %w", def.Name, err)
			}
			if err := r.store.RecordPrice(ctx, item.ID, item.Price); err != nil {
				return fmt.Errorf("record price of %q: %w", def.Name, err)
			}
			inserted++
		default:
			return fmt.Errorf("look up item %q: %w", def.Name, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"drifted":  drifted,
		"inserted": inserted,
	}).Info("Catalog reconciled")

	if r.onCycle != nil {
		items, err := r.store.List(ctx)
		if err != nil {
			logrus.WithError(err).Warn("Failed to list catalog for cycle hook")
			return nil
		}
		r.onCycle(items)
	}
	return nil
}
