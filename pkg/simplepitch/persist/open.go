package persist

import (
	"context"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
)

// Open loads persisted state, builds a Store from it and attaches the adapter
// so later changes are saved.
func Open(ctx context.Context, a *Adapter, opts ...simplepitch.StoreOption) (*simplepitch.Store, error) {
	snap, err := a.Load(ctx)
	if err != nil {
		return nil, err
	}
	store := simplepitch.NewStore(snap.Brands, snap.Doctors, opts...)
	a.Attach(store)
	return store, nil
}
