// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/prevencar/vistoria/internal/ids"
	"github.com/prevencar/vistoria/internal/store"
	"github.com/prevencar/vistoria/internal/validation"
)

// Catalog stores services and indications.
type Catalog struct {
	logger      *slog.Logger
	services    *store.Collection[Service]
	indications *store.Collection[Indication]
}

// New creates a Catalog over backend.
func New(
	logger *slog.Logger,
	backend store.Backend,
) *Catalog {
	return &Catalog{
		logger:      logger,
		services:    store.NewCollection(logger, backend, store.CollectionServices, Service.Key),
		indications: store.NewCollection(logger, backend, store.CollectionIndications, Indication.Key),
	}
}

// Seed installs DefaultServices when no service exists yet.
func (c *Catalog) Seed(
	ctx context.Context,
) error {
	keys, err := c.services.Keys(ctx)
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return nil
	}

	for _, s := range DefaultServices() {
		if err := c.services.Put(ctx, s); err != nil {
			return fmt.Errorf("seed service %s: %w", s.Name, err)
		}
	}

	c.logger.Info("seeded default services", slog.Int("count", len(DefaultServices())))

	return nil
}

// Services returns every service ordered by name.
func (c *Catalog) Services(
	ctx context.Context,
) ([]Service, error) {
	items, err := c.services.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].Name < items[b].Name
	})

	return items, nil
}

// Service returns one service.
func (c *Catalog) Service(
	ctx context.Context,
	id string,
) (*Service, error) {
	return get(ctx, c.services, id)
}

// SaveService inserts or replaces s, generating an id when empty.
func (c *Catalog) SaveService(
	ctx context.Context,
	s Service,
) (*Service, error) {
	return save(ctx, c.services, s, func(v *Service) *string { return &v.ID })
}

// DeleteService removes a service. Missing ids are ignored.
func (c *Catalog) DeleteService(
	ctx context.Context,
	id string,
) error {
	return c.services.Delete(ctx, id)
}

// PriceOf sums the catalog prices of the named services. Unknown names
// contribute nothing and are returned separately.
func (c *Catalog) PriceOf(
	ctx context.Context,
	names []string,
) (decimal.Decimal, []string, error) {
	services, err := c.services.List(ctx)
	if err != nil {
		return decimal.Zero, nil, err
	}

	byName := make(map[string]decimal.Decimal, len(services))
	for _, s := range services {
		byName[s.Name] = s.Price
	}

	total := decimal.Zero
	var unknown []string
	for _, n := range names {
		price, ok := byName[n]
		if !ok {
			unknown = append(unknown, n)
			continue
		}
		total = total.Add(price)
	}

	return total, unknown, nil
}

// Indications returns every indication ordered by name.
func (c *Catalog) Indications(
	ctx context.Context,
) ([]Indication, error) {
	items, err := c.indications.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].Name < items[b].Name
	})

	return items, nil
}

// Indication returns one indication.
func (c *Catalog) Indication(
	ctx context.Context,
	id string,
) (*Indication, error) {
	return get(ctx, c.indications, id)
}

// SaveIndication inserts or replaces i, generating an id when empty.
func (c *Catalog) SaveIndication(
	ctx context.Context,
	i Indication,
) (*Indication, error) {
	return save(ctx, c.indications, i, func(v *Indication) *string { return &v.ID })
}

// DeleteIndication removes an indication. Missing ids are ignored.
func (c *Catalog) DeleteIndication(
	ctx context.Context,
	id string,
) error {
	return c.indications.Delete(ctx, id)
}

func get[T any](
	ctx context.Context,
	coll *store.Collection[T],
	id string,
) (*T, error) {
	v, err := coll.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, coll.Name(), id)
		}
		return nil, err
	}

	return v, nil
}

func save[T any](
	ctx context.Context,
	coll *store.Collection[T],
	v T,
	idOf func(*T) *string,
) (*T, error) {
	if id := idOf(&v); *id == "" {
		*id = ids.New()
	}

	if errMsg, ok := validation.Struct(v); !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, errMsg)
	}

	if err := coll.Put(ctx, v); err != nil {
		return nil, err
	}

	return &v, nil
}
