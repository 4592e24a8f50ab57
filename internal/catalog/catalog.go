// ABOUTME: Catalog provider backed by a YAML product file
// ABOUTME: Products are re-read on a refresh interval so edits show up without a restart

package catalog

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Product is a single catalog entry. ID is the ordinal position of the
// product in the catalog snapshot it was read from.
type Product struct {
	ID          int     `yaml:"-"`
	Name        string  `yaml:"name"`
	Price       float64 `yaml:"price"`
	Description string  `yaml:"description"`
	ImageRef    string  `yaml:"image_url"`
}

// Provider exposes a read-only ordered product listing.
type Provider interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

// catalogFile is the on-disk YAML shape.
type catalogFile struct {
	Products []Product `yaml:"products"`
}

// FileCatalog reads products from a YAML file and caches the result for a
// refresh interval. A read failure after a successful load keeps serving the
// last good snapshot.
type FileCatalog struct {
	path    string
	refresh time.Duration

	mu       sync.Mutex
	cached   []Product
	loadedAt time.Time
}

// DefaultRefresh is how long a loaded catalog snapshot is served before the
// file is re-read.
const DefaultRefresh = 1 * time.Minute

// NewFileCatalog creates a catalog backed by the YAML file at path.
// A refresh of zero uses DefaultRefresh.
func NewFileCatalog(path string, refresh time.Duration) *FileCatalog {
	if refresh <= 0 {
		refresh = DefaultRefresh
	}
	return &FileCatalog{
		path:    path,
		refresh: refresh,
	}
}

// ListProducts returns the current catalog snapshot, re-reading the file if
// the cached copy is older than the refresh interval. The returned slice is a
// copy; callers may hold on to it.
func (c *FileCatalog) ListProducts(ctx context.Context) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached == nil || time.Since(c.loadedAt) >= c.refresh {
		products, err := c.load()
		if err != nil {
			if c.cached == nil {
				return nil, err
			}
			// Serve the stale snapshot; the next call retries the file.
			return copyProducts(c.cached), nil
		}
		c.cached = products
		c.loadedAt = time.Now()
	}

	return copyProducts(c.cached), nil
}

// load reads and parses the catalog file.
func (c *FileCatalog) load() ([]Product, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}

	products := file.Products
	for i := range products {
		products[i].ID = i
	}
	return products, nil
}

func copyProducts(products []Product) []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}
