// Package enrich pulls hardware-spec datasets from external sources to
// optionally enrich the catalog. Everything here is best-effort: one
// attempt per source with a fixed timeout, every record validated at the
// boundary, and generated sample data as the fallback when nothing
// usable comes back. No failure on this path is ever surfaced as a
// user-visible error.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/domain"
	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/schema"
)

// DefaultTimeout bounds one source fetch when the source does not set
// its own.
const DefaultTimeout = 5 * time.Second

// Source is one external hardware-spec dataset.
type Source struct {
	Name    string        `mapstructure:"name"`
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Result is the settled outcome of one source fetch. Exactly one of
// Products or Err is meaningful.
type Result struct {
	Source   string
	Products []domain.Product
	Err      error
}

// Fetcher runs enrichment fetches. Safe for reuse across calls.
type Fetcher struct {
	client *http.Client
}

// NewFetcher builds a fetcher with the given HTTP client; a nil client
// uses http.DefaultClient.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client}
}

// FetchAll queries every source concurrently and gathers all outcomes,
// success or failure. A slow or failing source never cancels its
// siblings; each goroutine settles on its own timeout.
func (f *Fetcher) FetchAll(ctx context.Context, sources []Source) []Result {
	results := make([]Result, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			products, err := f.fetchOne(ctx, src)
			results[i] = Result{Source: src.Name, Products: products, Err: err}
		}(i, src)
	}
	wg.Wait()

	return results
}

// Catalog returns every valid product gathered from the sources, or the
// generated sample set when no source yielded anything usable.
func (f *Fetcher) Catalog(ctx context.Context, sources []Source) []domain.Product {
	return CatalogFromResults(f.FetchAll(ctx, sources))
}

// CatalogFromResults gathers every valid product from already-settled
// results, falling back to the generated sample set when nothing usable
// came back. Callers that also report per-source outcomes derive both
// from the same FetchAll pass, keeping each source at exactly one
// attempt per run.
func CatalogFromResults(results []Result) []domain.Product {
	const op = "enrich.CatalogFromResults"
	log := slog.With("op", op)

	var products []domain.Product
	for _, res := range results {
		if res.Err != nil {
			log.Warn("source failed, skipping", "source", res.Source, "err", res.Err)
			continue
		}
		products = append(products, res.Products...)
	}

	if len(products) == 0 {
		log.Info("no usable external data, using generated samples")
		return Samples()
	}
	return products
}

func (f *Fetcher) fetchOne(parent context.Context, src Source) ([]domain.Product, error) {
	timeout := src.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: unexpected status %d", resp.StatusCode)
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	records := probeRecords(payload)
	if records == nil {
		return nil, fmt.Errorf("unrecognized response shape")
	}

	// One validator per fetch: fetchOne runs in a goroutine per source
	// and Validator is not safe for concurrent use.
	validator, err := schema.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	var products []domain.Product
	rejected := 0
	for _, rec := range records {
		normalizeRecord(rec, src.Name)
		p, err := validator.CoerceProduct(rec)
		if err != nil {
			rejected++
			continue
		}
		products = append(products, p)
	}
	if rejected > 0 {
		slog.Debug("rejected malformed records", "source", src.Name, "rejected", rejected)
	}

	return products, nil
}

// probeRecords handles the shapes these datasets come in: a top-level
// array of records, an object wrapping such an array under a well-known
// key, or an object keyed by model name. Anything else is rejected.
func probeRecords(payload any) []map[string]any {
	switch v := payload.(type) {
	case []any:
		return onlyMaps(v)
	case map[string]any:
		for _, key := range []string{"data", "products", "items", "results"} {
			if list, ok := v[key].([]any); ok {
				return onlyMaps(list)
			}
		}
		// Keyed object: each value is a record, the key its name.
		var records []map[string]any
		for name, raw := range v {
			rec, ok := raw.(map[string]any)
			if !ok {
				return nil
			}
			if _, ok := rec["name"]; !ok {
				rec["name"] = name
			}
			records = append(records, rec)
		}
		return records
	default:
		return nil
	}
}

func onlyMaps(list []any) []map[string]any {
	records := make([]map[string]any, 0, len(list))
	for _, raw := range list {
		rec, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// normalizeRecord renames well-known field aliases and synthesizes an
// identity for sources that do not carry one. Content fields are never
// guessed: a record without a price or stock figure stays without one
// and is rejected by validation.
func normalizeRecord(rec map[string]any, source string) {
	aliases := map[string]string{
		"title":       "name",
		"model":       "name",
		"msrp":        "price",
		"price_usd":   "price",
		"desc":        "description",
		"img":         "image",
		"image_url":   "image",
		"type":        "category",
		"in_stock":    "stock",
		"quantity":    "stock",
		"avg_rating":  "rating",
		"num_reviews": "reviews",
	}
	for from, to := range aliases {
		if v, ok := rec[from]; ok {
			if _, taken := rec[to]; !taken {
				rec[to] = v
			}
			delete(rec, from)
		}
	}

	if _, ok := rec["id"]; !ok {
		if name, ok := rec["name"].(string); ok {
			rec["id"] = slugify(source + "-" + name)
		}
	}
}

func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
