// Package schema validates product records at the catalog boundary.
//
// Records coming from outside the module - the bundled seed dataset and
// external hardware-spec sources - are unified against a CUE schema
// before they become domain.Product values. Malformed records are
// rejected, not guessed at.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/domain"
)

//go:embed product.cue
var productCUE string

// Validator holds the compiled product schema.
// Not safe for concurrent use; construct one per goroutine if needed.
type Validator struct {
	ctx     *cue.Context
	product cue.Value
}

// NewValidator compiles the embedded product schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(productCUE)
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile product schema: %w", err)
	}

	product := v.LookupPath(cue.ParsePath("product"))
	if err := product.Err(); err != nil {
		return nil, fmt.Errorf("lookup product schema: %w", err)
	}

	return &Validator{ctx: ctx, product: product}, nil
}

// CoerceProduct validates a raw record against the product schema and
// decodes it into a domain.Product. The record is rejected when a
// required field (id, name, price, stock) is missing or any known field
// has the wrong type or range.
func (v *Validator) CoerceProduct(raw map[string]any) (domain.Product, error) {
	val := v.ctx.Encode(raw)
	if err := val.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("encode record: %w", err)
	}

	unified := v.product.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return domain.Product{}, fmt.Errorf("invalid product record: %w", err)
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return domain.Product{}, fmt.Errorf("re-encode record: %w", err)
	}

	var p domain.Product
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&p); err != nil {
		return domain.Product{}, fmt.Errorf("decode record: %w", err)
	}
	return p, nil
}

// ValidateProduct checks an already-typed product against the schema.
// Used for the bundled seed dataset before first insert.
func (v *Validator) ValidateProduct(p domain.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode product: %w", err)
	}
	// Timestamps are storage concerns, not record shape.
	delete(raw, "createdAt")
	delete(raw, "updatedAt")

	val := v.ctx.Encode(raw)
	if err := val.Err(); err != nil {
		return fmt.Errorf("encode product: %w", err)
	}

	unified := v.product.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid product %s: %w", p.ID, err)
	}
	return nil
}
