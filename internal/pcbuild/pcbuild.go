// Package pcbuild is the PC-builder configurator: named component slots
// holding at most one product each, a completion measure over the
// required slots, and a single saved build in the key/value substrate.
//
// No cross-component compatibility is validated; socket, wattage, and
// form-factor matching are the shopper's problem.
package pcbuild

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/domain"
	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/kv"
)

// Slot names a position in a build.
type Slot string

const (
	SlotCPU         Slot = "cpu"
	SlotMotherboard Slot = "motherboard"
	SlotRAM         Slot = "ram"
	SlotGPU         Slot = "gpu"
	SlotStorage     Slot = "storage"
	SlotPSU         Slot = "psu"
	SlotCase        Slot = "case"
	SlotCooling     Slot = "cooling"
	SlotPeripherals Slot = "peripherals"
	SlotMonitor     Slot = "monitor"
)

// Slots lists every slot in display order.
var Slots = []Slot{
	SlotCPU, SlotMotherboard, SlotRAM, SlotGPU, SlotStorage, SlotPSU,
	SlotCase, SlotCooling, SlotPeripherals, SlotMonitor,
}

// RequiredSlots must all be filled for a build to be complete.
var RequiredSlots = []Slot{
	SlotCPU, SlotMotherboard, SlotRAM, SlotGPU, SlotStorage, SlotPSU,
}

// ErrUnknownSlot is returned for a slot name outside the fixed set.
var ErrUnknownSlot = errors.New("unknown component slot")

// Build is one in-progress configuration. Zero value is usable.
type Build struct {
	Components map[Slot]domain.Product `json:"components"`
}

// New returns an empty build.
func New() *Build {
	return &Build{Components: make(map[Slot]domain.Product)}
}

// ParseSlot validates a slot name.
func ParseSlot(name string) (Slot, error) {
	for _, s := range Slots {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSlot, name)
}

// Set places a product in a slot, replacing any previous choice.
func (b *Build) Set(slot Slot, p domain.Product) error {
	if _, err := ParseSlot(string(slot)); err != nil {
		return err
	}
	if b.Components == nil {
		b.Components = make(map[Slot]domain.Product)
	}
	b.Components[slot] = p
	return nil
}

// Remove clears a slot. Clearing an empty slot is a no-op.
func (b *Build) Remove(slot Slot) {
	delete(b.Components, slot)
}

// Component returns the product in a slot, if any.
func (b *Build) Component(slot Slot) (domain.Product, bool) {
	p, ok := b.Components[slot]
	return p, ok
}

// Completion returns the percentage (0-100) of required slots filled.
func (b *Build) Completion() int {
	filled := 0
	for _, slot := range RequiredSlots {
		if _, ok := b.Components[slot]; ok {
			filled++
		}
	}
	return filled * 100 / len(RequiredSlots)
}

// Complete reports whether every required slot is filled.
func (b *Build) Complete() bool {
	return b.Completion() == 100
}

// Total sums the prices of every selected component.
func (b *Build) Total() float64 {
	var sum float64
	for _, p := range b.Components {
		sum += p.Price
	}
	return sum
}

// Save mirrors the build to the substrate. One saved build only; saving
// replaces the previous one.
func (b *Build) Save(kvs *kv.Store) error {
	if err := kvs.PutJSON(kv.KeyPCBuild, b); err != nil {
		return fmt.Errorf("save build: %w", err)
	}
	return nil
}

// Load restores the saved build. A missing or unparseable saved build
// yields an empty one; the unparseable case logs a warning.
func Load(kvs *kv.Store) *Build {
	var b Build
	err := kvs.GetJSON(kv.KeyPCBuild, &b)
	switch {
	case err == nil:
		if b.Components == nil {
			b.Components = make(map[Slot]domain.Product)
		}
		return &b
	case errors.Is(err, kv.ErrNoKey):
		return New()
	default:
		slog.Warn("discarding unreadable saved build", "err", err)
		return New()
	}
}
