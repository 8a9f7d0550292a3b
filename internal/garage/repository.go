package garage

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/goccy/go-json"

	"github.com/i474232898/garage-planner/internal/store"
)

// Repository persists the whole vehicle list at once.
type Repository interface {
	LoadAll(ctx context.Context) ([]Vehicle, error)
	SaveAll(ctx context.Context, vehicles []Vehicle) error
}

// SlotRepository keeps the vehicle list as one JSON array in a named KV slot.
type SlotRepository struct {
	kv   store.KV
	slot string
}

func NewSlotRepository(kv store.KV, slot string) *SlotRepository {
	if slot == "" {
		slot = "garage"
	}
	return &SlotRepository{kv: kv, slot: slot}
}

// LoadAll returns the stored vehicles. A slot that was never written is an
// empty garage; records that no longer validate are dropped with a log line.
func (r *SlotRepository) LoadAll(ctx context.Context) ([]Vehicle, error) {
	data, err := r.kv.Get(ctx, r.slot)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot %q: %w", r.slot, err)
	}

	var records []Vehicle
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding slot %q: %w", r.slot, err)
	}

	vehicles := make([]Vehicle, 0, len(records))
	for _, rec := range records {
		v, err := NewVehicle(rec.Plate, rec.Model, rec.Make, rec.Year, rec.Color)
		if err != nil {
			log.Printf("INFO: skipping stored vehicle %q: %v", rec.Plate, err)
			continue
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}

// SaveAll overwrites the slot with vehicles, in order.
func (r *SlotRepository) SaveAll(ctx context.Context, vehicles []Vehicle) error {
	if vehicles == nil {
		vehicles = []Vehicle{}
	}
	data, err := json.Marshal(vehicles)
	if err != nil {
		return err
	}
	if err := r.kv.Put(ctx, r.slot, data); err != nil {
		return fmt.Errorf("writing slot %q: %w", r.slot, err)
	}
	return nil
}

var _ Repository = (*SlotRepository)(nil)
