package garage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

var (
	// ErrDuplicate is matched by every *DuplicateError.
	ErrDuplicate = errors.New("vehicle already registered")
	// ErrVehicleNotFound is returned when no vehicle has the given plate.
	ErrVehicleNotFound = errors.New("vehicle not found")
)

// DuplicateError rejects a second vehicle with an existing plate.
type DuplicateError struct {
	Plate string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("vehicle with plate %s already exists in the garage", e.Plate)
}

func (e *DuplicateError) Unwrap() error {
	return ErrDuplicate
}

// Garage owns the in-memory vehicle list and writes it through to a
// Repository after every change.
type Garage struct {
	mu       sync.RWMutex
	repo     Repository
	vehicles []Vehicle
}

// New creates an empty Garage; call Load to read persisted vehicles.
func New(repo Repository) *Garage {
	return &Garage{repo: repo}
}

// Load replaces the in-memory list with the persisted one.
func (g *Garage) Load(ctx context.Context) error {
	vehicles, err := g.repo.LoadAll(ctx)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.vehicles = vehicles
	log.Printf("INFO: garage loaded with %d vehicles", len(vehicles))
	return nil
}

// List returns a snapshot of all vehicles in insertion order.
func (g *Garage) List() []Vehicle {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Vehicle, len(g.vehicles))
	copy(out, g.vehicles)
	return out
}

// Get looks a vehicle up by plate, case-insensitively.
func (g *Garage) Get(plate string) (Vehicle, error) {
	id := NormalizePlate(plate)

	g.mu.RLock()
	defer g.mu.RUnlock()

	if i := g.indexOf(id); i >= 0 {
		return g.vehicles[i], nil
	}
	return Vehicle{}, ErrVehicleNotFound
}

// Add appends v and persists the list. Duplicates are rejected before any change.
func (g *Garage) Add(ctx context.Context, v Vehicle) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.indexOf(v.ID()) >= 0 {
		return &DuplicateError{Plate: v.Plate}
	}

	next := make([]Vehicle, 0, len(g.vehicles)+1)
	next = append(next, g.vehicles...)
	next = append(next, v)

	return g.commit(ctx, next)
}

// Remove deletes the vehicle with plate and persists the list.
func (g *Garage) Remove(ctx context.Context, plate string) error {
	id := NormalizePlate(plate)

	g.mu.Lock()
	defer g.mu.Unlock()

	i := g.indexOf(id)
	if i < 0 {
		return ErrVehicleNotFound
	}

	next := make([]Vehicle, 0, len(g.vehicles)-1)
	next = append(next, g.vehicles[:i]...)
	next = append(next, g.vehicles[i+1:]...)

	return g.commit(ctx, next)
}

// commit persists next and only then makes it the current list. Caller holds mu.
func (g *Garage) commit(ctx context.Context, next []Vehicle) error {
	if err := g.repo.SaveAll(ctx, next); err != nil {
		log.Printf("ERROR: saving garage: %v", err)
		return fmt.Errorf("saving garage: %w", err)
	}
	g.vehicles = next
	return nil
}

func (g *Garage) indexOf(id string) int {
	for i, v := range g.vehicles {
		if v.ID() == id {
			return i
		}
	}
	return -1
}
