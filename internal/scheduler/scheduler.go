package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/garage-planner/internal/garage"
	"github.com/i474232898/garage-planner/internal/vehicleinfo"
)

// Reminder flags a vehicle that needs attention.
type Reminder struct {
	Plate         string `json:"plate"`
	PendingRecall bool   `json:"pendingRecall"`
	Recall        string `json:"recall,omitempty"`
	ReviewDue     bool   `json:"reviewDue"`
	NextReview    string `json:"nextReview,omitempty"` // YYYY-MM-DD
}

// Scheduler periodically checks registered vehicles for recalls and upcoming reviews.
type Scheduler struct {
	scheduler *gocron.Scheduler
	garage    *garage.Garage
	lookup    vehicleinfo.Lookup
	interval  time.Duration
	window    time.Duration
}

// New creates a new Scheduler. window is how far ahead a review counts as due.
func New(g *garage.Garage, lookup vehicleinfo.Lookup, interval, window time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		garage:    g,
		lookup:    lookup,
		interval:  interval,
		window:    window,
	}
}

// Start schedules the periodic sweep and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: review sweep disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		log.Println("scheduler: running review sweep")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		for _, r := range s.Sweep(ctx, time.Now().UTC()) {
			if r.PendingRecall {
				log.Printf("scheduler: %s has a pending recall: %s", r.Plate, r.Recall)
			}
			if r.ReviewDue {
				log.Printf("scheduler: %s review due on %s", r.Plate, r.NextReview)
			}
		}
		log.Println("scheduler: completed review sweep")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// Sweep returns a reminder for every vehicle with a pending recall or a
// review on or before now+window, in garage order. Lookups run one at a time.
func (s *Scheduler) Sweep(ctx context.Context, now time.Time) []Reminder {
	deadline := now.Add(s.window)

	var out []Reminder
	for _, v := range s.garage.List() {
		if ctx.Err() != nil {
			break
		}

		d, err := s.lookup.LookupByID(ctx, v.ID())
		if errors.Is(err, vehicleinfo.ErrNotFound) {
			continue
		}
		if err != nil {
			log.Printf("scheduler: lookup failed for %s: %v", v.ID(), err)
			continue
		}

		r := Reminder{Plate: v.Plate}
		if d.PendingRecall {
			r.PendingRecall = true
			r.Recall = d.RecallDescription
		}
		if next, ok := d.NextReviewDate(); ok && !next.After(deadline) {
			r.ReviewDue = true
			r.NextReview = next.Format("2006-01-02")
		}
		if r.PendingRecall || r.ReviewDue {
			out = append(out, r)
		}
	}
	return out
}
