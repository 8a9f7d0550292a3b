package vehicleinfo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// ErrNotFound is returned when the document has no record for a plate.
var ErrNotFound = errors.New("no extra details for this plate")

// Details is the supplementary data kept for a plate in the static document.
type Details struct {
	ID                string `json:"id"`
	FipeValue         string `json:"fipeValue,omitempty"`
	PendingRecall     bool   `json:"pendingRecall"`
	RecallDescription string `json:"recallDescription,omitempty"`
	NextReview        string `json:"nextReview,omitempty"` // YYYY-MM-DD
	MaintenanceTip    string `json:"maintenanceTip,omitempty"`
}

// NextReviewDate parses NextReview; ok is false when absent or malformed.
func (d Details) NextReviewDate() (time.Time, bool) {
	if d.NextReview == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", d.NextReview)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Lookup resolves extra details for a vehicle identifier.
type Lookup interface {
	LookupByID(ctx context.Context, id string) (Details, error)
}

// FileLookup reads a JSON array of Details from disk on every call, so edits
// to the document show up without a restart.
type FileLookup struct {
	path string
}

func NewFileLookup(path string) *FileLookup {
	return &FileLookup{path: path}
}

func (l *FileLookup) LookupByID(ctx context.Context, id string) (Details, error) {
	if err := ctx.Err(); err != nil {
		return Details{}, err
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return Details{}, fmt.Errorf("reading vehicle details %s: %w", l.path, err)
	}

	var records []Details
	if err := json.Unmarshal(data, &records); err != nil {
		return Details{}, fmt.Errorf("vehicle details %s is not a JSON array: %w", l.path, err)
	}

	want := strings.ToUpper(strings.TrimSpace(id))
	for _, r := range records {
		if strings.ToUpper(r.ID) == want {
			return r, nil
		}
	}
	return Details{}, ErrNotFound
}

var _ Lookup = (*FileLookup)(nil)
