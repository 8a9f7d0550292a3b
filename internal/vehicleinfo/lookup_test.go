package vehicleinfo

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "details.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestFileLookupFindsCaseInsensitive(t *testing.T) {
	path := writeDoc(t, `[
		{"id": "XYZ9876", "fipeValue": "R$ 30.000,00", "pendingRecall": false},
		{"id": "ABC1D23", "fipeValue": "R$ 75.500,00", "pendingRecall": true,
		 "recallDescription": "Airbag", "nextReview": "2025-03-10", "maintenanceTip": "Calibre os pneus"}
	]`)

	d, err := NewFileLookup(path).LookupByID(context.Background(), "abc1d23")

	require.NoError(t, err)
	assert.Equal(t, "R$ 75.500,00", d.FipeValue)
	assert.True(t, d.PendingRecall)
	assert.Equal(t, "Airbag", d.RecallDescription)

	next, ok := d.NextReviewDate()
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), next)
}

func TestFileLookupAbsent(t *testing.T) {
	path := writeDoc(t, `[{"id": "XYZ9876"}]`)

	_, err := NewFileLookup(path).LookupByID(context.Background(), "ABC1D23")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileLookupBadDocument(t *testing.T) {
	path := writeDoc(t, `{"id": "XYZ9876"}`)

	_, err := NewFileLookup(path).LookupByID(context.Background(), "XYZ9876")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFileLookupMissingFile(t *testing.T) {
	_, err := NewFileLookup(filepath.Join(t.TempDir(), "nope.json")).LookupByID(context.Background(), "XYZ9876")

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNextReviewDateAbsentOrMalformed(t *testing.T) {
	_, ok := Details{}.NextReviewDate()
	assert.False(t, ok)

	_, ok = Details{NextReview: "10/03/2025"}.NextReviewDate()
	assert.False(t, ok)
}
