package ticket

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGenerator(t *testing.T) *PDFGenerator {
	t.Helper()
	gen, err := NewPDFGenerator(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return gen
}

func sampleTicket(ticketID string) Ticket {
	return Ticket{
		TicketID:   ticketID,
		BookingID:  "a3bb189e-8bf9-3888-9912-ace4e6543002",
		OwnerName:  "Ravi Kumar",
		OwnerEmail: "ravi@example.com",
		StudentID:  "S-1042",
		Date:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		MealType:   "lunch",
		Persons:    2,
		Amount:     160,
	}
}

func TestNewTicketIDFormat(t *testing.T) {
	gen := newTestGenerator(t)

	pattern := regexp.MustCompile(`^MTBS-\d{8}-\d{4}$`)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.NewTicketID()
		assert.Regexp(t, pattern, id)
		seen[id] = true
	}
	// Not a strict uniqueness guarantee, but 100 draws colliding would
	// point at a broken generator.
	assert.Greater(t, len(seen), 90)
}

func TestGenerateArtifactWritesPDF(t *testing.T) {
	gen := newTestGenerator(t)
	ticketID := gen.NewTicketID()

	path, err := gen.GenerateArtifact(context.Background(), sampleTicket(ticketID))
	require.NoError(t, err)

	assert.Equal(t, gen.ArtifactPath(ticketID), path)
	assert.Equal(t, ticketID+".pdf", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > 1000, "pdf should have real content")
	assert.Equal(t, "%PDF", string(data[:4]))

	// No temp residue after finalization
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateArtifactIsReinvocable(t *testing.T) {
	gen := newTestGenerator(t)
	ticketID := gen.NewTicketID()
	ticket := sampleTicket(ticketID)

	first, err := gen.GenerateArtifact(context.Background(), ticket)
	require.NoError(t, err)

	second, err := gen.GenerateArtifact(context.Background(), ticket)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same ticket id yields same path")

	info, err := os.Stat(first)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerateArtifactCancelledContext(t *testing.T) {
	gen := newTestGenerator(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.GenerateArtifact(ctx, sampleTicket(gen.NewTicketID()))
	assert.ErrorIs(t, err, ErrTicketGeneration)
}
