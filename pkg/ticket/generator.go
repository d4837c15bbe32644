package ticket

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

var ErrTicketGeneration = errors.New("ticket generation failed")

// Ticket carries everything the artifact needs. The generator has no
// knowledge of the booking store.
type Ticket struct {
	TicketID   string
	BookingID  string
	OwnerName  string
	OwnerEmail string
	StudentID  string
	Date       time.Time
	MealType   string
	Persons    int
	Amount     int64
}

type Generator interface {
	NewTicketID() string
	GenerateArtifact(ctx context.Context, t Ticket) (string, error)
}

// PDFGenerator renders a meal ticket PDF embedding a QR payload and
// writes it under dir, keyed by ticket id.
type PDFGenerator struct {
	dir string
	log *zap.Logger
}

func NewPDFGenerator(dir string, log *zap.Logger) (*PDFGenerator, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create ticket dir %s: %w", dir, err)
	}

	return &PDFGenerator{
		dir: dir,
		log: log.With(zap.String("component", "ticket_generator")),
	}, nil
}

// NewTicketID builds MTBS-<timestamp>-<random>. Collisions are not
// checked; the 8-digit millisecond suffix plus 4 random digits make them
// astronomically unlikely within a booking's lifetime.
func (g *PDFGenerator) NewTicketID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if len(ts) > 8 {
		ts = ts[len(ts)-8:]
	}

	return fmt.Sprintf("MTBS-%s-%04d", ts, rand.Intn(10000))
}

// ArtifactPath is the deterministic storage path for a ticket id.
func (g *PDFGenerator) ArtifactPath(ticketID string) string {
	return filepath.Join(g.dir, ticketID+".pdf")
}

// qrPayload is the machine-verifiable content encoded into the QR code.
type qrPayload struct {
	TicketID  string `json:"ticket_id"`
	BookingID string `json:"booking_id"`
	IssuedAt  int64  `json:"issued_at"`
}

// GenerateArtifact renders the PDF to a temp file and renames it into
// place, so a concurrent reader never sees a partial file. Re-invoking
// for the same ticket id yields the same path.
func (g *PDFGenerator) GenerateArtifact(ctx context.Context, t Ticket) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTicketGeneration, err)
	}

	qrPNG, err := g.encodeQR(t)
	if err != nil {
		return "", err
	}

	finalPath := g.ArtifactPath(t.TicketID)
	tmpPath := finalPath + ".tmp"

	if err := g.renderPDF(t, qrPNG, tmpPath); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: finalize artifact: %v", ErrTicketGeneration, err)
	}

	g.log.Info("Ticket artifact generated",
		zap.String("ticket_id", t.TicketID),
		zap.String("booking_id", t.BookingID),
		zap.String("path", finalPath),
	)

	return finalPath, nil
}

func (g *PDFGenerator) encodeQR(t Ticket) ([]byte, error) {
	payload, err := json.Marshal(qrPayload{
		TicketID:  t.TicketID,
		BookingID: t.BookingID,
		IssuedAt:  time.Now().UnixMilli(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal qr payload: %v", ErrTicketGeneration, err)
	}

	png, err := qrcode.Encode(string(payload), qrcode.Medium, 300)
	if err != nil {
		return nil, fmt.Errorf("%w: encode qr: %v", ErrTicketGeneration, err)
	}

	return png, nil
}

func (g *PDFGenerator) renderPDF(t Ticket, qrPNG []byte, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(76, 175, 80)
	pdf.CellFormat(0, 14, "Mess Token Booking System", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 10, "MEAL TICKET", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	// Holder details
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 7, "Ticket ID: "+t.TicketID, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Student Name: "+orNA(t.OwnerName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Student ID: "+orNA(t.StudentID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Email: "+orNA(t.OwnerEmail), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// Booking details box
	boxTop := pdf.GetY()
	pdf.SetDrawColor(76, 175, 80)
	pdf.Rect(10, boxTop, 190, 46, "D")

	pdf.SetXY(14, boxTop+4)
	pdf.SetFont("Helvetica", "BU", 13)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 7, "BOOKING DETAILS", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(102, 102, 102)
	pdf.SetX(14)
	pdf.CellFormat(0, 7, "Date: "+t.Date.Format("Monday, 2 January 2006"), "", 1, "L", false, 0, "")
	pdf.SetX(14)
	pdf.CellFormat(0, 7, "Meal Type: "+strings.ToUpper(t.MealType), "", 1, "L", false, 0, "")
	pdf.SetX(14)
	pdf.CellFormat(0, 7, fmt.Sprintf("Number of Persons: %d", t.Persons), "", 1, "L", false, 0, "")
	pdf.SetX(14)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(76, 175, 80)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total Amount Paid: Rs. %d", t.Amount), "", 1, "L", false, 0, "")

	pdf.SetY(boxTop + 52)

	// QR code
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 8, "SCAN QR CODE AT MESS COUNTER", "", 1, "C", false, 0, "")

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(t.TicketID, opts, bytes.NewReader(qrPNG))
	pageWidth, _ := pdf.GetPageSize()
	pdf.ImageOptions(t.TicketID, (pageWidth-60)/2, pdf.GetY()+2, 60, 60, false, opts, 0, "")
	pdf.SetY(pdf.GetY() + 66)

	// Footer
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(153, 153, 153)
	pdf.CellFormat(0, 6, "Please show this ticket at the mess counter", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, "Generated on: "+time.Now().Format("2 Jan 2006 15:04"), "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("%w: render pdf: %v", ErrTicketGeneration, err)
	}

	return nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
