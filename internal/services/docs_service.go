package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	"cruisebooking/internal/domain"
	"cruisebooking/internal/domain/models"
	"cruisebooking/internal/utils"
)

// DocsService renders the booking-confirmation PDF for a submitted draft.
type DocsService struct {
	Wizard    WizardService
	RequestID string
	// Loader overrides draft/pricing lookup in tests.
	Loader func(ctx context.Context, draftID string) (confirmationDocData, error)
}

type confirmationDocData struct {
	BookingID   int64
	CabinNumber string
	ShipName    string
	Route       string
	StartDate   string
	EndDate     string
	CabinType   string
	Adults      int
	Children    int
	Primary     models.Passenger
	Additional  []models.Passenger
	Total       decimal.Decimal
	Warnings    []string
}

func (s DocsService) GenerateConfirmation(ctx context.Context, draftID string) ([]byte, string, error) {
	data, err := s.loadConfirmationData(ctx, draftID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_confirmation", fmt.Sprintf("booking_id=%d", data.BookingID))
	return buildConfirmationPDF(data)
}

func (s DocsService) loadConfirmationData(ctx context.Context, draftID string) (confirmationDocData, error) {
	if s.Loader != nil {
		return s.Loader(ctx, draftID)
	}

	var out confirmationDocData
	draft, err := s.Wizard.Get(ctx, draftID)
	if err != nil {
		return out, err
	}
	if draft.Confirmation == nil {
		return out, domain.ValidationError{Field: "draft", Msg: "booking has not been submitted yet"}
	}

	book, err := s.Wizard.loadPriceBook(ctx)
	if err != nil {
		return out, err
	}
	itinerary, _ := book.ItineraryFor(draft.Destination)

	out = confirmationDocData{
		BookingID:   draft.Confirmation.BookingID,
		CabinNumber: draft.Confirmation.CabinNumber,
		ShipName:    itinerary.ShipName,
		Route:       itinerary.Route,
		StartDate:   itinerary.StartDate,
		EndDate:     itinerary.EndDate,
		CabinType:   string(draft.CabinType),
		Adults:      draft.Adults,
		Children:    draft.Children,
		Primary:     draft.PrimaryPassenger,
		Additional:  draft.AdditionalPassengers,
		Total:       book.TotalPrice(draft.Destination, draft.CabinType, draft.Adults, draft.Children),
		Warnings:    draft.Confirmation.Warnings,
	}
	return out, nil
}

func buildConfirmationPDF(d confirmationDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Confirmation", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING CONFIRMATION")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking Code : #%d", d.BookingID),
		fmt.Sprintf("Issued       : %s", time.Now().Format("2006-01-02 15:04")),
		fmt.Sprintf("Ship         : %s", safe(d.ShipName, "-")),
		fmt.Sprintf("Route        : %s", safe(d.Route, "-")),
		fmt.Sprintf("Sailing      : %s - %s", safe(d.StartDate, "-"), safe(d.EndDate, "-")),
		fmt.Sprintf("Cabin        : %s %s", safe(d.CabinType, "-"), safe(d.CabinNumber, "")),
		fmt.Sprintf("Guests       : %d adult(s), %d child(ren)", d.Adults, d.Children),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Passengers:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("1) %s (%s, %d) %s",
		safe(d.Primary.FullName, "-"), safe(d.Primary.Gender, "-"), d.Primary.Age, safe(d.Primary.Email, "")))
	pdf.Ln(6)
	for i, p := range d.Additional {
		kind := "adult"
		if p.IsChild {
			kind = "child"
		}
		pdf.Cell(0, 6, fmt.Sprintf("%d) %s (%s, %d) [%s]",
			i+2, safe(p.FullName, "-"), safe(p.Gender, "-"), p.Age, kind))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatUSD(d.Total))
	pdf.Ln(10)

	if len(d.Warnings) > 0 {
		pdf.SetFont("Helvetica", "I", 10)
		for _, w := range d.Warnings {
			pdf.MultiCell(0, 6, "Note: "+w, "", "", false)
		}
		pdf.Ln(2)
	}

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this confirmation together with a valid travel document at embarkation.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("BOOKING_%d_%s.pdf", d.BookingID, safeFilenamePart(d.Primary.FullName))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
