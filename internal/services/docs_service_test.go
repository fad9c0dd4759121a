package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"cruisebooking/internal/domain"
	"cruisebooking/internal/domain/models"
)

func TestGenerateConfirmationPDF(t *testing.T) {
	svc := DocsService{
		Loader: func(ctx context.Context, draftID string) (confirmationDocData, error) {
			if draftID != "draft-1" {
				t.Fatalf("unexpected draft id: %s", draftID)
			}
			return confirmationDocData{
				BookingID:   77,
				CabinNumber: "B12",
				ShipName:    "Serendip Majesty",
				Route:       "Greece",
				StartDate:   "2026-06-01",
				EndDate:     "2026-06-08",
				CabinType:   "Interior",
				Adults:      2,
				Children:    1,
				Primary:     models.Passenger{FullName: "Elena Pappas", Gender: "female", Age: 41, Email: "elena@example.com"},
				Additional: []models.Passenger{
					{FullName: "Nikos Pappas", Gender: "male", Age: 39},
					{FullName: "Theo Pappas", Gender: "male", Age: 8, IsChild: true},
				},
				Total:    decimal.NewFromInt(250),
				Warnings: []string{"Booking succeeded, but failed to store passenger details: DB error"},
			}, nil
		},
	}

	data, filename, err := svc.GenerateConfirmation(context.Background(), "draft-1")
	if err != nil {
		t.Fatalf("GenerateConfirmation failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty PDF output")
	}
	if !strings.HasPrefix(string(data[:5]), "%PDF-") {
		t.Fatalf("output does not look like a PDF: %q", data[:5])
	}
	if filename != "BOOKING_77_Elena_Pappas.pdf" {
		t.Fatalf("unexpected filename: %s", filename)
	}
}

func TestGenerateConfirmationLoaderError(t *testing.T) {
	wantErr := errors.New("store down")
	svc := DocsService{
		Loader: func(context.Context, string) (confirmationDocData, error) {
			return confirmationDocData{}, wantErr
		},
	}

	_, _, err := svc.GenerateConfirmation(context.Background(), "draft-1")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected loader error, got %v", err)
	}
}

func TestGenerateConfirmationRequiresSubmittedDraft(t *testing.T) {
	wizard, _, _ := newTestWizard(t)
	ctx := context.Background()

	draft, err := wizard.Open(ctx, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	svc := DocsService{Wizard: wizard}
	_, _, err = svc.GenerateConfirmation(ctx, draft.ID)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSafeFilenamePart(t *testing.T) {
	cases := map[string]string{
		"Elena Pappas":   "Elena_Pappas",
		"  ":             "NA",
		`a/b\c:d*e?f"g`:  `a_b_c_d_e_f_g`,
		"<html>|pipe":    "_html__pipe",
	}
	for in, want := range cases {
		if got := safeFilenamePart(in); got != want {
			t.Errorf("safeFilenamePart(%q) = %q, want %q", in, got, want)
		}
	}
}
