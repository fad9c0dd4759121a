package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cruisebooking/internal/domain"
	"cruisebooking/internal/domain/models"
	"cruisebooking/internal/monitoring"
	"cruisebooking/internal/store"
	"cruisebooking/internal/upstream"
	"cruisebooking/internal/utils"
)

// Submission stages. Stage booked means the booking row exists upstream but
// the roster save failed; failures past the booking call are soft warnings,
// never rolled back.
const (
	StageBooked          = "booked"
	StagePassengersSaved = "passengers_saved"
	StageComplete        = "complete"
)

var cardNumberPattern = regexp.MustCompile(`^\d{16}$`)

// ReferenceClient reads the fetched reference tables.
type ReferenceClient interface {
	Itineraries(ctx context.Context) ([]models.Itinerary, error)
	CabinPricing(ctx context.Context) ([]models.CabinPricing, error)
	CabinAvailability(ctx context.Context, shipName, route string) ([]models.CabinAvailability, error)
}

// BookingClient performs the three submit-time calls.
type BookingClient interface {
	CreateBooking(ctx context.Context, req upstream.BookingRequest) (upstream.BookingResponse, error)
	SavePassengers(ctx context.Context, req upstream.PassengerSaveRequest) (upstream.BasicResponse, error)
	SendConfirmationEmail(ctx context.Context, req upstream.ConfirmationEmailRequest) (upstream.BasicResponse, error)
}

// WizardService drives the three-step booking flow over a stored draft.
type WizardService struct {
	Store     store.DraftStore
	Ref       ReferenceClient
	Booking   BookingClient
	RequestID string
}

// TripUpdate carries step-1 field changes. Nil means "unchanged".
type TripUpdate struct {
	Destination *string `json:"destination"`
	Adults      *int    `json:"adults"`
	Children    *int    `json:"children"`
}

// PassengersUpdate carries step-2 field changes.
type PassengersUpdate struct {
	Primary    models.Passenger   `json:"primaryPassenger"`
	Additional []models.Passenger `json:"additionalPassengers"`
	CabinType  string             `json:"cabinType"`
}

// PaymentUpdate carries step-3 field changes.
type PaymentUpdate struct {
	Payment         models.PaymentDetails `json:"payment"`
	SpecialRequests string                `json:"specialRequests"`
}

// Open creates a draft with defaults, prefilled once from the session user.
func (s WizardService) Open(ctx context.Context, user *models.SessionUser) (*models.BookingDraft, error) {
	draft := models.NewBookingDraft(uuid.NewString(), user)
	if err := s.Store.Put(ctx, draft); err != nil {
		return nil, domain.InternalError{Msg: "failed to store booking draft", Err: err}
	}
	monitoring.DraftOpened()
	utils.LogEvent(s.RequestID, "wizard", "open", "draft_id="+draft.ID)
	return draft, nil
}

func (s WizardService) Get(ctx context.Context, id string) (*models.BookingDraft, error) {
	return s.load(ctx, id)
}

// Close discards the draft: the modal reset path, taken at any step,
// success or not. Idempotent.
func (s WizardService) Close(ctx context.Context, id string) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return domain.InternalError{Msg: "failed to discard booking draft", Err: err}
	}
	monitoring.DraftClosed()
	utils.LogEvent(s.RequestID, "wizard", "close", "draft_id="+id)
	return nil
}

// UpdateTrip applies step-1 changes under the guest-count rules: changing
// adults silently clamps children to 4-adults; changing children past the
// cap is rejected without mutating the draft. Any accepted change resizes
// the roster.
func (s WizardService) UpdateTrip(ctx context.Context, id string, upd TripUpdate) (*models.BookingDraft, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Adults != nil {
		a := *upd.Adults
		if a < 1 || a > models.MaxGuests {
			return nil, domain.ValidationError{Field: "adults", Msg: fmt.Sprintf("must be between 1 and %d", models.MaxGuests)}
		}
		draft.Adults = a
		if draft.Children > models.MaxGuests-a {
			draft.Children = models.MaxGuests - a
		}
	}

	if upd.Children != nil {
		c := *upd.Children
		if c < 0 {
			return nil, domain.ValidationError{Field: "children", Msg: "cannot be negative"}
		}
		if draft.Adults+c > models.MaxGuests {
			return nil, domain.ValidationError{Field: "children", Msg: fmt.Sprintf("maximum %d guests per cabin", models.MaxGuests)}
		}
		draft.Children = c
	}

	if upd.Destination != nil {
		dest := strings.TrimSpace(*upd.Destination)
		if dest != "" {
			itineraries, err := s.Ref.Itineraries(ctx)
			if err != nil {
				return nil, err
			}
			book := PriceBook{Itineraries: itineraries}
			it, ok := book.ItineraryFor(dest)
			if !ok {
				return nil, domain.ValidationError{Field: "destination", Msg: "no itinerary for this destination"}
			}
			dest = it.Route
		}
		draft.Destination = dest
	}

	draft.AdditionalPassengers = ResizeRoster(draft.AdditionalPassengers, draft.Adults, draft.Children)
	return draft, s.save(ctx, draft)
}

// UpdatePassengers applies step-2 changes. The roster length must match the
// current guest counts; field-level validation happens at the step guard.
func (s WizardService) UpdatePassengers(ctx context.Context, id string, upd PassengersUpdate) (*models.BookingDraft, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	cabin, ok := ParseCabinType(upd.CabinType)
	if !ok {
		return nil, domain.ValidationError{Field: "cabinType", Msg: "unknown cabin type"}
	}

	expected := draft.GuestCount() - 1
	if len(upd.Additional) != expected {
		return nil, domain.ValidationError{
			Field: "additionalPassengers",
			Msg:   fmt.Sprintf("expected %d entries for %d adults and %d children", expected, draft.Adults, draft.Children),
		}
	}

	email := utils.FirstNonEmpty(upd.Primary.Email, draft.PrimaryPassenger.Email)
	draft.PrimaryPassenger = upd.Primary
	draft.PrimaryPassenger.Email = email
	draft.PrimaryPassenger.IsChild = false
	draft.AdditionalPassengers = upd.Additional
	draft.CabinType = cabin
	return draft, s.save(ctx, draft)
}

// UpdatePayment applies step-3 changes. Card format is checked at submit.
func (s WizardService) UpdatePayment(ctx context.Context, id string, upd PaymentUpdate) (*models.BookingDraft, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	draft.Payment = upd.Payment
	draft.SpecialRequests = strings.TrimSpace(upd.SpecialRequests)
	return draft, s.save(ctx, draft)
}

// Next advances one step when the current step's guard passes. The flow is
// strictly linear; there is no forward skip.
func (s WizardService) Next(ctx context.Context, id string) (*models.BookingDraft, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	switch draft.Step {
	case models.StepTripDetails:
		if err := validateTripDetails(draft); err != nil {
			return nil, err
		}
		draft.Step = models.StepPassengersAndCabin
	case models.StepPassengersAndCabin:
		if err := validateRoster(draft); err != nil {
			return nil, err
		}
		draft.Step = models.StepPayment
	default:
		return nil, domain.ValidationError{Field: "step", Msg: "already at the payment step"}
	}
	return draft, s.save(ctx, draft)
}

// Back returns one step, unguarded. At step 1 it is a no-op.
func (s WizardService) Back(ctx context.Context, id string) (*models.BookingDraft, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft.Step > models.StepTripDetails {
		draft.Step--
		return draft, s.save(ctx, draft)
	}
	return draft, nil
}

// CabinOptions builds the step-2 selector entries for a destination:
// the four cabin types annotated with unit price and live availability.
func (s WizardService) CabinOptions(ctx context.Context, route string) ([]models.CabinOption, error) {
	book, err := s.loadPriceBook(ctx)
	if err != nil {
		return nil, err
	}
	it, ok := book.ItineraryFor(route)
	if !ok {
		return nil, domain.NotFoundError{Resource: "destination"}
	}
	availability, err := s.Ref.CabinAvailability(ctx, it.ShipName, it.Route)
	if err != nil {
		return nil, err
	}
	return book.BuildCabinOptions(it.Route, availability), nil
}

// Quote computes the draft's current total. Display data only; callers may
// fall back to zero when reference data cannot be fetched.
func (s WizardService) Quote(ctx context.Context, draft *models.BookingDraft) (decimal.Decimal, error) {
	if draft.Destination == "" || draft.CabinType == "" {
		return decimal.Zero, nil
	}
	book, err := s.loadPriceBook(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return book.TotalPrice(draft.Destination, draft.CabinType, draft.Adults, draft.Children), nil
}

// Submit runs the submission pipeline from step 3: create booking, save the
// roster, request the confirmation email. The calls are independent; the
// first one aborting is the only hard failure, later failures become
// warnings on the typed result ("soft warnings" — the committed booking is
// never undone).
func (s WizardService) Submit(ctx context.Context, id string) (*models.Confirmation, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft.Step != models.StepPayment {
		return nil, domain.ValidationError{Field: "step", Msg: "complete the previous steps first"}
	}
	if draft.Confirmation != nil {
		return nil, domain.ConflictError{Resource: "booking", Msg: "this draft was already submitted"}
	}
	if err := validatePayment(draft.Payment); err != nil {
		monitoring.Submission("rejected")
		return nil, err
	}

	book, err := s.loadPriceBook(ctx)
	if err != nil {
		return nil, err
	}
	itinerary, ok := book.ItineraryFor(draft.Destination)
	if !ok {
		return nil, domain.ValidationError{Field: "destination", Msg: "no itinerary for this destination"}
	}
	total := book.TotalPrice(draft.Destination, draft.CabinType, draft.Adults, draft.Children)

	roster := make([]upstream.PassengerRecord, 0, draft.GuestCount())
	roster = append(roster, passengerRecord(draft.PrimaryPassenger))
	for _, p := range draft.AdditionalPassengers {
		roster = append(roster, passengerRecord(p))
	}

	created, err := s.Booking.CreateBooking(ctx, upstream.BookingRequest{
		FullName:        draft.PrimaryPassenger.FullName,
		Email:           draft.PrimaryPassenger.Email,
		Gender:          draft.PrimaryPassenger.Gender,
		Citizenship:     draft.PrimaryPassenger.Citizenship,
		Age:             draft.PrimaryPassenger.Age,
		Adults:          draft.Adults,
		Children:        draft.Children,
		Destination:     itinerary.Route,
		ShipName:        itinerary.ShipName,
		CabinType:       string(draft.CabinType),
		CardType:        draft.Payment.CardType,
		CardNumber:      draft.Payment.CardNumber,
		Expiry:          draft.Payment.Expiry,
		CVV:             draft.Payment.CVV,
		SpecialRequests: draft.SpecialRequests,
		TotalPrice:      total,
		Passengers:      roster,
	})
	if err != nil {
		return nil, err
	}
	if !created.Success {
		utils.LogEvent(s.RequestID, "wizard", "submit_rejected", "draft_id="+draft.ID)
		return nil, domain.ConflictError{Msg: utils.FirstNonEmpty(created.Message, "booking was rejected")}
	}

	result := &models.Confirmation{
		Stage:       StageBooked,
		BookingID:   created.BookingID,
		CabinNumber: created.CabinNumber,
		Message:     fmt.Sprintf("Booking confirmed! Your booking ID is %d.", created.BookingID),
	}

	saved, err := s.Booking.SavePassengers(ctx, upstream.PassengerSaveRequest{
		BookingID:     created.BookingID,
		ShipName:      itinerary.ShipName,
		Route:         itinerary.Route,
		CabinID:       created.CabinNumber,
		PassengerList: roster,
	})
	if err != nil || !saved.Success {
		result.Warnings = append(result.Warnings,
			"Booking succeeded, but failed to store passenger details: "+softFailureReason(err, saved.Message))
	} else {
		result.Stage = StagePassengersSaved
	}

	mailed, err := s.Booking.SendConfirmationEmail(ctx, upstream.ConfirmationEmailRequest{
		BookingID:   created.BookingID,
		Email:       draft.PrimaryPassenger.Email,
		FullName:    draft.PrimaryPassenger.FullName,
		ShipName:    itinerary.ShipName,
		Route:       itinerary.Route,
		StartDate:   itinerary.StartDate,
		EndDate:     itinerary.EndDate,
		CabinType:   string(draft.CabinType),
		CabinNumber: created.CabinNumber,
		Adults:      draft.Adults,
		Children:    draft.Children,
		TotalPrice:  total,
	})
	if err != nil || !mailed.Success {
		result.Warnings = append(result.Warnings,
			"Booking succeeded, but the confirmation email could not be sent: "+softFailureReason(err, mailed.Message))
	} else if result.Stage == StagePassengersSaved {
		result.Stage = StageComplete
	}

	draft.Confirmation = result
	if err := s.save(ctx, draft); err != nil {
		return nil, err
	}
	monitoring.Submission(result.Stage)
	utils.LogEvent(s.RequestID, "wizard", "submit",
		fmt.Sprintf("draft_id=%s booking_id=%d stage=%s", draft.ID, result.BookingID, result.Stage))
	return result, nil
}

func (s WizardService) load(ctx context.Context, id string) (*models.BookingDraft, error) {
	draft, err := s.Store.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.NotFoundError{Resource: "booking draft", Err: err}
		}
		return nil, domain.InternalError{Msg: "failed to load booking draft", Err: err}
	}
	return draft, nil
}

func (s WizardService) save(ctx context.Context, draft *models.BookingDraft) error {
	draft.UpdatedAt = time.Now().UTC()
	if err := s.Store.Put(ctx, draft); err != nil {
		return domain.InternalError{Msg: "failed to store booking draft", Err: err}
	}
	return nil
}

func (s WizardService) loadPriceBook(ctx context.Context) (PriceBook, error) {
	itineraries, err := s.Ref.Itineraries(ctx)
	if err != nil {
		return PriceBook{}, err
	}
	pricing, err := s.Ref.CabinPricing(ctx)
	if err != nil {
		return PriceBook{}, err
	}
	return PriceBook{Itineraries: itineraries, Pricing: pricing}, nil
}

func validateTripDetails(draft *models.BookingDraft) error {
	if draft.Destination == "" {
		return domain.ValidationError{Field: "destination", Msg: "please select a destination"}
	}
	if draft.Adults < 1 {
		return domain.ValidationError{Field: "adults", Msg: "at least one adult is required"}
	}
	if draft.Children < 0 {
		return domain.ValidationError{Field: "children", Msg: "cannot be negative"}
	}
	return nil
}

// validateRoster short-circuits on the first incomplete passenger. Display
// numbering starts at the primary, so additional entry i reports as
// passenger i+2.
func validateRoster(draft *models.BookingDraft) error {
	if err := validatePassenger(draft.PrimaryPassenger, "passenger 1"); err != nil {
		return err
	}
	for i, p := range draft.AdditionalPassengers {
		if err := validatePassenger(p, fmt.Sprintf("passenger %d", i+2)); err != nil {
			return err
		}
	}
	if draft.CabinType == "" {
		return domain.ValidationError{Field: "cabinType", Msg: "please select a cabin type"}
	}
	return nil
}

func validatePassenger(p models.Passenger, label string) error {
	switch {
	case strings.TrimSpace(p.FullName) == "":
		return domain.ValidationError{Field: label, Msg: "full name is required"}
	case strings.TrimSpace(p.Gender) == "":
		return domain.ValidationError{Field: label, Msg: "gender is required"}
	case strings.TrimSpace(p.Citizenship) == "":
		return domain.ValidationError{Field: label, Msg: "citizenship is required"}
	case p.Age <= 0:
		return domain.ValidationError{Field: label, Msg: "age is required"}
	}
	return nil
}

func validatePayment(p models.PaymentDetails) error {
	if !cardNumberPattern.MatchString(strings.TrimSpace(p.CardNumber)) {
		return domain.ValidationError{Field: "cardNumber", Msg: "card number must be exactly 16 digits"}
	}
	if strings.TrimSpace(p.Expiry) == "" {
		return domain.ValidationError{Field: "expiry", Msg: "expiry is required"}
	}
	if strings.TrimSpace(p.CVV) == "" {
		return domain.ValidationError{Field: "cvv", Msg: "cvv is required"}
	}
	return nil
}

func passengerRecord(p models.Passenger) upstream.PassengerRecord {
	return upstream.PassengerRecord{
		PassengerName: utils.NormalizeSpace(p.FullName),
		Email:         strings.TrimSpace(p.Email),
		Age:           p.Age,
		Gender:        strings.TrimSpace(p.Gender),
		Citizenship:   strings.TrimSpace(p.Citizenship),
	}
}

func softFailureReason(err error, message string) string {
	if err != nil {
		return err.Error()
	}
	if strings.TrimSpace(message) != "" {
		return message
	}
	return "unknown error"
}
