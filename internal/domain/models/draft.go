package models

import "time"

type Step int

const (
	StepTripDetails        Step = 1
	StepPassengersAndCabin Step = 2
	StepPayment            Step = 3
)

const MaxGuests = 4

type CabinType string

const (
	CabinInterior  CabinType = "Interior"
	CabinOceanView CabinType = "Ocean View"
	CabinBalcony   CabinType = "Balcony"
	CabinSuite     CabinType = "Suite"
)

// AllCabinTypes in display order, as offered in the cabin selector.
func AllCabinTypes() []CabinType {
	return []CabinType{CabinInterior, CabinOceanView, CabinBalcony, CabinSuite}
}

type Passenger struct {
	FullName    string `json:"fullName"`
	Gender      string `json:"gender"`
	Citizenship string `json:"citizenship"`
	Age         int    `json:"age"`
	// Email is carried by the primary passenger only.
	Email   string `json:"email,omitempty"`
	IsChild bool   `json:"isChild"`
}

type PaymentDetails struct {
	CardType   string `json:"cardType"`
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// Confirmation is the typed outcome of a submitted draft. It stays on the
// draft until the modal is closed so the success screen can re-render.
type Confirmation struct {
	Stage       string   `json:"stage"`
	BookingID   int64    `json:"bookingId"`
	CabinNumber string   `json:"cabinNumber,omitempty"`
	Message     string   `json:"message"`
	Warnings    []string `json:"warnings,omitempty"`
}

// BookingDraft is the per-session form state for one prospective booking.
// It lives in the draft store between requests and is discarded on close.
type BookingDraft struct {
	ID          string    `json:"id"`
	Step        Step      `json:"step"`
	Adults      int       `json:"adults"`
	Children    int       `json:"children"`
	Destination string    `json:"destination"`
	CabinType   CabinType `json:"cabinType"`

	PrimaryPassenger     Passenger   `json:"primaryPassenger"`
	AdditionalPassengers []Passenger `json:"additionalPassengers"`

	Payment         PaymentDetails `json:"payment"`
	SpecialRequests string         `json:"specialRequests,omitempty"`

	Confirmation *Confirmation `json:"confirmation,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewBookingDraft returns a draft with wizard defaults: one adult, no
// children, step 1. The primary passenger is prefilled from the session
// user once, at creation; later session changes never touch the draft.
func NewBookingDraft(id string, user *SessionUser) *BookingDraft {
	now := time.Now().UTC()
	d := &BookingDraft{
		ID:                   id,
		Step:                 StepTripDetails,
		Adults:               1,
		Children:             0,
		AdditionalPassengers: []Passenger{},
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if user != nil {
		d.PrimaryPassenger.FullName = user.Name
		d.PrimaryPassenger.Email = user.Email
	}
	return d
}

// GuestCount is the total roster size including the primary passenger.
func (d *BookingDraft) GuestCount() int {
	return d.Adults + d.Children
}
