package upstream

import (
	"github.com/shopspring/decimal"

	"cruisebooking/internal/domain/models"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	User    models.SessionUser `json:"user"`
}

// PassengerRecord is the roster entry shape the booking API stores.
type PassengerRecord struct {
	PassengerName string `json:"passenger_name"`
	Email         string `json:"email,omitempty"`
	Age           int    `json:"age"`
	Gender        string `json:"gender"`
	Citizenship   string `json:"citizenship"`
}

// BookingRequest is the flattened submit payload: primary passenger fields
// promoted to the top level, full roster attached.
type BookingRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Gender      string `json:"gender"`
	Citizenship string `json:"citizenship"`
	Age         int    `json:"age"`

	Adults      int    `json:"adults"`
	Children    int    `json:"children"`
	Destination string `json:"destination"`
	ShipName    string `json:"ship_name"`
	CabinType   string `json:"cabin_type"`

	CardType   string `json:"card_type"`
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`

	SpecialRequests string          `json:"special_requests,omitempty"`
	TotalPrice      decimal.Decimal `json:"total_price"`

	Passengers []PassengerRecord `json:"passengers"`
}

type BookingResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	BookingID   int64  `json:"booking_id"`
	CabinNumber string `json:"cabin_number"`
	ErrorDetail string `json:"error,omitempty"`
}

type PassengerSaveRequest struct {
	BookingID     int64             `json:"booking_id"`
	ShipName      string            `json:"ship_name"`
	Route         string            `json:"route"`
	CabinID       string            `json:"cabin_id"`
	PassengerList []PassengerRecord `json:"passengerList"`
}

type ConfirmationEmailRequest struct {
	BookingID   int64           `json:"booking_id"`
	Email       string          `json:"email"`
	FullName    string          `json:"full_name"`
	ShipName    string          `json:"ship_name"`
	Route       string          `json:"route"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	CabinType   string          `json:"cabin_type"`
	CabinNumber string          `json:"cabin_number"`
	Adults      int             `json:"adults"`
	Children    int             `json:"children"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type BasicResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
