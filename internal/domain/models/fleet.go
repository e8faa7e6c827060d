package models

import "time"

type Vehicle struct {
	ID       int64  `json:"id"`
	Plate    string `json:"plate"`
	Model    string `json:"model"`
	Type     string `json:"type"`
	Capacity int    `json:"capacity"`
	Status   string `json:"status"`
	Odometer *int64 `json:"odometer,omitempty"`
}

// VehicleAvailable is the vehicle status that makes it selectable for allocation.
const VehicleAvailable = "Disponivel"

// User is a system account. Drivers are users with the Motorista role.
type User struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
	Role   string `json:"role"`
	Active bool   `json:"active"`

	PasswordHash string `json:"-"`
}

type Route struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Origin      string      `json:"origin"`
	Destination string      `json:"destination"`
	DepartureAt time.Time   `json:"departureAt"`
	VehicleID   *int64      `json:"vehicleId"`
	DriverID    *int64      `json:"driverId"`
	Status      RouteStatus `json:"status"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Carona is a ride-share request attached to a trip.
type Carona struct {
	ID            int64         `json:"id"`
	TripID        int64         `json:"tripId"`
	RequesterID   int64         `json:"requesterId"`
	PassengerName string        `json:"passengerName"`
	Seats         int           `json:"seats"`
	Reason        string        `json:"reason,omitempty"`
	Status        RequestStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type Evaluation struct {
	ID          int64            `json:"id"`
	TripID      int64            `json:"tripId"`
	EvaluatorID int64            `json:"evaluatorId"`
	Rating      int              `json:"rating"`
	Comment     string           `json:"comment,omitempty"`
	Status      EvaluationStatus `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
}
