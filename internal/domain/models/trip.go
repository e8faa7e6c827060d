package models

import (
	"time"

	"github.com/iwatajunior/transportes-sub001/internal/domain"
)

// Trip is a transportation request and, once handled by a manager, its
// assignment. Request fields are set at creation and never rewritten by the
// lifecycle operations.
type Trip struct {
	TripID int64      `json:"tripId"`
	Status TripStatus `json:"status"`

	Origin         string     `json:"origin"`
	Destination    string     `json:"destination"`
	Purpose        string     `json:"purpose"`
	DepartureAt    time.Time  `json:"departureAt"`
	ReturnAt       *time.Time `json:"returnAt,omitempty"`
	PassengerCount int        `json:"passengerCount"`
	VehicleType    string     `json:"vehicleType,omitempty"`
	CostCenter     string     `json:"costCenter,omitempty"`
	Notes          string     `json:"notes,omitempty"`

	RequesterID   int64  `json:"requesterId"`
	RequesterName string `json:"requesterName,omitempty"`

	AllocatedVehicleID *int64 `json:"allocatedVehicleId"`
	AllocatedDriverID  *int64 `json:"allocatedDriverId"`

	KMInitial           *float64 `json:"kmInitial"`
	KMInitialRecordedBy string   `json:"kmInitialRecordedBy,omitempty"`
	KMFinal             *float64 `json:"kmFinal"`
	KMFinalRecordedBy   string   `json:"kmFinalRecordedBy,omitempty"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Distance is kmFinal - kmInitial when both readings exist.
func (t Trip) Distance() (float64, bool) {
	if t.KMInitial == nil || t.KMFinal == nil {
		return 0, false
	}
	return *t.KMFinal - *t.KMInitial, true
}

// VisibleTo reports whether rc may read the trip: managers see every trip,
// requesters their own, drivers the ones allocated to them.
func (t Trip) VisibleTo(rc domain.RequestContext) bool {
	if rc.Role.IsManager() {
		return true
	}
	if rc.UserID != 0 && t.RequesterID == rc.UserID {
		return true
	}
	return rc.Role == domain.RoleDriver && t.AllocatedDriverID != nil && *t.AllocatedDriverID == rc.UserID
}

// TripFilter narrows trip listings. Zero values mean no restriction.
type TripFilter struct {
	Status      TripStatus
	RequesterID int64
	DriverID    int64
	Limit       int
	Offset      int
}

// Allocation is the write set of the allocate operation; nil fields are left
// untouched.
type Allocation struct {
	VehicleID *int64
	DriverID  *int64
}
