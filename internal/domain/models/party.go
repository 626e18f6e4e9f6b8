package models

import (
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/money"
)

// Vehicle is identified by its registration number. Deletion sets a tombstone
// so trips of retired vehicles stay reportable.
type Vehicle struct {
	ID            int64      `json:"id"`
	VehicleNumber string     `json:"vehicle_number"`
	IsDeleted     bool       `json:"is_deleted"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type Driver struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
}

type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

const (
	VendorCategoryFuel  = "fuel"
	VendorCategorySpare = "spare"
	VendorCategoryBoth  = "both"
)

// Vendor supplies fuel and/or spare parts. Name is unique.
type Vendor struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type VendorPayment struct {
	ID        int64       `json:"id"`
	VendorID  int64       `json:"vendor_id"`
	Amount    money.Money `json:"amount"`
	PaidOn    Date        `json:"paid_on"`
	Notes     string      `json:"notes"`
	CreatedAt time.Time   `json:"created_at"`
}

type User struct {
	ID           int64       `json:"id"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"-"`
	Role         domain.Role `json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
}

type PublicUser struct {
	ID       int64       `json:"id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

func (u User) ToPublic() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Role: u.Role}
}
