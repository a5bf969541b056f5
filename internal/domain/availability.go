package domain

// ConflictingRental is the typed view record for a rental returned by the
// availability queries (joined through rental_items).
type ConflictingRental struct {
	RentalID       int32        `json:"rental_id"`
	ProductID      int32        `json:"product_id"`
	ContractNumber string       `json:"contract_number"`
	CustomerName   string       `json:"customer_name"`
	StartDate      string       `json:"start_date"`
	EndDate        string       `json:"end_date"`
	Status         RentalStatus `json:"status"`
}

// ProductAvailability is the per-product result of an availability check.
// Overdue takes precedence over a plain conflict in the Status label.
type ProductAvailability struct {
	ProductID          int32               `json:"product_id"`
	IsAvailable        bool                `json:"is_available"`
	IsOverdue          bool                `json:"is_overdue"`
	Status             string              `json:"status"`
	ConflictingRentals []ConflictingRental `json:"conflicting_rentals,omitempty"`
	OverdueRentals     []ConflictingRental `json:"overdue_rentals,omitempty"`
}

const (
	AvailabilityStatusAvailable = "available"
	AvailabilityStatusConflict  = "conflict"
	AvailabilityStatusOverdue   = "overdue"
)
