package domain

import "time"

type RentalStatus string

const (
	RentalStatusPending    RentalStatus = "pending"
	RentalStatusConfirmed  RentalStatus = "confirmed"
	RentalStatusInProgress RentalStatus = "in_progress"
	RentalStatusCompleted  RentalStatus = "completed"
	RentalStatusCancelled  RentalStatus = "cancelled"
)

// ActiveRentalStatuses are the statuses that hold inventory: a rental in
// any of these states blocks its products for the booked window.
var ActiveRentalStatuses = []RentalStatus{
	RentalStatusPending,
	RentalStatusConfirmed,
	RentalStatusInProgress,
}

func (s RentalStatus) IsActive() bool {
	for _, a := range ActiveRentalStatuses {
		if s == a {
			return true
		}
	}
	return false
}

func (s RentalStatus) IsTerminal() bool {
	return s == RentalStatusCompleted || s == RentalStatusCancelled
}

// Rental dates are stored and exchanged as "2006-01-02" strings.
type Rental struct {
	ID             int32        `json:"id"`
	CustomerID     int32        `json:"customer_id"`
	Customer       *Customer    `json:"customer,omitempty"`
	ContractNumber string       `json:"contract_number"`
	EventDate      string       `json:"event_date"`
	StartDate      string       `json:"rental_start_date"`
	EndDate        string       `json:"rental_end_date"`
	Status         RentalStatus `json:"status"`
	// IsOverdue is derived at read time and never persisted.
	IsOverdue    bool         `json:"is_overdue"`
	TotalCents   int32        `json:"total_cents"`
	DepositCents int32        `json:"deposit_cents"`
	Notes        string       `json:"notes"`
	Items        []RentalItem `json:"items,omitempty"`
	CreatedOn    time.Time    `json:"created_on"`
	UpdatedOn    time.Time    `json:"updated_on"`
}

type RentalItem struct {
	ID          int32  `json:"id"`
	RentalID    int32  `json:"rental_id"`
	ProductID   int32  `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int32  `json:"quantity"`
}

// ComputeOverdue reports whether a rental past its end date is still in a
// non-terminal status. today is a "2006-01-02" string; date strings in
// that format compare correctly as plain strings.
func (r *Rental) ComputeOverdue(today string) bool {
	if r.Status.IsTerminal() {
		return false
	}
	return r.EndDate != "" && r.EndDate < today
}

func Today() string {
	return time.Now().Format("2006-01-02")
}
