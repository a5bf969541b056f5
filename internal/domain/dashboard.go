package domain

// DashboardStats is the aggregate payload behind the admin landing page.
type DashboardStats struct {
	TotalProducts      int32 `json:"total_products"`
	AvailableProducts  int32 `json:"available_products"`
	RentedProducts     int32 `json:"rented_products"`
	MaintenanceCount   int32 `json:"maintenance_products"`
	TotalCustomers     int32 `json:"total_customers"`
	ActiveRentals      int32 `json:"active_rentals"`
	OverdueRentals     int32 `json:"overdue_rentals"`
	RentalsThisMonth   int32 `json:"rentals_this_month"`
	RevenueCentsMonth  int64 `json:"revenue_cents_month"`
	UpcomingReturns    int32 `json:"upcoming_returns"`
}
