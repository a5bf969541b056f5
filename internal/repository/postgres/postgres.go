package postgres

import (
	"database/sql"

	"atelier-rental-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ProductRepository
	repository.RentalRepository
	repository.CustomerRepository
	repository.CategoryRepository
	repository.AttributeRepository
	repository.BannerRepository
	repository.StaffRepository
	repository.SettingsRepository
	repository.StatsRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                  db,
		ProductRepository:   NewProductRepository(db),
		RentalRepository:    NewRentalRepository(db),
		CustomerRepository:  NewCustomerRepository(db),
		CategoryRepository:  NewCategoryRepository(db),
		AttributeRepository: NewAttributeRepository(db),
		BannerRepository:    NewBannerRepository(db),
		StaffRepository:     NewStaffRepository(db),
		SettingsRepository:  NewSettingsRepository(db),
		StatsRepository:     NewStatsRepository(db),
	}
}
