package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestProductRepositorySurfacesDriverError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("create sqlmock failed: %v", err)
	}
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		t.Fatalf("open gorm failed: %v", err)
	}

	driverErr := errors.New("connection reset by peer")
	mock.ExpectQuery(`SELECT \* FROM "products"`).WillReturnError(driverErr)

	product, err := NewProductRepository(db).GetActiveByID(1)
	if product != nil {
		t.Fatalf("product should be nil on error")
	}
	if !errors.Is(err, driverErr) {
		t.Fatalf("driver error should surface, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
