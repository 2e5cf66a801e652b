package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Course is a catalog entry. The id is caller supplied and immutable after
// creation; there are no update or delete routes.
type Course struct {
	ID          string          `db:"id" json:"id"`
	Program     string          `db:"program" json:"program"`
	Title       string          `db:"title" json:"title"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Duration    string          `db:"duration" json:"duration"`
	StartDate   string          `db:"start_date" json:"start_date"`
	ImageURL    string          `db:"image_url" json:"image_url"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// CourseCatalog groups courses by program for the public listing.
type CourseCatalog map[string][]Course
