package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExpenseEntry is a dated, named expense (fertilizer or pesticide purchase).
type ExpenseEntry struct {
	Name        string    `bson:"name" json:"name"`
	Cost        float64   `bson:"cost" json:"cost"`
	DateApplied time.Time `bson:"date_applied" json:"dateApplied"`
}

// IrrigationEntry records an irrigation run and its cost.
type IrrigationEntry struct {
	Method string    `bson:"method" json:"method"`
	Cost   float64   `bson:"cost" json:"cost"`
	Date   time.Time `bson:"date" json:"date"`
}

// OtherExpense is an uncategorized expense.
type OtherExpense struct {
	Description string  `bson:"description" json:"description"`
	Cost        float64 `bson:"cost" json:"cost"`
}

// CustomEntry lets a farmer define their own expense category.
type CustomEntry struct {
	Type        string    `bson:"type" json:"type"`
	Description string    `bson:"description" json:"description"`
	Cost        float64   `bson:"cost" json:"cost"`
	Date        time.Time `bson:"date" json:"date"`
}

// Crop tracks a farmer's per-crop expenses and harvest outcome. No route
// reads or writes it yet; the schema is kept for the expense tracker.
type Crop struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FarmerID      primitive.ObjectID `bson:"farmer_id" json:"farmerId"`
	CropName      string             `bson:"crop_name" json:"cropName"`
	SeedingDate   time.Time          `bson:"seeding_date" json:"seedingDate"`
	Fertilizers   []ExpenseEntry     `bson:"fertilizers" json:"fertilizers"`
	Pesticides    []ExpenseEntry     `bson:"pesticides" json:"pesticides"`
	Irrigation    []IrrigationEntry  `bson:"irrigation" json:"irrigation"`
	OtherExpenses []OtherExpense     `bson:"other_expenses" json:"otherExpenses"`
	CustomEntries []CustomEntry      `bson:"custom_entries" json:"customEntries"`

	HarvestDate         *time.Time `bson:"harvest_date,omitempty" json:"harvestDate,omitempty"`
	YieldQuantity       float64    `bson:"yield_quantity,omitempty" json:"yieldQuantity,omitempty"`
	SellingPricePerUnit float64    `bson:"selling_price_per_unit,omitempty" json:"sellingPricePerUnit,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
