package models

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryUtility       Category = "Utility"
	CategoryFood          Category = "Food"
	CategoryGrocery       Category = "Grocery"
	CategoryMedical       Category = "Medical"
	CategoryTravel        Category = "Travel"
	CategoryShopping      Category = "Shopping"
	CategoryEntertainment Category = "Entertainment"
	CategoryUncategorized Category = "Uncategorized"
)

type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "Cash"
	PaymentCard    PaymentMethod = "Card"
	PaymentUPI     PaymentMethod = "UPI"
	PaymentUnknown PaymentMethod = "N/A"
)

// LineItem is a single purchased item extracted from a receipt.
// Items are unique per receipt by (normalized name, price).
type LineItem struct {
	Name  string  `db:"name" json:"name"`
	Price float64 `db:"price" json:"price"`
}

// Receipt is the structured record produced by the parser and stored
// per user, keyed by bill ID. Date is kept as an ISO YYYY-MM-DD string;
// the validator checks the format rather than the type system.
type Receipt struct {
	BillID    string        `db:"bill_id" json:"bill_id"`
	UserID    uuid.UUID     `db:"user_id" json:"user_id"`
	Vendor    string        `db:"vendor" json:"vendor"`
	Date      string        `db:"date" json:"date"`
	Time      string        `db:"time" json:"time"`
	Payment   PaymentMethod `db:"payment" json:"payment"`
	Subtotal  float64       `db:"subtotal" json:"subtotal"`
	Tax       float64       `db:"tax" json:"tax"`
	Amount    float64       `db:"amount" json:"amount"`
	Category  Category      `db:"category" json:"category"`
	Items     []LineItem    `db:"-" json:"items"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}
