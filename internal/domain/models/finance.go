package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Operational expense categories.
const (
	ExpenseCategoryElectricity = "electricity"
	ExpenseCategoryWater       = "water"
	ExpenseCategoryTransport   = "transport"
	ExpenseCategoryLabor       = "labor"
	ExpenseCategoryMaintenance = "maintenance"
	ExpenseCategoryOther       = "other"
)

// ExpenseCategories lists the accepted categories for validation.
var ExpenseCategories = []string{
	ExpenseCategoryElectricity,
	ExpenseCategoryWater,
	ExpenseCategoryTransport,
	ExpenseCategoryLabor,
	ExpenseCategoryMaintenance,
	ExpenseCategoryOther,
}

// IncomeLog is a flat income record, optionally tied to a tank. A nil TankID
// marks farm-wide income.
type IncomeLog struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	TankID      *primitive.ObjectID `bson:"tankId" json:"tankId"`
	Source      string              `bson:"source" json:"source"`
	TotalIncome float64             `bson:"totalIncome" json:"totalIncome"`
	Note        string              `bson:"note,omitempty" json:"note"`
	Date        time.Time           `bson:"date" json:"date"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
}

// OperationalExpense is a flat expense record, optionally tied to a tank.
type OperationalExpense struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name          string              `bson:"name" json:"name"`
	Category      string              `bson:"category" json:"category"`
	Amount        float64             `bson:"amount" json:"amount"`
	Date          time.Time           `bson:"date" json:"date"`
	Payer         string              `bson:"payer,omitempty" json:"payer"`
	RelatedTankID *primitive.ObjectID `bson:"relatedTankId" json:"relatedTankId"`
	Note          string              `bson:"note,omitempty" json:"note"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
}

// ValidExpenseCategory reports whether c is one of the accepted categories.
func ValidExpenseCategory(c string) bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}
