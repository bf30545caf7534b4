package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HarvestDetail is one weight/price line on a harvest, graded by quality.
type HarvestDetail struct {
	Grade    string  `bson:"grade" json:"grade"`
	Weight   float64 `bson:"weight" json:"weight"`
	Price    float64 `bson:"price" json:"price"`
	Subtotal float64 `bson:"subtotal" json:"subtotal"`
}

// Harvest records a sale out of a tank. A final harvest empties the tank; a
// partial harvest only reduces its population.
type Harvest struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TankID         primitive.ObjectID `bson:"tankId" json:"tankId"`
	BuyerName      string             `bson:"buyerName,omitempty" json:"buyerName"`
	BuyerPhone     string             `bson:"buyerPhone,omitempty" json:"buyerPhone"`
	SaleDate       time.Time          `bson:"saleDate" json:"saleDate"`
	Details        []HarvestDetail    `bson:"details,omitempty" json:"details"`
	TotalWeight    float64            `bson:"totalWeight" json:"totalWeight"`
	TotalRevenue   float64            `bson:"totalRevenue" json:"totalRevenue"`
	QuantitySold   int                `bson:"quantitySold" json:"quantitySold"`
	IsFinalHarvest bool               `bson:"isFinalHarvest" json:"isFinalHarvest"`
	Notes          string             `bson:"notes,omitempty" json:"notes"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Totalize fills each detail subtotal and returns the aggregate weight and
// revenue. When no detail lines exist the provided fallbacks are used, so
// callers can accept directly-entered totals.
func Totalize(details []HarvestDetail, fallbackWeight, fallbackRevenue float64) (weight, revenue float64) {
	if len(details) == 0 {
		return fallbackWeight, fallbackRevenue
	}

	for i := range details {
		details[i].Subtotal = details[i].Weight * details[i].Price
		weight += details[i].Weight
		revenue += details[i].Subtotal
	}
	return weight, revenue
}
