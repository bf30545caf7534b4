package models

import "time"

// DailyReport aggregates one day of farm activity for bookkeeping exports.
type DailyReport struct {
	Date            time.Time `bson:"date" json:"date"`
	FeedCost        float64   `bson:"feedCost" json:"feedCost"`
	MedicineAmount  float64   `bson:"medicineAmount" json:"medicineAmount"`
	HarvestRevenue  float64   `bson:"harvestRevenue" json:"harvestRevenue"`
	HarvestedWeight float64   `bson:"harvestedWeight" json:"harvestedWeight"`
	OtherIncome     float64   `bson:"otherIncome" json:"otherIncome"`
	Expenses        float64   `bson:"expenses" json:"expenses"`
	Net             float64   `bson:"net" json:"net"`
	GeneratedAt     time.Time `bson:"generatedAt" json:"generatedAt"`
}
