package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EnvironmentReading captures one water-quality measurement for a tank.
type EnvironmentReading struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TankID      primitive.ObjectID `bson:"tankId" json:"tankId"`
	PH          float64            `bson:"pH" json:"pH"`
	Temperature float64            `bson:"temperature" json:"temperature"`
	Oxygen      float64            `bson:"oxygen" json:"oxygen"`
	Turbidity   float64            `bson:"turbidity" json:"turbidity"`
	RecordedAt  time.Time          `bson:"recordedAt" json:"recordedAt"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
