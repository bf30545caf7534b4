package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Mutation-scope keys. Every applier locks the keys of the entities it
// mutates before validating preconditions; services share one lock table so
// the same entity is serialized no matter which operation touches it.

// TankScope returns the mutation-scope key for a tank.
func TankScope(id primitive.ObjectID) string {
	return "tank:" + id.Hex()
}

// StockScope returns the mutation-scope key for a stock item of a kind.
func StockScope(kind string, id primitive.ObjectID) string {
	return kind + ":" + id.Hex()
}
