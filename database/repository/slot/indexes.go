// FILE: database/repository/slot/indexes.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the meeting_slots collection.
func (r *mongoSlotRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on slot ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Free-slot listing: booked flag plus ascending start time
		{
			Keys:    bson.D{{Key: "booked", Value: 1}, {Key: "start_time", Value: 1}},
			Options: options.Index().SetName("booked_start_idx"),
		},
		// Exact-window lookup and the overlap query
		{
			Keys:    bson.D{{Key: "start_time", Value: 1}, {Key: "end_time", Value: 1}, {Key: "booked", Value: 1}},
			Options: options.Index().SetName("start_end_booked_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create slot indexes: %w", err)
	}
	return nil
}
