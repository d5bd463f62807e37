// File: database/repository/slot/queries.go
package slotRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotify/models"
)

func (r *mongoSlotRepo) FindExactUnbooked(ctx context.Context, start, end time.Time) (*models.MeetingSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.MeetingSlot
	err := r.coll.FindOne(ctx, exactUnbookedFilter(start.UTC(), end.UTC())).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query exact unbooked slot: %w", err)
	}
	return &slot, nil
}

func (r *mongoSlotRepo) FindOverlappingBooked(ctx context.Context, start, end time.Time) (*models.MeetingSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.MeetingSlot
	err := r.coll.FindOne(ctx, overlapFilter(start.UTC(), end.UTC())).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query overlapping booked slot: %w", err)
	}
	return &slot, nil
}

func (r *mongoSlotRepo) ListFree(ctx context.Context, after *time.Time) ([]models.MeetingSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"booked": false}
	if after != nil {
		filter["start_time"] = bson.M{"$gte": after.UTC()}
	}

	cursor, err := r.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list free slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []models.MeetingSlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding free slots: %w", err)
	}
	return slots, nil
}
