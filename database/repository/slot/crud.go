// File: database/repository/slot/crud.go
package slotRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotify/models"
)

func (r *mongoSlotRepo) Insert(ctx context.Context, slot models.MeetingSlot) (*models.MeetingSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	slot.StartTime = slot.StartTime.UTC()
	slot.EndTime = slot.EndTime.UTC()

	if _, err := r.coll.InsertOne(ctx, slot); err != nil {
		return nil, fmt.Errorf("failed to insert slot: %w", err)
	}
	return &slot, nil
}

func (r *mongoSlotRepo) UpdateFields(ctx context.Context, id string, fields models.SlotUpdate) (*models.MeetingSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	if fields.Booked {
		// Claiming a slot only applies while it is still unbooked; this is
		// the guard that keeps concurrent claims from both succeeding.
		filter["booked"] = false
	}
	update := bson.M{"$set": bson.M{
		"title":        fields.Title,
		"description":  fields.Description,
		"name":         fields.Name,
		"phone_number": fields.PhoneNumber,
		"booked":       fields.Booked,
	}}

	var updated models.MeetingSlot
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update slot %s: %w", id, err)
	}
	return &updated, nil
}

func (r *mongoSlotRepo) CountAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count slots: %w", err)
	}
	return count, nil
}
