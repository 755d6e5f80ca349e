package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	RSVPDbName  = "sandycove"
	RSVPColName = "rsvps"
)

type RSVPStatus string

const (
	RSVPGoing RSVPStatus = "going"
	RSVPNone  RSVPStatus = "none"
)

// RSVPRecord is keyed by (event_id, user_id). Records are never deleted:
// un-RSVPing flips Status to "none" and the record stays, so repeated
// toggles remain history-stable. DisplayName is a snapshot taken when the
// user last toggled to "going", not a live profile lookup.
type RSVPRecord struct {
	EventID     string     `bson:"event_id" json:"event_id"`
	UserID      string     `bson:"user_id" json:"user_id"`
	Status      RSVPStatus `bson:"status" json:"status"`
	DisplayName string     `bson:"display_name" json:"display_name"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}

type AttendanceRepo interface {
	// GetRSVP returns the record for (eventId, userId), or nil when absent.
	GetRSVP(ctx context.Context, eventId, userId string) (*RSVPRecord, error)
	// PutRSVP upserts a record keyed by (event_id, user_id).
	PutRSVP(ctx context.Context, rec *RSVPRecord) error
	// ListGoing returns all "going" records for the event ordered by the
	// time each was last set to going, oldest first.
	ListGoing(ctx context.Context, eventId string) ([]*RSVPRecord, error)
}

func (mdb *MongodbRepo) GetRSVP(ctx context.Context, eventId, userId string) (*RSVPRecord, error) {
	col := mdb.collection(RSVPDbName, RSVPColName)

	filter := bson.M{"event_id": eventId, "user_id": userId}

	var rec RSVPRecord
	err := col.FindOne(ctx, filter).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding rsvp record: %v", err)
	}
	return &rec, nil
}

func (mdb *MongodbRepo) PutRSVP(ctx context.Context, rec *RSVPRecord) error {
	col := mdb.collection(RSVPDbName, RSVPColName)

	filter := bson.M{"event_id": rec.EventID, "user_id": rec.UserID}
	update := bson.M{
		"$set": bson.M{
			"status":       rec.Status,
			"display_name": rec.DisplayName,
			"updated_at":   rec.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"event_id": rec.EventID,
			"user_id":  rec.UserID,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := col.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("error upserting rsvp record: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) ListGoing(ctx context.Context, eventId string) ([]*RSVPRecord, error) {
	col := mdb.collection(RSVPDbName, RSVPColName)

	filter := bson.M{"event_id": eventId, "status": RSVPGoing}
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: 1}})

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding attendees: %v", err)
	}
	defer cursor.Close(ctx)

	var records []*RSVPRecord
	for cursor.Next(ctx) {
		var rec RSVPRecord
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("error decoding rsvp record: %v", err)
		}
		records = append(records, &rec)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return records, nil
}
