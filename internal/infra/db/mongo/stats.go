package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"camperhub/internal/app/services/ownerstats"
)

// StatsSource aggregates owner statistics with a single pipeline over the
// users collection. Every user appears in the result, campers or not.
type StatsSource struct {
	db *mongo.Database
}

func NewStatsSource(db *mongo.Database) *StatsSource {
	return &StatsSource{db: db}
}

func (s *StatsSource) OwnerStats(ctx context.Context) ([]ownerstats.Row, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         "campers",
			"localField":   "_id",
			"foreignField": "owner_id",
			"as":           "campers",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from": "bookings",
			"let":  bson.M{"camperIds": "$campers._id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{
					"$expr": bson.M{"$in": bson.A{"$camper_id", "$$camperIds"}},
				}},
			},
			"as": "bookings",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"totalCampers":  bson.M{"$size": "$campers"},
			"totalBookings": bson.M{"$size": "$bookings"},
			"pending":       bookingCountByStatus("pending"),
			"confirmed":     bookingCountByStatus("confirmed"),
			"cancelled":     bookingCountByStatus("cancelled"),
			"completed":     bookingCountByStatus("completed"),
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":           0,
			"ownerId":       "$_id",
			"ownerName":     bson.M{"$concat": bson.A{"$first_name", " ", "$last_name"}},
			"totalCampers":  1,
			"totalBookings": 1,
			"pending":       1,
			"confirmed":     1,
			"cancelled":     1,
			"completed":     1,
		}}},
	}

	cursor, err := s.db.Collection("users").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []ownerstats.Row
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func bookingCountByStatus(status string) bson.M {
	return bson.M{"$size": bson.M{"$filter": bson.M{
		"input": "$bookings",
		"as":    "b",
		"cond":  bson.M{"$eq": bson.A{"$$b.status", status}},
	}}}
}

var _ ownerstats.Source = (*StatsSource)(nil)
