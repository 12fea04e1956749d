package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "camperhub/internal/domain/booking"
	domaincamper "camperhub/internal/domain/camper"
	domainrange "camperhub/internal/domain/shared/daterange"
	domainuser "camperhub/internal/domain/user"
)

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	col := db.Collection("bookings")
	idx := mongo.IndexModel{Keys: bson.D{{Key: "camper_id", Value: 1}, {Key: "status", Value: 1}}}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &BookingRepository{col: col}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	filter := bson.M{"_id": doc.ID, "version": b.Version}
	doc.Version = b.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	b.Version = doc.Version
	return nil
}

// FindConfirmedOverlapping uses the inclusive comparison the availability
// checks rely on: date_from <= end AND date_to >= start.
func (r *BookingRepository) FindConfirmedOverlapping(ctx context.Context, id domaincamper.CamperID, start, end time.Time) ([]*domainbooking.Booking, error) {
	filter := bson.M{
		"camper_id": string(id),
		"status":    string(domainbooking.StatusConfirmed),
		"date_from": bson.M{"$lte": end.UnixMilli()},
		"date_to":   bson.M{"$gte": start.UnixMilli()},
	}
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []*domainbooking.Booking
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		result = append(result, doc.toAggregate())
	}
	return result, cursor.Err()
}

func (r *BookingRepository) CountByUser(ctx context.Context, id domainuser.ID) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"user_id": string(id)})
}

func (r *BookingRepository) CountByCamper(ctx context.Context, id domaincamper.CamperID) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"camper_id": string(id)})
}

type bookingDocument struct {
	ID        string `bson:"_id"`
	UserID    string `bson:"user_id"`
	CamperID  string `bson:"camper_id"`
	DateFrom  int64  `bson:"date_from"`
	DateTo    int64  `bson:"date_to"`
	Status    string `bson:"status"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
	Version   int64  `bson:"version"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	return bookingDocument{
		ID:        string(b.ID),
		UserID:    string(b.UserID),
		CamperID:  string(b.CamperID),
		DateFrom:  b.Range.From.UnixMilli(),
		DateTo:    b.Range.To.UnixMilli(),
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt.UnixMilli(),
		UpdatedAt: b.UpdatedAt.UnixMilli(),
		Version:   b.Version,
	}
}

func (d bookingDocument) toAggregate() *domainbooking.Booking {
	return &domainbooking.Booking{
		ID:       domainbooking.BookingID(d.ID),
		UserID:   domainuser.ID(d.UserID),
		CamperID: domaincamper.CamperID(d.CamperID),
		Range: domainrange.DateRange{
			From: timestampToTime(d.DateFrom),
			To:   timestampToTime(d.DateTo),
		},
		Status:    domainbooking.Status(d.Status),
		CreatedAt: timestampToTime(d.CreatedAt),
		UpdatedAt: timestampToTime(d.UpdatedAt),
		Version:   d.Version,
	}
}
