package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domaincamper "camperhub/internal/domain/camper"
	"camperhub/internal/domain/shared/money"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type CamperRepository struct {
	col *mongo.Collection
}

func NewCamperRepository(db *mongo.Database) *CamperRepository {
	col := db.Collection("campers")
	idx := mongo.IndexModel{Keys: bson.D{{Key: "owner_id", Value: 1}}}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &CamperRepository{col: col}
}

func (r *CamperRepository) ByID(ctx context.Context, id domaincamper.CamperID) (*domaincamper.Camper, error) {
	var doc camperDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domaincamper.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *CamperRepository) Save(ctx context.Context, c *domaincamper.Camper) error {
	doc := newCamperDocument(c)
	filter := bson.M{"_id": doc.ID, "version": c.Version}
	doc.Version = c.Version + 1
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
	c.Version = doc.Version
	return nil
}

func (r *CamperRepository) CountByOwner(ctx context.Context, owner domaincamper.OwnerID) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"owner_id": string(owner)})
}

type camperDocument struct {
	ID                string               `bson:"_id"`
	OwnerID           string               `bson:"owner_id"`
	Name              string               `bson:"name"`
	Description       string               `bson:"description"`
	Status            string               `bson:"status"`
	LicensePlate      string               `bson:"license_plate"`
	StandardPrice     moneyDocument        `bson:"standard_price"`
	MinimumRentalDays int                  `bson:"minimum_rental_days"`
	CleaningFee       moneyDocument        `bson:"cleaning_fee"`
	Deposit           moneyDocument        `bson:"deposit"`
	RateWindows       []rateWindowDocument `bson:"rate_windows"`
	Extras            []extraDocument      `bson:"extras"`
	Available         bool                 `bson:"available"`
	ThumbnailURL      string               `bson:"thumbnail_url"`
	Photos            []string             `bson:"photos"`
	SleepingPlaces    int                  `bson:"sleeping_places"`
	CreatedAt         int64                `bson:"created_at"`
	UpdatedAt         int64                `bson:"updated_at"`
	Version           int64                `bson:"version"`
}

type moneyDocument struct {
	Amount   int64  `bson:"amount"`
	Currency string `bson:"currency"`
}

type rateWindowDocument struct {
	From          int64          `bson:"from"`
	To            int64          `bson:"to"`
	StandardPrice moneyDocument  `bson:"standard_price"`
	Available     bool           `bson:"available"`
	CleaningFee   *moneyDocument `bson:"cleaning_fee,omitempty"`
	Deposit       *moneyDocument `bson:"deposit,omitempty"`
}

type extraDocument struct {
	Name      string        `bson:"name"`
	Price     moneyDocument `bson:"price"`
	PriceType string        `bson:"price_type"`
}

func newCamperDocument(c *domaincamper.Camper) camperDocument {
	windows := make([]rateWindowDocument, 0, len(c.RateWindows))
	for _, w := range c.RateWindows {
		windows = append(windows, rateWindowDocument{
			From:          w.From.UnixMilli(),
			To:            w.To.UnixMilli(),
			StandardPrice: newMoneyDocument(w.StandardPrice),
			Available:     w.Available,
			CleaningFee:   newMoneyPtr(w.CleaningFee),
			Deposit:       newMoneyPtr(w.Deposit),
		})
	}
	extras := make([]extraDocument, 0, len(c.Extras))
	for _, e := range c.Extras {
		extras = append(extras, extraDocument{
			Name:      e.Name,
			Price:     newMoneyDocument(e.Price),
			PriceType: string(e.PriceType),
		})
	}
	return camperDocument{
		ID:                string(c.ID),
		OwnerID:           string(c.Owner),
		Name:              c.Name,
		Description:       c.Description,
		Status:            string(c.Status),
		LicensePlate:      c.LicensePlate,
		StandardPrice:     newMoneyDocument(c.StandardPrice),
		MinimumRentalDays: c.MinimumRentalDays,
		CleaningFee:       newMoneyDocument(c.CleaningFee),
		Deposit:           newMoneyDocument(c.Deposit),
		RateWindows:       windows,
		Extras:            extras,
		Available:         c.Available,
		ThumbnailURL:      c.ThumbnailURL,
		Photos:            c.Photos,
		SleepingPlaces:    c.SleepingPlaces,
		CreatedAt:         c.CreatedAt.UnixMilli(),
		UpdatedAt:         c.UpdatedAt.UnixMilli(),
		Version:           c.Version,
	}
}

func (d camperDocument) toAggregate() *domaincamper.Camper {
	windows := make([]domaincamper.RateWindow, 0, len(d.RateWindows))
	for _, w := range d.RateWindows {
		windows = append(windows, domaincamper.RateWindow{
			From:          timestampToTime(w.From),
			To:            timestampToTime(w.To),
			StandardPrice: w.StandardPrice.toMoney(),
			Available:     w.Available,
			CleaningFee:   toMoneyPtr(w.CleaningFee),
			Deposit:       toMoneyPtr(w.Deposit),
		})
	}
	extras := make([]domaincamper.Extra, 0, len(d.Extras))
	for _, e := range d.Extras {
		extras = append(extras, domaincamper.Extra{
			Name:      e.Name,
			Price:     e.Price.toMoney(),
			PriceType: domaincamper.PriceType(e.PriceType),
		})
	}
	return &domaincamper.Camper{
		ID:                domaincamper.CamperID(d.ID),
		Owner:             domaincamper.OwnerID(d.OwnerID),
		Name:              d.Name,
		Description:       d.Description,
		Status:            domaincamper.Status(d.Status),
		LicensePlate:      d.LicensePlate,
		StandardPrice:     d.StandardPrice.toMoney(),
		MinimumRentalDays: d.MinimumRentalDays,
		CleaningFee:       d.CleaningFee.toMoney(),
		Deposit:           d.Deposit.toMoney(),
		RateWindows:       windows,
		Extras:            extras,
		Available:         d.Available,
		ThumbnailURL:      d.ThumbnailURL,
		Photos:            d.Photos,
		SleepingPlaces:    d.SleepingPlaces,
		CreatedAt:         timestampToTime(d.CreatedAt),
		UpdatedAt:         timestampToTime(d.UpdatedAt),
		Version:           d.Version,
	}
}

func newMoneyDocument(m money.Money) moneyDocument {
	return moneyDocument{Amount: m.Amount, Currency: m.Currency}
}

func newMoneyPtr(m *money.Money) *moneyDocument {
	if m == nil {
		return nil
	}
	doc := newMoneyDocument(*m)
	return &doc
}

func (d moneyDocument) toMoney() money.Money {
	return money.Money{Amount: d.Amount, Currency: d.Currency}
}

func toMoneyPtr(d *moneyDocument) *money.Money {
	if d == nil {
		return nil
	}
	m := d.toMoney()
	return &m
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
