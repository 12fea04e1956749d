package mongo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainuser "camperhub/internal/domain/user"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	col := db.Collection("users")
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &UserRepository{col: col}
}

func (r *UserRepository) ByID(ctx context.Context, id domainuser.ID) (*domainuser.User, error) {
	var doc userDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainuser.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *UserRepository) ByEmail(ctx context.Context, email string) (*domainuser.User, error) {
	var doc userDocument
	filter := bson.M{"email": domainuser.NormalizeEmail(email)}
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainuser.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *UserRepository) Save(ctx context.Context, u *domainuser.User) error {
	doc := newUserDocument(u)
	filter := bson.M{"_id": doc.ID, "version": u.Version}
	doc.Version = u.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainuser.ErrEmailAlreadyUsed
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	u.Version = doc.Version
	return nil
}

// List applies role, status and search filters server-side. Search matches
// first name, last name or email, case-insensitively.
func (r *UserRepository) List(ctx context.Context, filter domainuser.ListFilter) ([]*domainuser.User, error) {
	query := bson.M{}
	switch filter.Role {
	case domainuser.RoleAdmin:
		query["is_admin"] = true
	case domainuser.RoleUser:
		query["is_admin"] = false
	}
	if filter.Status != "" {
		query["account_status"] = string(filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := primitiveRegex(search)
		query["$or"] = bson.A{
			bson.M{"first_name": pattern},
			bson.M{"last_name": pattern},
			bson.M{"email": pattern},
		}
	}

	cursor, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []*domainuser.User
	for cursor.Next(ctx) {
		var doc userDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		result = append(result, doc.toAggregate())
	}
	return result, cursor.Err()
}

func primitiveRegex(search string) bson.M {
	return bson.M{"$regex": escapeRegex(search), "$options": "i"}
}

// escapeRegex neutralizes regex metacharacters so user input is matched
// literally.
func escapeRegex(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

type userDocument struct {
	ID            string `bson:"_id"`
	Email         string `bson:"email"`
	FirstName     string `bson:"first_name"`
	LastName      string `bson:"last_name"`
	PasswordHash  string `bson:"password_hash"`
	IsAdmin       bool   `bson:"is_admin"`
	EmailVerified bool   `bson:"email_verified"`
	AccountStatus string `bson:"account_status"`
	CreatedAt     int64  `bson:"created_at"`
	UpdatedAt     int64  `bson:"updated_at"`
	Version       int64  `bson:"version"`
}

func newUserDocument(u *domainuser.User) userDocument {
	return userDocument{
		ID:            string(u.ID),
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		PasswordHash:  u.PasswordHash,
		IsAdmin:       u.IsAdmin,
		EmailVerified: u.EmailVerified,
		AccountStatus: string(u.AccountStatus),
		CreatedAt:     u.CreatedAt.UnixMilli(),
		UpdatedAt:     u.UpdatedAt.UnixMilli(),
		Version:       u.Version,
	}
}

func (d userDocument) toAggregate() *domainuser.User {
	return &domainuser.User{
		ID:            domainuser.ID(d.ID),
		Email:         d.Email,
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		PasswordHash:  d.PasswordHash,
		IsAdmin:       d.IsAdmin,
		EmailVerified: d.EmailVerified,
		AccountStatus: domainuser.AccountStatus(d.AccountStatus),
		CreatedAt:     timestampToTime(d.CreatedAt),
		UpdatedAt:     timestampToTime(d.UpdatedAt),
		Version:       d.Version,
	}
}
