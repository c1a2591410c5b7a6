package mongo

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestock/supplier-registry/internal/core/domain"
	"github.com/gestock/supplier-registry/internal/core/ports"
)

const collectionSuppliers = "suppliers"

// sortFields whitelists the supplier fields exposed for sorting; anything
// else falls back to created_at.
var sortFields = map[string]string{
	"matricule":  "matricule",
	"name":       "name",
	"email":      "email",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type SupplierRepository struct {
	col *mongo.Collection
}

func NewSupplierRepository(db *mongo.Database) *SupplierRepository {
	return &SupplierRepository{col: db.Collection(collectionSuppliers)}
}

// mongoSupplier mirrors domain.Supplier with a native ObjectID so inserts
// get a driver-generated identifier.
type mongoSupplier struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Matricule     string             `bson:"matricule"`
	Name          string             `bson:"name"`
	Address       string             `bson:"address"`
	TaxCode       string             `bson:"tax_code"`
	Email         string             `bson:"email"`
	Phone         string             `bson:"phone"`
	Phone2        string             `bson:"phone2,omitempty"`
	Fax           string             `bson:"fax,omitempty"`
	ContactPerson string             `bson:"contact_person"`
	Currency      string             `bson:"currency"`
	Notes         string             `bson:"notes,omitempty"`
	Active        bool               `bson:"active"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func toDoc(s *domain.Supplier) mongoSupplier {
	return mongoSupplier{
		Matricule:     s.Matricule,
		Name:          s.Name,
		Address:       s.Address,
		TaxCode:       s.TaxCode,
		Email:         s.Email,
		Phone:         s.Phone,
		Phone2:        s.Phone2,
		Fax:           s.Fax,
		ContactPerson: s.ContactPerson,
		Currency:      s.Currency,
		Notes:         s.Notes,
		Active:        s.Active,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (d mongoSupplier) toDomain() *domain.Supplier {
	return &domain.Supplier{
		ID:            d.ID.Hex(),
		Matricule:     d.Matricule,
		Name:          d.Name,
		Address:       d.Address,
		TaxCode:       d.TaxCode,
		Email:         d.Email,
		Phone:         d.Phone,
		Phone2:        d.Phone2,
		Fax:           d.Fax,
		ContactPerson: d.ContactPerson,
		Currency:      d.Currency,
		Notes:         d.Notes,
		Active:        d.Active,
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}
}

// Insert persists a new supplier and returns it with the assigned id.
// A unique-index violation maps to the matching duplicate error, which is
// the last line of defense when two writers pass the existence checks
// concurrently.
func (r *SupplierRepository) Insert(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toDoc(s)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateError(err)
		}
		return nil, err
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *SupplierRepository) Update(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(s.ID)
	if err != nil {
		return nil, domain.ErrSupplierNotFound
	}

	doc := toDoc(s)
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateError(err)
		}
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrSupplierNotFound
	}

	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *SupplierRepository) FindByID(ctx context.Context, id string) (*domain.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSupplierNotFound
	}

	var doc mongoSupplier
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSupplierNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *SupplierRepository) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSupplierNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrSupplierNotFound
	}
	return nil
}

func (r *SupplierRepository) ExistsByMatricule(ctx context.Context, matricule, excludeID string) (bool, error) {
	return r.exists(ctx, "matricule", matricule, excludeID)
}

func (r *SupplierRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	return r.exists(ctx, "email", email, excludeID)
}

func (r *SupplierRepository) exists(ctx context.Context, field, value, excludeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{field: value}
	if excludeID != "" {
		oid, err := primitive.ObjectIDFromHex(excludeID)
		if err != nil {
			return false, domain.ErrSupplierNotFound
		}
		filter["_id"] = bson.M{"$ne": oid}
	}

	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns one page of suppliers matching filter plus the total count.
// Text criteria become case-insensitive anchored-nowhere regexes; a free
// Search term turns into an $or across the searchable fields.
func (r *SupplierRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.Supplier, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Matricule != "" {
		filter["matricule"] = containsRegex(f.Matricule)
	}
	if f.Name != "" {
		filter["name"] = containsRegex(f.Name)
	}
	if f.Email != "" {
		filter["email"] = containsRegex(f.Email)
	}
	if f.Active != nil {
		filter["active"] = *f.Active
	}
	if f.Search != "" {
		re := containsRegex(f.Search)
		filter["$or"] = bson.A{
			bson.M{"matricule": re},
			bson.M{"name": re},
			bson.M{"email": re},
			bson.M{"contact_person": re},
		}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	sortBy, ok := sortFields[f.SortBy]
	if !ok {
		sortBy = "created_at"
	}
	order := 1
	if f.SortDesc {
		order = -1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortBy, Value: order}}).
		SetSkip(int64(f.Page * f.Size)).
		SetLimit(int64(f.Size))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []*domain.Supplier
	for cur.Next(ctx) {
		var doc mongoSupplier
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, err
		}
		out = append(out, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *SupplierRepository) FindActive(ctx context.Context) ([]*domain.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Supplier
	for cur.Next(ctx) {
		var doc mongoSupplier
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

// EnsureIndexes creates the unique indexes on matricule and email. These are
// the authoritative enforcement of the uniqueness invariants under
// concurrent writers.
func (r *SupplierRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "matricule", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// containsRegex builds a case-insensitive substring matcher with the term
// quoted so user input cannot inject regex syntax.
func containsRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

// duplicateError inspects a unique-index violation and maps it to the
// corresponding domain error. The violated index name appears in the
// server's error message.
func duplicateError(err error) error {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if strings.Contains(e.Message, "email") {
				return domain.ErrDuplicateEmail
			}
		}
	}
	return domain.ErrDuplicateMatricule
}
