package repository

import (
	"context"
	"time"

	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// contactDocument is the stored shape of a contact.
type contactDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone"`
	Favorite  bool               `bson:"favorite"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *contactDocument) toModel() *model.Contact {
	return &model.Contact{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Favorite:  d.Favorite,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// MongoContactRepository implements ContactRepository over one collection.
// Every write is a single-document operation.
type MongoContactRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

var _ ContactRepository = (*MongoContactRepository)(nil)

func NewMongoContactRepository(collection *mongo.Collection) *MongoContactRepository {
	return &MongoContactRepository{
		collection: collection,
		// Mongo stores milliseconds; truncate so returned values round-trip.
		now: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func (r *MongoContactRepository) List(ctx context.Context) ([]*model.Contact, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "finding contacts")
	}
	defer cursor.Close(ctx)

	var docs []contactDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding contacts")
	}

	contacts := make([]*model.Contact, 0, len(docs))
	for i := range docs {
		contacts = append(contacts, docs[i].toModel())
	}
	return contacts, nil
}

func (r *MongoContactRepository) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrContactNotFound
	}

	var doc contactDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		return nil, mongoError(err, "finding contact")
	}
	return doc.toModel(), nil
}

func (r *MongoContactRepository) Create(ctx context.Context, input model.CreateContact) (*model.Contact, error) {
	now := r.now()
	doc := contactDocument{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Favorite:  input.Favorite,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, errors.Wrap(err, "inserting contact")
	}
	return doc.toModel(), nil
}

func (r *MongoContactRepository) UpdateByID(ctx context.Context, id string, update model.ContactUpdate) (*model.Contact, error) {
	set := bson.M{"updatedAt": r.now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.Favorite != nil {
		set["favorite"] = *update.Favorite
	}

	return r.findOneAndSet(ctx, id, set)
}

func (r *MongoContactRepository) UpdateStatus(ctx context.Context, id string, favorite bool) (*model.Contact, error) {
	return r.findOneAndSet(ctx, id, bson.M{"favorite": favorite, "updatedAt": r.now()})
}

func (r *MongoContactRepository) findOneAndSet(ctx context.Context, id string, set bson.M) (*model.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrContactNotFound
	}

	var doc contactDocument
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, mongoError(err, "updating contact")
	}
	return doc.toModel(), nil
}

func (r *MongoContactRepository) Remove(ctx context.Context, id string) (*model.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrContactNotFound
	}

	var doc contactDocument
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mongoError(err, "deleting contact")
	}
	return doc.toModel(), nil
}

func (r *MongoContactRepository) Ping(ctx context.Context) error {
	return r.collection.Database().Client().Ping(ctx, readpref.Primary())
}

func mongoError(err error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrContactNotFound
	}
	return errors.Wrap(err, op)
}
