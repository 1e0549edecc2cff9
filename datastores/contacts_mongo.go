package datastores

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ContactsCollection is the default collection name for [ContactsMongo].
const ContactsCollection = "contacts"

// ContactsMongo implements [ContactsStore] on a MongoDB collection.
type ContactsMongo struct {
	coll *mongo.Collection
}

var _ ContactsStore = (*ContactsMongo)(nil)

func NewContactsMongo(coll *mongo.Collection) *ContactsMongo {
	return &ContactsMongo{coll: coll}
}

// contactDocument is the stored shape of a [Contact].
type contactDocument struct {
	ID            primitive.ObjectID `bson:"_id"`
	FirstName     string             `bson:"firstName"`
	LastName      string             `bson:"lastName"`
	Email         string             `bson:"email"`
	FavoriteColor string             `bson:"favoriteColor"`
	Birthday      string             `bson:"birthday"`
}

func (d *contactDocument) contact() *Contact {
	return &Contact{
		ID:            ContactID(d.ID.Hex()),
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Email:         d.Email,
		FavoriteColor: d.FavoriteColor,
		Birthday:      d.Birthday,
	}
}

func newContactDocument(id primitive.ObjectID, c *Contact) *contactDocument {
	return &contactDocument{
		ID:            id,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Email:         c.Email,
		FavoriteColor: c.FavoriteColor,
		Birthday:      c.Birthday,
	}
}

func (s *ContactsMongo) List(ctx context.Context) ([]*Contact, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(err, "finding contacts")
	}
	defer cur.Close(ctx)

	contacts := []*Contact{}
	for cur.Next(ctx) {
		var doc contactDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "decoding contact")
		}
		contacts = append(contacts, doc.contact())
	}
	return contacts, errors.Wrap(cur.Err(), "iterating contacts")
}

func (s *ContactsMongo) Get(ctx context.Context, id ContactID) (*Contact, error) {
	oid, err := id.objectID()
	if err != nil {
		return nil, err
	}

	var doc contactDocument
	err = s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	switch {
	case err == nil:
		return doc.contact(), nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, wrapNotFound(id, nil)
	default:
		return nil, errors.Wrapf(err, "finding contact '%s'", id)
	}
}

func (s *ContactsMongo) Create(ctx context.Context, c *Contact) (ContactID, error) {
	oid := primitive.NewObjectID()
	if _, err := s.coll.InsertOne(ctx, newContactDocument(oid, c)); err != nil {
		return "", errors.Wrap(err, "inserting contact")
	}
	return ContactID(oid.Hex()), nil
}

func (s *ContactsMongo) Update(ctx context.Context, id ContactID, c *Contact) error {
	oid, err := id.objectID()
	if err != nil {
		return err
	}

	res, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: oid}}, newContactDocument(oid, c))
	if err != nil {
		return errors.Wrapf(err, "replacing contact '%s'", id)
	}
	if res.MatchedCount == 0 {
		return wrapNotFound(id, nil)
	}
	return nil
}

func (s *ContactsMongo) Delete(ctx context.Context, id ContactID) error {
	oid, err := id.objectID()
	if err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return errors.Wrapf(err, "deleting contact '%s'", id)
	}
	if res.DeletedCount == 0 {
		return wrapNotFound(id, nil)
	}
	return nil
}

func (s *ContactsMongo) Ping(ctx context.Context) error {
	return errors.Wrap(s.coll.Database().Client().Ping(ctx, readpref.Primary()), "pinging mongodb")
}
