package datastores

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type (
	// ContactID is the hexadecimal form of a MongoDB ObjectID.
	ContactID string
	Contact   struct {
		ID            ContactID
		FirstName     string
		LastName      string
		Email         string
		FavoriteColor string
		Birthday      string
	}
)

type ContactsStore interface {
	List(context.Context) ([]*Contact, error)
	Get(context.Context, ContactID) (*Contact, error)
	Create(context.Context, *Contact) (ContactID, error)
	Update(context.Context, ContactID, *Contact) error
	Delete(context.Context, ContactID) error
	Ping(context.Context) error
}

var ErrObjectNotFound = errors.New("store: object not found")

func newContactID() ContactID { return ContactID(primitive.NewObjectID().Hex()) }

// objectID parses id. A malformed or non-canonical (uppercase) id cannot
// name any record so it is reported as [ErrObjectNotFound].
func (id ContactID) objectID() (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return oid, wrapNotFound(id, err)
	}
	if oid.Hex() != string(id) {
		return oid, wrapNotFound(id, errors.New("non-canonical object id"))
	}
	return oid, nil
}

// Valid reports whether id is a well-formed identifier.
func (id ContactID) Valid() bool {
	_, err := id.objectID()
	return err == nil
}

func (c *Contact) clone() *Contact {
	cc := *c
	return &cc
}
