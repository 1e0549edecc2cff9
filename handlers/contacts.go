package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	ds "github.com/oaiiae/contacts-api/datastores"
)

const (
	msgNotFound       = "Contact not found"
	msgFieldsRequired = "All fields (firstName, lastName, email, favoriteColor, birthday) are required"
)

const tagContacts = "Contacts"

type Contacts struct {
	Store        ds.ContactsStore
	ErrorHandler func(context.Context, error)
}

type ContactFields struct {
	FirstName     string `json:"firstName"     example:"John"             minLength:"1"`
	LastName      string `json:"lastName"      example:"Doe"              minLength:"1"`
	Email         string `json:"email"         example:"john@example.com" minLength:"1"`
	FavoriteColor string `json:"favoriteColor" example:"blue"             minLength:"1"`
	Birthday      string `json:"birthday"      example:"1990-01-15"       minLength:"1"`
}

// contact returns the store representation, a nil receiver gives an empty contact.
func (f *ContactFields) contact() *ds.Contact {
	if f == nil {
		return new(ds.Contact)
	}
	return &ds.Contact{
		FirstName:     f.FirstName,
		LastName:      f.LastName,
		Email:         f.Email,
		FavoriteColor: f.FavoriteColor,
		Birthday:      f.Birthday,
	}
}

type ContactModel struct {
	ID ds.ContactID `json:"id" example:"507f1f77bcf86cd799439011" readOnly:"true"`
	ContactFields
}

func newContactModel(c *ds.Contact) ContactModel {
	return ContactModel{
		ID: c.ID,
		ContactFields: ContactFields{
			FirstName:     c.FirstName,
			LastName:      c.LastName,
			Email:         c.Email,
			FavoriteColor: c.FavoriteColor,
			Birthday:      c.Birthday,
		},
	}
}

func (h *Contacts) RegisterList(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/contacts",
		handlerWithErrorHandler(h.list, h.ErrorHandler),
		opDoc("list-contacts", "Get all contacts", tagContacts),
		opErrors(http.StatusInternalServerError),
	)
}

type ContactsListOutput struct {
	Body []ContactModel
}

func (h *Contacts) list(ctx context.Context, _ *struct{}) (*ContactsListOutput, error) {
	contacts, err := h.Store.List(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("Error fetching contacts", err)
	}

	body := make([]ContactModel, 0, len(contacts))
	for _, contact := range contacts {
		body = append(body, newContactModel(contact))
	}

	return &ContactsListOutput{Body: body}, nil
}

func (h *Contacts) RegisterGet(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/contacts/{id}",
		handlerWithErrorHandler(h.get, h.ErrorHandler),
		opDoc("get-contact", "Get a contact by ID", tagContacts),
		opErrors(http.StatusNotFound, http.StatusInternalServerError),
	)
}

type ContactsGetOutput struct {
	Body ContactModel
}

func (h *Contacts) get(ctx context.Context, input *struct {
	ID ds.ContactID `path:"id" example:"507f1f77bcf86cd799439011" doc:"ID of the contact to get"`
}) (*ContactsGetOutput, error) {
	contact, err := h.Store.Get(ctx, input.ID)
	switch {
	case err == nil:
		return &ContactsGetOutput{Body: newContactModel(contact)}, nil

	case errors.Is(err, ds.ErrObjectNotFound):
		return nil, huma.Error404NotFound(msgNotFound, err)

	default:
		return nil, huma.Error500InternalServerError("Error fetching contact", err)
	}
}

func (h *Contacts) RegisterPost(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, "/contacts",
		handlerWithErrorHandler(h.post, h.ErrorHandler),
		opDoc("create-contact", "Create a new contact", tagContacts),
		opStatus(http.StatusCreated),
		opSkipValidateBody,
		opErrors(http.StatusBadRequest, http.StatusInternalServerError),
	)
}

type ContactsPostOutput struct {
	Body struct {
		ID ds.ContactID `json:"id" example:"507f1f77bcf86cd799439011" doc:"ID of the created contact"`
	}
}

func (h *Contacts) post(ctx context.Context, input *struct {
	Body *ContactFields `required:"false"`
}) (*ContactsPostOutput, error) {
	contact := input.Body.contact()
	if err := ds.ValidateContact(contact); err != nil {
		return nil, huma.Error400BadRequest(msgFieldsRequired, err)
	}

	id, err := h.Store.Create(ctx, contact)
	if err != nil {
		return nil, huma.Error500InternalServerError("Error creating contact", err)
	}

	out := &ContactsPostOutput{}
	out.Body.ID = id
	return out, nil
}

func (h *Contacts) RegisterPut(api huma.API) { // called by [huma.AutoRegister]
	huma.Put(api, "/contacts/{id}",
		handlerWithErrorHandler(h.put, h.ErrorHandler),
		opDoc("update-contact", "Update a contact", tagContacts),
		opStatus(http.StatusNoContent),
		opSkipValidateBody,
		opErrors(http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError),
	)
}

func (h *Contacts) put(ctx context.Context, input *struct {
	ID   ds.ContactID `path:"id" example:"507f1f77bcf86cd799439011" doc:"ID of the contact to put"`
	Body *ContactFields `required:"false"`
}) (*struct{}, error) {
	contact := input.Body.contact()
	if err := ds.ValidateContact(contact); err != nil {
		return nil, huma.Error400BadRequest(msgFieldsRequired, err)
	}

	err := h.Store.Update(ctx, input.ID, contact)
	switch {
	case err == nil:
		return nil, nil //nolint: nilnil // empty response

	case errors.Is(err, ds.ErrObjectNotFound):
		return nil, huma.Error404NotFound(msgNotFound, err)

	default:
		return nil, huma.Error500InternalServerError("Error updating contact", err)
	}
}

func (h *Contacts) RegisterDel(api huma.API) { // called by [huma.AutoRegister]
	huma.Delete(api, "/contacts/{id}",
		handlerWithErrorHandler(h.del, h.ErrorHandler),
		opDoc("delete-contact", "Delete a contact", tagContacts),
		opStatus(http.StatusNoContent),
		opErrors(http.StatusNotFound, http.StatusInternalServerError),
	)
}

func (h *Contacts) del(ctx context.Context, input *struct {
	ID ds.ContactID `path:"id" example:"507f1f77bcf86cd799439011" doc:"ID of the contact to delete"`
}) (*struct{}, error) {
	err := h.Store.Delete(ctx, input.ID)
	switch {
	case err == nil:
		return nil, nil //nolint: nilnil // empty response

	case errors.Is(err, ds.ErrObjectNotFound):
		return nil, huma.Error404NotFound(msgNotFound, err)

	default:
		return nil, huma.Error500InternalServerError("Error deleting contact", err)
	}
}
