package datastores

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateContact(t *testing.T) {
	full := Contact{
		FirstName:     "John",
		LastName:      "Doe",
		Email:         "john@example.com",
		FavoriteColor: "blue",
		Birthday:      "1990-01-15",
	}

	t.Run("Valid", func(t *testing.T) {
		c := full
		assert.NoError(t, ValidateContact(&c))
		assert.Equal(t, full, c, "validation must not modify its input")
	})

	t.Run("IDIsNotRequired", func(t *testing.T) {
		c := full
		c.ID = ""
		assert.NoError(t, ValidateContact(&c))
	})

	for _, tc := range []struct {
		name    string
		mutate  func(*Contact)
		missing []string
	}{
		{"FirstName", func(c *Contact) { c.FirstName = "" }, []string{"firstName"}},
		{"LastName", func(c *Contact) { c.LastName = "" }, []string{"lastName"}},
		{"Email", func(c *Contact) { c.Email = "" }, []string{"email"}},
		{"FavoriteColor", func(c *Contact) { c.FavoriteColor = "" }, []string{"favoriteColor"}},
		{"Birthday", func(c *Contact) { c.Birthday = "" }, []string{"birthday"}},
		{"Several", func(c *Contact) { c.Email, c.LastName = "", "" }, []string{"lastName", "email"}},
		{"All", func(c *Contact) { *c = Contact{} }, []string{"firstName", "lastName", "email", "favoriteColor", "birthday"}},
	} {
		t.Run("Missing"+tc.name, func(t *testing.T) {
			c := full
			tc.mutate(&c)
			err := ValidateContact(&c)
			var mfe *MissingFieldsError
			require.ErrorAs(t, err, &mfe)
			assert.Equal(t, tc.missing, mfe.Fields)
		})
	}

	t.Run("Nil", func(t *testing.T) {
		var mfe *MissingFieldsError
		require.ErrorAs(t, ValidateContact(nil), &mfe)
		assert.Len(t, mfe.Fields, 5)
	})
}
