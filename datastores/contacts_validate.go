package datastores

import "strings"

// MissingFieldsError is returned by [ValidateContact] and lists the required
// fields that were empty, in declaration order.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// ValidateContact checks that every field of c except the ID is set.
// A nil contact misses all of them.
func ValidateContact(c *Contact) error {
	if c == nil {
		c = new(Contact)
	}

	var missing []string
	for _, f := range [...]struct{ name, value string }{
		{"firstName", c.FirstName},
		{"lastName", c.LastName},
		{"email", c.Email},
		{"favoriteColor", c.FavoriteColor},
		{"birthday", c.Birthday},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}

	if missing != nil {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}
