package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client, err := NewClient("  John Price  ", "John.Price@Email.COM", "3101234567")
	require.NoError(t, err)

	assert.Equal(t, "John Price", client.Name)
	assert.Equal(t, "john.price@email.com", client.Email, "email should be stored lowercase")
	assert.Equal(t, "3101234567", client.Phone)
	assert.True(t, client.Active, "new clients start active")
	assert.False(t, client.RegisteredAt.IsZero())
}

func TestNewClientCollectsAllInvalidFields(t *testing.T) {
	_, err := NewClient("", "not-an-email", "123")
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.ElementsMatch(t, []string{"name", "email", "phone"}, vErr.Fields)
}

func TestNewClientRejectsBadPhone(t *testing.T) {
	for _, phone := range []string{"310123456", "31012345678", "310123456a", ""} {
		_, err := NewClient("John", "john@email.com", phone)
		assert.Error(t, err, "phone %q should be rejected", phone)
	}
}

func TestMergeClientPartialUpdate(t *testing.T) {
	existing, err := NewClient("Mary Rogers", "mary@email.com", "3118765432")
	require.NoError(t, err)

	newEmail := "Mary.Rogers@Email.com"
	merged, err := MergeClient(existing, ClientUpdate{Email: &newEmail})
	require.NoError(t, err)

	assert.Equal(t, "mary.rogers@email.com", merged.Email)
	assert.Equal(t, existing.Name, merged.Name, "untouched fields keep their values")
	assert.Equal(t, existing.Phone, merged.Phone)
	assert.Equal(t, existing.RegisteredAt, merged.RegisteredAt)
	assert.Equal(t, "mary@email.com", existing.Email, "merge must not mutate the original")
}

func TestMergeClientEmptyUpdate(t *testing.T) {
	existing, err := NewClient("Mary Rogers", "mary@email.com", "3118765432")
	require.NoError(t, err)

	_, err = MergeClient(existing, ClientUpdate{})
	assert.Error(t, err)

	_, err = MergeClient(nil, ClientUpdate{Name: &existing.Name})
	assert.Error(t, err)
}

func TestMergeClientValidatesReplacedFields(t *testing.T) {
	existing, err := NewClient("Mary Rogers", "mary@email.com", "3118765432")
	require.NoError(t, err)

	bad := "nope"
	_, err = MergeClient(existing, ClientUpdate{Email: &bad})
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"email"}, vErr.Fields)
}

func TestClientUpdateIsEmpty(t *testing.T) {
	assert.True(t, ClientUpdate{}.IsEmpty())

	active := false
	assert.False(t, ClientUpdate{Active: &active}.IsEmpty())
}
