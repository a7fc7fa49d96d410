package registrations

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/gdg-garage/charity-api/internal/apperr"
	"github.com/gdg-garage/charity-api/internal/auth"
	"github.com/gdg-garage/charity-api/internal/database"
	"github.com/gdg-garage/charity-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, *Store, models.User, models.User) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "reg.db"))
	require.NoError(t, err)

	alice := models.User{Email: "alice@example.com", PasswordHash: "x"}
	bob := models.User{Email: "bob@charity.org", PasswordHash: "x"}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&bob).Error)

	return db, NewStore(db), alice, bob
}

func TestCreate(t *testing.T) {
	_, store, alice, _ := setup(t)
	ctx := context.Background()

	id, err := store.Create(ctx, alice.ID, json.RawMessage(`{"tshirt":"M"}`))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	rows, err := store.List(ctx, auth.Principal{ID: alice.ID, Role: models.RoleUser}, Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.JSONEq(t, `{"tshirt":"M"}`, string(rows[0].Data))

	t.Run("EmptyPayloadDefaultsToObject", func(t *testing.T) {
		id, err := store.Create(ctx, alice.ID, nil)
		require.NoError(t, err)
		rows, err := store.List(ctx, auth.Principal{ID: alice.ID}, Filter{})
		require.NoError(t, err)
		for _, r := range rows {
			if r.ID == id {
				assert.JSONEq(t, `{}`, string(r.Data))
			}
		}
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		_, err := store.Create(ctx, alice.ID, json.RawMessage(`{oops`))
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestList_Visibility(t *testing.T) {
	_, store, alice, bob := setup(t)
	ctx := context.Background()

	_, err := store.Create(ctx, alice.ID, json.RawMessage(`{"n":1}`))
	require.NoError(t, err)
	_, err = store.Create(ctx, bob.ID, json.RawMessage(`{"n":2}`))
	require.NoError(t, err)

	t.Run("UserSeesOwn", func(t *testing.T) {
		rows, err := store.List(ctx, auth.Principal{ID: alice.ID, Role: models.RoleUser}, Filter{})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, alice.ID, rows[0].UserID)
	})

	t.Run("UserEmailFilterCannotWiden", func(t *testing.T) {
		rows, err := store.List(ctx, auth.Principal{ID: alice.ID, Role: models.RoleUser}, Filter{Email: "charity.org"})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("AdminSeesAll", func(t *testing.T) {
		rows, err := store.List(ctx, auth.Principal{ID: "admin", Role: models.RoleAdmin}, Filter{})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("AdminEmailFilter", func(t *testing.T) {
		rows, err := store.List(ctx, auth.Principal{ID: "admin", Role: models.RoleAdmin}, Filter{Email: "charity"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, bob.ID, rows[0].UserID)
	})

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}
