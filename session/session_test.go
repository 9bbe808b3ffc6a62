package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-storefront/models"
	"go-storefront/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func demoDirectory(t *testing.T) *Directory {
	t.Helper()
	dir, err := DemoDirectory(bcrypt.MinCost)
	require.NoError(t, err)
	return dir
}

func TestValidateCredentials(t *testing.T) {
	dir := demoDirectory(t)

	user, err := dir.ValidateCredentials(DemoEmail, DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "John Doe", user.Name)
	assert.Nil(t, user.PasswordHash)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", DemoEmail, "user124"},
		{"unknown email", "other@test.com", DemoPassword},
		{"email case differs", "User@test.com", DemoPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dir.ValidateCredentials(tt.email, tt.password)
			assert.ErrorIs(t, err, models.ErrInvalidCredentials)
		})
	}
}

func TestValidateCredentials_MissingFields(t *testing.T) {
	dir := demoDirectory(t)

	_, err := dir.ValidateCredentials("", "")
	ve, ok := models.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"email", "password"}, ve.Fields)

	_, err = dir.ValidateCredentials(DemoEmail, "")
	ve, ok = models.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"password"}, ve.Fields)
}

func TestDirectoryUser(t *testing.T) {
	dir := demoDirectory(t)

	user, err := dir.User(1)
	require.NoError(t, err)
	assert.Equal(t, DemoEmail, user.Email)
	require.NotNil(t, user.Address)
	assert.Equal(t, "10001", user.Address.Zip)

	_, err = dir.User(2)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStore_LoginPersists(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	dir := demoDirectory(t)

	s, err := NewStore(ctx, kv, dir, nil)
	require.NoError(t, err)
	assert.False(t, s.IsAuthenticated())

	user, err := dir.User(1)
	require.NoError(t, err)
	require.NoError(t, s.Login(ctx, user))
	assert.True(t, s.IsAuthenticated())

	flag, _, _ := kv.Get(ctx, storage.KeyLoggedIn)
	id, _, _ := kv.Get(ctx, storage.KeyUserID)
	assert.Equal(t, "true", flag)
	assert.Equal(t, "1", id)

	restored, err := NewStore(ctx, kv, dir, nil)
	require.NoError(t, err)
	current, ok := restored.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, 1, current.ID)
}

func TestStore_Logout(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	dir := demoDirectory(t)

	s, err := NewStore(ctx, kv, dir, nil)
	require.NoError(t, err)
	user, _ := dir.User(1)
	require.NoError(t, s.Login(ctx, user))
	require.NoError(t, s.Logout(ctx))

	assert.False(t, s.IsAuthenticated())
	_, ok, _ := kv.Get(ctx, storage.KeyLoggedIn)
	assert.False(t, ok)
	_, ok, _ = kv.Get(ctx, storage.KeyUserID)
	assert.False(t, ok)
}

func TestNewStore_IgnoresBadMarkers(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
	}{
		{"flag not true", map[string]string{storage.KeyLoggedIn: "yes", storage.KeyUserID: "1"}},
		{"missing id", map[string]string{storage.KeyLoggedIn: "true"}},
		{"malformed id", map[string]string{storage.KeyLoggedIn: "true", storage.KeyUserID: "one"}},
		{"unknown id", map[string]string{storage.KeyLoggedIn: "true", storage.KeyUserID: "42"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := storage.NewMemoryKV()
			for k, v := range tt.values {
				require.NoError(t, kv.Set(ctx, k, v))
			}
			s, err := NewStore(ctx, kv, demoDirectory(t), nil)
			require.NoError(t, err)
			assert.False(t, s.IsAuthenticated())
		})
	}
}

type failingKV struct{ storage.KV }

func (failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("unavailable")
}

func TestNewStore_StorageError(t *testing.T) {
	_, err := NewStore(context.Background(), failingKV{}, demoDirectory(t), nil)
	assert.Error(t, err)
}

type brokenKeyKV struct {
	*storage.MemoryKV
	key string
}

func (kv brokenKeyKV) Set(ctx context.Context, key, value string) error {
	if key == kv.key {
		return errors.New("disk full")
	}
	return kv.MemoryKV.Set(ctx, key, value)
}

func (kv brokenKeyKV) Delete(ctx context.Context, key string) error {
	if key == kv.key {
		return errors.New("disk full")
	}
	return kv.MemoryKV.Delete(ctx, key)
}

func TestStore_LoginRollsBackFlag(t *testing.T) {
	ctx := context.Background()
	kv := brokenKeyKV{MemoryKV: storage.NewMemoryKV(), key: storage.KeyUserID}
	dir := demoDirectory(t)

	s, err := NewStore(ctx, kv, dir, nil)
	require.NoError(t, err)
	user, _ := dir.User(1)

	assert.Error(t, s.Login(ctx, user))
	assert.False(t, s.IsAuthenticated())
	_, ok, _ := kv.Get(ctx, storage.KeyLoggedIn)
	assert.False(t, ok)
}

func TestStore_LogoutWithStaleUserID(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryKV()
	dir := demoDirectory(t)

	s, err := NewStore(ctx, mem, dir, nil)
	require.NoError(t, err)
	user, _ := dir.User(1)
	require.NoError(t, s.Login(ctx, user))

	s.kv = brokenKeyKV{MemoryKV: mem, key: storage.KeyUserID}
	require.NoError(t, s.Logout(ctx))
	assert.False(t, s.IsAuthenticated())

	restored, err := NewStore(ctx, mem, dir, nil)
	require.NoError(t, err)
	assert.False(t, restored.IsAuthenticated())
}

func TestStore_LogoutFlagFailure(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryKV()
	dir := demoDirectory(t)

	s, err := NewStore(ctx, mem, dir, nil)
	require.NoError(t, err)
	user, _ := dir.User(1)
	require.NoError(t, s.Login(ctx, user))

	s.kv = brokenKeyKV{MemoryKV: mem, key: storage.KeyLoggedIn}
	assert.Error(t, s.Logout(ctx))
	assert.True(t, s.IsAuthenticated())

	restored, err := NewStore(ctx, mem, dir, nil)
	require.NoError(t, err)
	assert.True(t, restored.IsAuthenticated())
}

func TestAuthenticator(t *testing.T) {
	ctx := context.Background()
	dir := demoDirectory(t)
	s, err := NewStore(ctx, storage.NewMemoryKV(), dir, nil)
	require.NoError(t, err)

	var slept []time.Duration
	a := NewAuthenticator(s, dir, DefaultLoginDelay)
	a.sleep = func(d time.Duration) { slept = append(slept, d) }

	_, err = a.Authenticate(ctx, "", "")
	_, isValidation := models.AsValidationError(err)
	assert.True(t, isValidation)
	assert.Empty(t, slept, "blank input fails before the delay")

	_, err = a.Authenticate(ctx, DemoEmail, "nope")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	assert.False(t, s.IsAuthenticated())

	user, err := a.Authenticate(ctx, DemoEmail, DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, []time.Duration{DefaultLoginDelay, DefaultLoginDelay}, slept)
}
