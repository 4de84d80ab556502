package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"planning-bot/internal/config"
	"planning-bot/internal/models"
	"planning-bot/internal/planning"
	"planning-bot/internal/state"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenLocalBackend(t *testing.T) {
	ctx := context.Background()
	cfg := &config.BotConfig{
		BackendMode:  config.BackendLocal,
		DatabaseURL:  "file::memory:",
		WeekStartsOn: time.Monday,
	}

	backend, closeFn, err := OpenBackend(ctx, cfg)
	require.NoError(t, err)
	defer closeFn()

	services := NewServices(backend, cfg, &config.Settings{})

	est, err := services.Establishments.Create(ctx, "Le Bistrot", "Paris")
	require.NoError(t, err)

	user := models.User{Email: "anna@example.com", FullName: "Anna", EstablishmentID: est.ID}
	require.NoError(t, services.Users.Invite(ctx, &user))

	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	_, err = services.Shifts.Create(ctx, planning.WorkDraft{
		UserID: user.ID,
		Start:  monday.Add(9 * time.Hour),
		End:    monday.Add(17 * time.Hour),
	})
	require.NoError(t, err)

	grid, err := services.Planning.Week(ctx, est.ID, monday.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Len(t, grid.Rows, 1)
	assert.Equal(t, "8.0", grid.Rows[0].Stats.HoursLabel())
}

func TestOpenAPIBackendLogsIn(t *testing.T) {
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"tok","token_type":"bearer"}`))
		case "/establishments":
			authHeader = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cfg := &config.BotConfig{
		BackendMode: config.BackendAPI,
		APIBaseURL:  srv.URL,
		APIEmail:    "boss@example.com",
		APIPassword: "secret",
		APITimeout:  time.Second,
	}

	backend, closeFn, err := OpenBackend(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()

	_, err = backend.Establishments.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", authHeader)
}

func TestOpenBackendUnknownMode(t *testing.T) {
	_, _, err := OpenBackend(context.Background(), &config.BotConfig{BackendMode: "ftp"})
	assert.Error(t, err)
}

func TestOpenStateStore(t *testing.T) {
	ctx := context.Background()

	store, closeFn, err := OpenStateStore(ctx, &config.BotConfig{})
	require.NoError(t, err)
	assert.IsType(t, &state.MemoryStore{}, store)
	require.NoError(t, closeFn())

	mr := miniredis.RunT(t)
	store, closeFn, err = OpenStateStore(ctx, &config.BotConfig{RedisAddr: mr.Addr(), StateTTL: time.Hour})
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &state.RedisStore{}, store)

	require.NoError(t, store.Save(ctx, 42, state.ChatState{EstablishmentID: 3}))
	st, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, uint(3), st.EstablishmentID)

	addr := mr.Addr()
	mr.Close()
	_, _, err = OpenStateStore(ctx, &config.BotConfig{RedisAddr: addr})
	assert.Error(t, err)
}
