package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/animecritique/critique/model"
	"github.com/animecritique/critique/network"
	"github.com/animecritique/critique/outcome"
	"github.com/jaswdr/faker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seen struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]any
}

// fakeBackend answers every request with status and body and records what it got.
type fakeBackend struct {
	mu     sync.Mutex
	status int
	body   string
	last   seen
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.last = seen{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query()}
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &f.last.Body)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.status)
	_, _ = io.WriteString(w, f.body)
}

func (f *fakeBackend) reply(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.body = status, body
}

func (f *fakeBackend) request() seen {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

func newTestClient(t *testing.T) (*Client, *fakeBackend) {
	t.Helper()

	fake := &fakeBackend{status: http.StatusOK, body: `{"success": true, "message": ""}`}
	mux := http.NewServeMux()
	mux.Handle("/animecritique/api/", fake)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := New(srv.URL+"/animecritique/api", network.New(network.Options{Name: "test", Timeout: 2 * time.Second}))
	require.NoError(t, err)

	return client, fake
}

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := New("animecritique/api/", nil)
	assert.Error(t, err)

	c, err := New("http://localhost:8888/animecritique/api", http.DefaultClient)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8888/animecritique/api/", c.BaseURL())
}

func TestLogin(t *testing.T) {
	fake := faker.New()
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		client, backend := newTestClient(t)
		username, email := fake.Internet().User(), fake.Internet().Email()
		backend.reply(http.StatusOK, `{"success": true, "message": "Login realizado", "data": {"id_usuario": 3, "usuario": "`+username+`", "email": "`+email+`"}}`)

		o := client.Login(ctx, username, "secret")

		user, ok := o.Get()
		require.True(t, ok)
		assert.Equal(t, 3, user.ID)
		assert.Equal(t, username, user.Username)
		assert.Equal(t, email, user.Email)
		assert.Nil(t, user.Stats)
		assert.Equal(t, "Login realizado", o.Message())

		req := backend.request()
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/animecritique/api/auth/login.php", req.Path)
		assert.Equal(t, map[string]any{"usuario": username, "senha": "secret"}, req.Body)
	})

	t.Run("declined with status 200", func(t *testing.T) {
		client, backend := newTestClient(t)
		backend.reply(http.StatusOK, `{"success": false, "message": "bad creds"}`)

		o := client.Login(ctx, "ana", "wrong")

		assert.Equal(t, outcome.KindDeclined, o.Kind())
		d, ok := o.Decline()
		require.True(t, ok)
		assert.Equal(t, "bad creds", d.Message)
		assert.Equal(t, "bad creds", d.Display())
		_, isOk := o.Get()
		assert.False(t, isOk)
	})

	t.Run("declined with status 401", func(t *testing.T) {
		client, backend := newTestClient(t)
		backend.reply(http.StatusUnauthorized, `{"success": false, "message": "bad creds"}`)

		assert.True(t, client.Login(ctx, "ana", "wrong").IsDeclined())
	})

	t.Run("html error page is a transport failure", func(t *testing.T) {
		client, backend := newTestClient(t)
		backend.reply(http.StatusInternalServerError, `<html>Fatal error</html>`)

		o := client.Login(ctx, "ana", "secret")

		te, ok := o.Transport()
		require.True(t, ok)
		var status *StatusError
		require.True(t, errors.As(te, &status))
		assert.Equal(t, http.StatusInternalServerError, status.Code)
	})

	t.Run("success without data is malformed", func(t *testing.T) {
		client, backend := newTestClient(t)
		backend.reply(http.StatusOK, `{"success": true, "message": "ok"}`)

		o := client.Login(ctx, "ana", "secret")
		assert.True(t, o.IsFailed())
		assert.ErrorIs(t, o.Err(), ErrMissingData)
	})

	t.Run("body without success flag is malformed", func(t *testing.T) {
		client, backend := newTestClient(t)
		backend.reply(http.StatusOK, `{"data": {"id_usuario": 1}}`)

		assert.ErrorIs(t, client.Login(ctx, "ana", "secret").Err(), ErrNotEnvelope)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	client, backend := newTestClient(t)

	t.Run("field errors win over the message", func(t *testing.T) {
		backend.reply(http.StatusBadRequest, `{"success": false, "message": "Dados inválidos", "errors": ["Email já cadastrado", "Senha muito curta"]}`)

		o := client.Register(ctx, model.RegisterRequest{Username: "ana", Email: "a@b.c", Password: "123", Confirmation: "123"})

		d, ok := o.Decline()
		require.True(t, ok)
		assert.Equal(t, "Dados inválidos", d.Message)
		assert.Equal(t, []string{"Email já cadastrado", "Senha muito curta"}, d.Errors)
		assert.Equal(t, "Email já cadastrado\nSenha muito curta", d.Display())
	})

	t.Run("field errors keyed by field", func(t *testing.T) {
		backend.reply(http.StatusOK, `{"success": false, "message": "x", "errors": {"usuario": "Usuário em uso", "email": "Email inválido"}}`)

		d, ok := client.Register(ctx, model.RegisterRequest{}).Decline()
		require.True(t, ok)
		assert.Equal(t, []string{"Email inválido", "Usuário em uso"}, d.Errors)
	})

	t.Run("a single error string is a decline", func(t *testing.T) {
		backend.reply(http.StatusOK, `{"success": false, "message": "Dados inválidos", "errors": "Email já cadastrado"}`)

		d, ok := client.Register(ctx, model.RegisterRequest{}).Decline()
		require.True(t, ok)
		assert.Equal(t, []string{"Email já cadastrado"}, d.Errors)
		assert.Equal(t, "Email já cadastrado", d.Display())
	})

	t.Run("unreadable errors fall back to the message", func(t *testing.T) {
		backend.reply(http.StatusOK, `{"success": false, "message": "Dados inválidos", "errors": 42}`)

		d, ok := client.Register(ctx, model.RegisterRequest{}).Decline()
		require.True(t, ok)
		assert.Empty(t, d.Errors)
		assert.Equal(t, "Dados inválidos", d.Display())
	})

	t.Run("request body names", func(t *testing.T) {
		backend.reply(http.StatusOK, `{"success": true, "message": "", "data": {"id_usuario": "12", "usuario": "ana", "email": "a@b.c"}}`)

		user, ok := client.Register(ctx, model.RegisterRequest{Username: "ana", Email: "a@b.c", Password: "secret", Confirmation: "secret"}).Get()
		require.True(t, ok)
		assert.Equal(t, 12, user.ID)

		assert.Equal(t, map[string]any{
			"usuario":         "ana",
			"email":           "a@b.c",
			"senha":           "secret",
			"confirmar_senha": "secret",
		}, backend.request().Body)
	})
}

func TestListReviews(t *testing.T) {
	ctx := context.Background()
	client, backend := newTestClient(t)

	t.Run("query carries only set filters and the default limit", func(t *testing.T) {
		backend.reply(http.StatusOK, `{"success": true, "message": null, "data": [
			{"ID_review": 7, "ID_usuario": 3, "ID_anime": 42, "Nota": 4.0, "Texto_review": "ok", "Data_criacao": "2024-01-01", "MAL_ID": 5114}
		]}`)

		reviews, ok := client.ListReviews(ctx, ReviewFilter{AnimeID: model.Some(42)}).Get()
		require.True(t, ok)
		require.Len(t, reviews, 1)
		assert.Equal(t, 7, reviews[0].ID)
		assert.Equal(t, 5114, *reviews[0].MalID)

		req := backend.request()
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "/animecritique/api/reviews/manage.php", req.Path)
		assert.Equal(t, url.Values{"id_anime": {"42"}, "limit": {"100"}}, req.Query)
	})

	t.Run("explicit limit and user", func(t *testing.T) {
		backend.reply(http.StatusOK, `{"success": true, "data": []}`)

		client.ListReviews(ctx, ReviewFilter{UserID: model.Some(3), Limit: 5})
		assert.Equal(t, url.Values{"id_usuario": {"3"}, "limit": {"5"}}, backend.request().Query)
	})

	t.Run("no match is an empty list", func(t *testing.T) {
		for _, body := range []string{
			`{"success": true, "message": "Nenhuma review", "data": []}`,
			`{"success": true, "message": "Nenhuma review"}`,
			`{"success": true, "message": "Nenhuma review", "data": null}`,
		} {
			backend.reply(http.StatusOK, body)
			reviews, ok := client.ListReviews(ctx, ReviewFilter{}).Get()
			assert.True(t, ok, body)
			assert.Empty(t, reviews, body)
		}
	})

	t.Run("a wrongly typed list is a transport failure", func(t *testing.T) {
		backend.reply(http.StatusOK, `{"success": true, "data": {"ID_review": 1}}`)
		assert.True(t, client.ListReviews(ctx, ReviewFilter{}).IsFailed())
	})
}

func TestReviewMutations(t *testing.T) {
	fake := faker.New()
	ctx := context.Background()
	client, backend := newTestClient(t)

	t.Run("create", func(t *testing.T) {
		text := fake.Lorem().Sentence(8)
		backend.reply(http.StatusCreated, `{"success": true, "message": "Review criada", "data": {"ID_review": 9, "ID_usuario": 3, "ID_anime": 42, "Nota": 5, "Texto_review": "x", "Data_criacao": "2024-01-01"}}`)

		review, ok := client.CreateReview(ctx, model.CreateReviewRequest{UserID: 3, MalID: 5114, Rating: 5, Text: text}).Get()
		require.True(t, ok)
		assert.Equal(t, 9, review.ID)

		req := backend.request()
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, map[string]any{"id_usuario": 3.0, "mal_id": 5114.0, "nota": 5.0, "texto_review": text}, req.Body)
	})

	t.Run("out of range rating is sent and the decline surfaced", func(t *testing.T) {
		backend.reply(http.StatusBadRequest, `{"success": false, "message": "Nota deve estar entre 0 e 5"}`)

		o := client.CreateReview(ctx, model.CreateReviewRequest{UserID: 3, MalID: 1, Rating: 9, Text: "x"})
		assert.True(t, o.IsDeclined())
		assert.Equal(t, 9.0, backend.request().Body["nota"])
	})

	t.Run("update sends only changed fields", func(t *testing.T) {
		backend.reply(http.StatusOK, `{"success": true, "data": {"ID_review": 9, "ID_usuario": 3, "ID_anime": 42, "Nota": 3, "Texto_review": "x", "Data_criacao": "2024-01-01", "Data_atualizacao": "2024-02-01"}}`)

		review, ok := client.UpdateReview(ctx, model.UpdateReviewRequest{ReviewID: 9, UserID: 3, Rating: model.Some(3.0)}).Get()
		require.True(t, ok)
		assert.Equal(t, "2024-02-01", *review.UpdatedAt)

		req := backend.request()
		assert.Equal(t, http.MethodPut, req.Method)
		assert.Equal(t, map[string]any{"id_review": 9.0, "id_usuario": 3.0, "nota": 3.0}, req.Body)
	})

	t.Run("delete carries a body", func(t *testing.T) {
		backend.reply(http.StatusOK, `{"success": true, "message": "Review deletada"}`)

		o := client.DeleteReview(ctx, 9, 3)
		assert.True(t, o.IsOk())
		assert.Equal(t, "Review deletada", o.Message())

		req := backend.request()
		assert.Equal(t, http.MethodDelete, req.Method)
		assert.Equal(t, "/animecritique/api/reviews/manage.php", req.Path)
		assert.Equal(t, map[string]any{"id_review": 9.0, "id_usuario": 3.0}, req.Body)
	})

	t.Run("deleting a review of another user is a decline", func(t *testing.T) {
		backend.reply(http.StatusForbidden, `{"success": false, "message": "Review não encontrada ou sem permissão"}`)

		o := client.DeleteReview(ctx, 9, 4)
		assert.True(t, o.IsDeclined())
		assert.False(t, o.IsOk())
		assert.False(t, o.IsFailed())
	})
}

func TestLibrary(t *testing.T) {
	ctx := context.Background()
	client, backend := newTestClient(t)

	t.Run("favorites", func(t *testing.T) {
		backend.reply(http.StatusOK, `{"success": true, "data": [{"id_favorito": 1, "id_usuario": 3, "id_anime": 42, "data_criacao": "d"}]}`)
		favorites, ok := client.ListFavorites(ctx, 3).Get()
		require.True(t, ok)
		assert.Equal(t, []model.Favorite{{ID: 1, UserID: 3, AnimeID: 42, CreatedAt: "d"}}, favorites)
		assert.Equal(t, "/animecritique/api/favorites/list.php", backend.request().Path)
		assert.Equal(t, url.Values{"id_usuario": {"3"}}, backend.request().Query)

		backend.reply(http.StatusOK, `{"success": true, "data": {"id_favorito": 2, "id_usuario": 3, "id_anime": 43, "data_criacao": "d"}}`)
		favorite, ok := client.AddFavorite(ctx, 3, 43).Get()
		require.True(t, ok)
		assert.Equal(t, 2, favorite.ID)
		assert.Equal(t, map[string]any{"id_usuario": 3.0, "id_anime": 43.0}, backend.request().Body)

		backend.reply(http.StatusOK, `{"success": true, "message": "removido"}`)
		assert.True(t, client.RemoveFavorite(ctx, 3, 43).IsOk())
		req := backend.request()
		assert.Equal(t, http.MethodDelete, req.Method)
		assert.Equal(t, url.Values{"id_usuario": {"3"}, "id_anime": {"43"}}, req.Query)
		assert.Nil(t, req.Body)
	})

	t.Run("watchlist", func(t *testing.T) {
		backend.reply(http.StatusOK, `{"success": true, "data": {"id_lista": 5, "id_usuario": 3, "id_anime": 42, "status": "completo", "data_criacao": "d"}}`)
		entry, ok := client.AddToWatchlist(ctx, 3, 42, "").Get()
		require.True(t, ok)
		assert.Equal(t, 5, entry.ID)
		assert.Equal(t, map[string]any{"id_usuario": 3.0, "id_anime": 42.0, "status": "completo"}, backend.request().Body)

		backend.reply(http.StatusOK, `{"success": true}`)
		entries, ok := client.ListWatchlist(ctx, 3).Get()
		require.True(t, ok)
		assert.Empty(t, entries)

		backend.reply(http.StatusNotFound, `{"success": false, "message": "não está na lista"}`)
		assert.True(t, client.RemoveFromWatchlist(ctx, 3, 42).IsDeclined())
		assert.Equal(t, "/animecritique/api/watchlist/remove.php", backend.request().Path)
	})
}

func TestAnimeListings(t *testing.T) {
	ctx := context.Background()
	client, backend := newTestClient(t)

	backend.reply(http.StatusOK, `{"success": true, "data": [{"mal_id": 1, "title": "Cowboy Bebop", "images": {"jpg": {"image_url": "u"}}}], "pagination": {"last_visible_page": 3, "has_next_page": true}}`)

	page, ok := client.PopularAnimes(ctx, 0).Get()
	require.True(t, ok)
	require.Len(t, page.Data, 1)
	assert.True(t, page.HasNext())
	assert.Equal(t, url.Values{"popular": {"true"}, "page": {"1"}}, backend.request().Query)

	client.TopAnimes(ctx, 2)
	assert.Equal(t, url.Values{"top": {"true"}, "page": {"2"}}, backend.request().Query)

	client.SearchAnimes(ctx, "  bebop ", 1)
	assert.Equal(t, "/animecritique/api/animes/search.php", backend.request().Path)
	assert.Equal(t, url.Values{"q": {"bebop"}, "page": {"1"}}, backend.request().Query)

	backend.reply(http.StatusOK, `{"success": true, "data": []}`)
	page, ok = client.SearchAnimes(ctx, "nothing", 1).Get()
	require.True(t, ok)
	assert.Nil(t, page.Pagination)
	assert.False(t, page.HasNext())

	backend.reply(http.StatusOK, `{"success": false, "message": "Erro na busca"}`)
	assert.True(t, client.SearchAnimes(ctx, "x", 1).IsDeclined())
}

func TestTransportFailures(t *testing.T) {
	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		base := srv.URL
		srv.Close()

		client, err := New(base, network.New(network.Options{Name: "test", Timeout: time.Second}))
		require.NoError(t, err)

		o := client.Login(context.Background(), "ana", "secret")
		assert.True(t, o.IsFailed())
		assert.False(t, o.IsDeclined())
	})

	t.Run("cancelled context", func(t *testing.T) {
		client, _ := newTestClient(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		o := client.ListReviews(ctx, ReviewFilter{})
		assert.True(t, o.IsFailed())
		assert.ErrorIs(t, o.Err(), context.Canceled)
	})
}
