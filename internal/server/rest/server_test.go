package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokebox/pokebox/internal/common"
	"github.com/pokebox/pokebox/internal/logging"
	"github.com/pokebox/pokebox/internal/server/auth"
	"github.com/pokebox/pokebox/internal/server/models"
	"github.com/pokebox/pokebox/internal/server/ratelimit"
)

const testSecret = "test-secret"

// --- stubs ---

type stubUserService struct {
	registerOut *models.User
	registerErr error

	loginToken string
	loginErr   error
}

func (s *stubUserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	if s.registerOut != nil {
		return s.registerOut, nil
	}
	return &models.User{ID: "user-1", Email: email}, nil
}

func (s *stubUserService) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginToken, s.loginErr
}

type stubPokemonService struct {
	catchOut *models.CaughtPokemon
	catchErr error

	listOut []*models.CaughtPokemon
	listErr error

	releaseErr error

	gotUserID   string
	gotName     string
	gotRecordID string
}

func (s *stubPokemonService) Catch(ctx context.Context, userID, name string) (*models.CaughtPokemon, error) {
	s.gotUserID, s.gotName = userID, name
	if s.catchErr != nil {
		return nil, s.catchErr
	}
	if s.catchOut != nil {
		return s.catchOut, nil
	}
	return &models.CaughtPokemon{ID: "rec-1", UserID: userID, PokemonID: "poke-1",
		Pokemon: &models.Pokemon{ID: "poke-1", Name: name}}, nil
}

func (s *stubPokemonService) List(ctx context.Context, userID string) ([]*models.CaughtPokemon, error) {
	s.gotUserID = userID
	return s.listOut, s.listErr
}

func (s *stubPokemonService) Release(ctx context.Context, userID, recordID string) error {
	s.gotUserID, s.gotRecordID = userID, recordID
	return s.releaseErr
}

type stubCatalog struct {
	data json.RawMessage
	err  error
}

func (s *stubCatalog) Lookup(ctx context.Context, name string) (json.RawMessage, error) {
	return s.data, s.err
}

// --- helpers ---

func newTestServer(us UserService, ps PokemonService, catalog CatalogClient, limiter *ratelimit.Limiter) *Server {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if limiter == nil {
		limiter = ratelimit.NewLimiter(1000, time.Minute, nil)
	}
	return NewServer(":0", logger, us, ps, catalog, limiter, testSecret)
}

func doJSON(t *testing.T, s *Server, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func bodyMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var out struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out.Message
}

func testToken(t *testing.T, userID string) string {
	t.Helper()
	tok, err := auth.GenerateToken(userID, []byte(testSecret), time.Minute)
	require.NoError(t, err)
	return tok
}

// --- registration and login ---

func TestRegister_OK(t *testing.T) {
	s := newTestServer(&stubUserService{}, &stubPokemonService{}, &stubCatalog{}, nil)

	w := doJSON(t, s, http.MethodPost, "/register", `{"email":"a@x.com","password":"p1"}`, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@x.com is created successfully", bodyMessage(t, w))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newTestServer(&stubUserService{registerErr: common.ErrorAlreadyExists}, &stubPokemonService{}, &stubCatalog{}, nil)

	w := doJSON(t, s, http.MethodPost, "/register", `{"email":"a@x.com","password":"p1"}`, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "This email already exists", bodyMessage(t, w))
}

func TestRegister_InternalError(t *testing.T) {
	s := newTestServer(&stubUserService{registerErr: common.ErrorInternal}, &stubPokemonService{}, &stubCatalog{}, nil)

	w := doJSON(t, s, http.MethodPost, "/register", `{"email":"a@x.com","password":"p1"}`, "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "There is an internal server error", bodyMessage(t, w))
}

func TestRegister_MalformedBody(t *testing.T) {
	s := newTestServer(&stubUserService{}, &stubPokemonService{}, &stubCatalog{}, nil)

	w := doJSON(t, s, http.MethodPost, "/register", `{not json`, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_OK(t *testing.T) {
	s := newTestServer(&stubUserService{loginToken: "tok-123"}, &stubPokemonService{}, &stubCatalog{}, nil)

	w := doJSON(t, s, http.MethodPost, "/login", `{"email":"a@x.com","password":"p1"}`, "")

	assert.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "Login successful", out.Message)
	assert.Equal(t, "tok-123", out.Token)
}

func TestLogin_UnknownEmail(t *testing.T) {
	s := newTestServer(&stubUserService{loginErr: common.ErrorNotFound}, &stubPokemonService{}, &stubCatalog{}, nil)

	w := doJSON(t, s, http.MethodPost, "/login", `{"email":"x@x.com","password":"p1"}`, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", bodyMessage(t, w))
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newTestServer(&stubUserService{loginErr: common.ErrorUnauthorized}, &stubPokemonService{}, &stubCatalog{}, nil)

	w := doJSON(t, s, http.MethodPost, "/login", `{"email":"a@x.com","password":"nope"}`, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", bodyMessage(t, w))
}

// --- catalog lookup ---

func TestLookup_OK(t *testing.T) {
	payload := json.RawMessage(`{"name":"pikachu","id":25}`)
	s := newTestServer(&stubUserService{}, &stubPokemonService{}, &stubCatalog{data: payload}, nil)

	w := doJSON(t, s, http.MethodGet, "/pokemon/pikachu", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"name":"pikachu","id":25}}`, w.Body.String())
}

func TestLookup_Miss(t *testing.T) {
	s := newTestServer(&stubUserService{}, &stubPokemonService{}, &stubCatalog{err: common.ErrorNotFound}, nil)

	w := doJSON(t, s, http.MethodGet, "/pokemon/notapokemon", "", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Your Pokémon was not found!", bodyMessage(t, w))
}

func TestLookup_UpstreamFailure(t *testing.T) {
	s := newTestServer(&stubUserService{}, &stubPokemonService{}, &stubCatalog{err: common.ErrorInternal}, nil)

	w := doJSON(t, s, http.MethodGet, "/pokemon/pikachu", "", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "An error occurred while fetching the Pokémon data", bodyMessage(t, w))
}

// --- protected routes ---

func TestProtected_MissingToken(t *testing.T) {
	s := newTestServer(&stubUserService{}, &stubPokemonService{}, &stubCatalog{}, nil)

	w := doJSON(t, s, http.MethodGet, "/protected/pokemon/caught", "", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "You are unauthorized", bodyMessage(t, w))
}

func TestProtected_InvalidToken(t *testing.T) {
	s := newTestServer(&stubUserService{}, &stubPokemonService{}, &stubCatalog{}, nil)

	w := doJSON(t, s, http.MethodGet, "/protected/pokemon/caught", "", "garbage")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtected_ExpiredToken(t *testing.T) {
	s := newTestServer(&stubUserService{}, &stubPokemonService{}, &stubCatalog{}, nil)

	tok, err := auth.GenerateToken("u1", []byte(testSecret), -time.Second)
	require.NoError(t, err)

	w := doJSON(t, s, http.MethodGet, "/protected/pokemon/caught", "", tok)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCatch_OK(t *testing.T) {
	ps := &stubPokemonService{}
	s := newTestServer(&stubUserService{}, ps, &stubCatalog{}, nil)

	w := doJSON(t, s, http.MethodPost, "/protected/pokemon/catch", `{"name":"pikachu"}`, testToken(t, "user-42"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Pokemon caught", bodyMessage(t, w))
	assert.Equal(t, "user-42", ps.gotUserID, "record must be attributed to the token's subject")
	assert.Equal(t, "pikachu", ps.gotName)
}

func TestCatch_MissingName(t *testing.T) {
	ps := &stubPokemonService{catchErr: common.ErrorValidation}
	s := newTestServer(&stubUserService{}, ps, &stubCatalog{}, nil)

	w := doJSON(t, s, http.MethodPost, "/protected/pokemon/catch", `{}`, testToken(t, "user-42"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Pokemon name is required", bodyMessage(t, w))
}

func TestRelease_OK(t *testing.T) {
	ps := &stubPokemonService{}
	s := newTestServer(&stubUserService{}, ps, &stubCatalog{}, nil)

	w := doJSON(t, s, http.MethodDelete, "/protected/pokemon/delete/rec-1", "", testToken(t, "user-42"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Pokemon is released", bodyMessage(t, w))
	assert.Equal(t, "rec-1", ps.gotRecordID)
	assert.Equal(t, "user-42", ps.gotUserID)
}

func TestRelease_ForeignOrMissingRecord(t *testing.T) {
	ps := &stubPokemonService{releaseErr: common.ErrorNotFound}
	s := newTestServer(&stubUserService{}, ps, &stubCatalog{}, nil)

	w := doJSON(t, s, http.MethodDelete, "/protected/pokemon/delete/rec-1", "", testToken(t, "other-user"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Pokemon not found or not owned by user", bodyMessage(t, w))
}

func TestCaughtList_Empty(t *testing.T) {
	s := newTestServer(&stubUserService{}, &stubPokemonService{}, &stubCatalog{}, nil)

	w := doJSON(t, s, http.MethodGet, "/protected/pokemon/caught", "", testToken(t, "user-42"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Your Pokémon not found.", bodyMessage(t, w))
}

func TestCaughtList_WithRecords(t *testing.T) {
	ps := &stubPokemonService{listOut: []*models.CaughtPokemon{
		{ID: "rec-1", UserID: "user-42", PokemonID: "poke-1", Pokemon: &models.Pokemon{ID: "poke-1", Name: "pikachu"}},
	}}
	s := newTestServer(&stubUserService{}, ps, &stubCatalog{}, nil)

	w := doJSON(t, s, http.MethodGet, "/protected/pokemon/caught", "", testToken(t, "user-42"))

	assert.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Data []struct {
			ID      string `json:"id"`
			Pokemon struct {
				Name string `json:"name"`
			} `json:"pokemon"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Data, 1)
	assert.Equal(t, "rec-1", out.Data[0].ID)
	assert.Equal(t, "pikachu", out.Data[0].Pokemon.Name)
}
