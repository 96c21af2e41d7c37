package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/monster-math/backend/internal/models"
)

// fakeUserStore is an in-memory Store so handler tests run without a
// database.
type fakeUserStore struct {
	users  map[string]models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]models.User{}}
}

// seed adds a user directly, bypassing the handler. Returns the ID.
func (f *fakeUserStore) seed(t *testing.T, username, password string) int64 {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	u, err := f.CreateUser(username, string(hash))
	if err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return u.ID
}

func (f *fakeUserStore) CreateUser(username, hashedPassword string) (models.User, error) {
	if _, ok := f.users[username]; ok {
		return models.User{}, ErrUsernameTaken
	}
	f.nextID++
	now := time.Now()
	u := models.User{
		ID:        f.nextID,
		Username:  username,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.users[username] = u

	u.Password = ""
	return u, nil
}

func (f *fakeUserStore) GetUserByUsername(username string) (models.User, error) {
	u, ok := f.users[username]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetUserByID(id int64) (models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			u.Password = ""
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func postJSON(t *testing.T, handlerFn http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handlerFn(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	return resp.Error
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	h := NewHandler(newFakeUserStore())

	rec := postJSON(t, h.Register, "/api/v1/auth/register", `{"username": "alice", "password": "secret"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}

	var resp models.AuthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Token == "" {
		t.Error("response missing token")
	}
	if resp.User.Username != "alice" || resp.User.ID == 0 {
		t.Errorf("user = %+v, want alice with assigned ID", resp.User)
	}

	// Registering logs the user straight in.
	c := sessionCookie(rec)
	if c == nil {
		t.Fatal("session cookie not set")
	}
	if c.Value != resp.Token || !c.HttpOnly {
		t.Errorf("cookie value=%q httpOnly=%v, want token and HttpOnly", c.Value, c.HttpOnly)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	store := newFakeUserStore()
	store.seed(t, "alice", "secret")
	h := NewHandler(store)

	rec := postJSON(t, h.Register, "/api/v1/auth/register", `{"username": "alice", "password": "other"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if got := decodeError(t, rec); got != "Username already exists" {
		t.Errorf("error = %q, want %q", got, "Username already exists")
	}
	if sessionCookie(rec) != nil {
		t.Error("session cookie set on rejected registration")
	}
}

func TestRegisterValidation(t *testing.T) {
	h := NewHandler(newFakeUserStore())

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"malformed json", `{"username": `, "Invalid request body"},
		{"missing username", `{"password": "secret"}`, "Username and password are required"},
		{"missing password", `{"username": "alice"}`, "Username and password are required"},
		{"whitespace username", `{"username": "   ", "password": "secret"}`, "Username and password are required"},
		{"short password", `{"username": "alice", "password": "abc"}`, "Password must be at least 4 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.Register, "/api/v1/auth/register", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			if got := decodeError(t, rec); got != tt.wantErr {
				t.Errorf("error = %q, want %q", got, tt.wantErr)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	store := newFakeUserStore()
	store.seed(t, "alice", "secret")
	h := NewHandler(store)

	rec := postJSON(t, h.Login, "/api/v1/auth/login", `{"username": "alice", "password": "secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp models.AuthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Token == "" {
		t.Error("response missing token")
	}
	if resp.User.Username != "alice" {
		t.Errorf("username = %q, want %q", resp.User.Username, "alice")
	}
	if sessionCookie(rec) == nil {
		t.Error("session cookie not set")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeUserStore()
	store.seed(t, "alice", "secret")
	h := NewHandler(store)

	rec := postJSON(t, h.Login, "/api/v1/auth/login", `{"username": "alice", "password": "wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if got := decodeError(t, rec); got != "Invalid username or password" {
		t.Errorf("error = %q, want %q", got, "Invalid username or password")
	}
	// A failed login must not establish a session.
	if sessionCookie(rec) != nil {
		t.Error("session cookie set on failed login")
	}
}

func TestLoginUnknownUser(t *testing.T) {
	h := NewHandler(newFakeUserStore())

	rec := postJSON(t, h.Login, "/api/v1/auth/login", `{"username": "nobody", "password": "secret"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if got := decodeError(t, rec); got != "Invalid username or password" {
		t.Errorf("error = %q, want %q", got, "Invalid username or password")
	}
	if sessionCookie(rec) != nil {
		t.Error("session cookie set on failed login")
	}
}

func TestLoginValidation(t *testing.T) {
	h := NewHandler(newFakeUserStore())

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"username": `},
		{"missing username", `{"password": "secret"}`},
		{"missing password", `{"username": "alice"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.Login, "/api/v1/auth/login", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	h := NewHandler(newFakeUserStore())

	rec := postJSON(t, h.Logout, "/api/v1/auth/logout", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp map[string]bool
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp["success"] {
		t.Error("response missing success=true")
	}

	c := sessionCookie(rec)
	if c == nil {
		t.Fatal("clearing cookie not sent")
	}
	if c.Value != "" || c.MaxAge >= 0 {
		t.Errorf("cookie not cleared: value=%q maxAge=%d", c.Value, c.MaxAge)
	}
}

func TestSessionStatusAuthenticated(t *testing.T) {
	store := newFakeUserStore()
	userID := store.seed(t, "alice", "secret")
	h := NewHandler(store)

	token, err := generateToken(userID)
	if err != nil {
		t.Fatalf("generateToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	rec := httptest.NewRecorder()
	h.SessionStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp models.SessionStatusResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.Authenticated {
		t.Error("valid session reported as unauthenticated")
	}
	if resp.Username != "alice" {
		t.Errorf("username = %q, want %q", resp.Username, "alice")
	}
}

func TestSessionStatusAnonymous(t *testing.T) {
	h := NewHandler(newFakeUserStore())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil)
	rec := httptest.NewRecorder()
	h.SessionStatus(rec, req)

	// Anonymous callers get a 200, never a 401.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp models.SessionStatusResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Authenticated {
		t.Error("anonymous request reported as authenticated")
	}
	if resp.Username != "" {
		t.Errorf("username = %q, want empty", resp.Username)
	}
}

func TestSessionStatusInvalidToken(t *testing.T) {
	h := NewHandler(newFakeUserStore())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	h.SessionStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp models.SessionStatusResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Authenticated {
		t.Error("invalid token reported as authenticated")
	}
}

func TestSessionStatusDeletedUser(t *testing.T) {
	h := NewHandler(newFakeUserStore())

	// Token is valid but no such user exists anymore.
	token, err := generateToken(99)
	if err != nil {
		t.Fatalf("generateToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.SessionStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp models.SessionStatusResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Authenticated {
		t.Error("token for missing user reported as authenticated")
	}
}
