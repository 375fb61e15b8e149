// internal/app/features/authapi/handler_test.go
package authapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/vslopes/doahub/internal/app/system/auth"
	"github.com/vslopes/doahub/internal/testutil"
)

func newTestRouter(t *testing.T) (*chi.Mux, *auth.Manager) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	tokens, err := auth.NewManager("test-secret", zap.NewNop())
	if err != nil {
		t.Fatalf("auth.NewManager: %v", err)
	}
	h := NewHandler(db, tokens, zap.NewNop())

	r := chi.NewRouter()
	MountRoutes(r, h, tokens)
	return r, tokens
}

func postJSON(t *testing.T, r http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeMsg(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestRegisterThenLogin(t *testing.T) {
	r, tokens := newTestRouter(t)

	rec := postJSON(t, r, "/auth/register", `{"usuario": "admin", "senha": "s3gura"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if msg := decodeMsg(t, rec)["msg"]; msg != "Usuário criado com sucesso" {
		t.Errorf("register msg = %q", msg)
	}

	rec = postJSON(t, r, "/auth/login", `{"usuario": "admin", "senha": "s3gura"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}
	resp := decodeMsg(t, rec)
	if resp["msg"] != "Autenticação realizada com sucesso" {
		t.Errorf("login msg = %q", resp["msg"])
	}
	if resp["token"] == "" {
		t.Fatal("login answered without a token")
	}
	if _, err := tokens.Verify(resp["token"]); err != nil {
		t.Errorf("issued token does not verify: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"missing senha", `{"usuario": "alguem"}`, "Usuário e senha são obrigatórios"},
		{"missing usuario", `{"senha": "abc"}`, "Usuário e senha são obrigatórios"},
		{"bad json", `{nope`, "JSON inválido"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, r, "/auth/register", tt.body)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422", rec.Code)
			}
			if msg := decodeMsg(t, rec)["msg"]; msg != tt.wantMsg {
				t.Errorf("msg = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r, _ := newTestRouter(t)

	if rec := postJSON(t, r, "/auth/register", `{"usuario": "dup", "senha": "a"}`); rec.Code != http.StatusCreated {
		t.Fatalf("first register status = %d", rec.Code)
	}
	rec := postJSON(t, r, "/auth/register", `{"usuario": "dup", "senha": "b"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("second register status = %d, want 422", rec.Code)
	}
	if msg := decodeMsg(t, rec)["msg"]; msg != "Este usuário já existe, por favor insira outro usuário" {
		t.Errorf("msg = %q", msg)
	}
}

func TestLoginFailures(t *testing.T) {
	r, _ := newTestRouter(t)

	if rec := postJSON(t, r, "/auth/register", `{"usuario": "maria", "senha": "certa"}`); rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d", rec.Code)
	}

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"unknown user", `{"usuario": "ninguem", "senha": "x"}`, http.StatusNotFound, "Usuário não encontrado"},
		{"wrong password", `{"usuario": "maria", "senha": "errada"}`, http.StatusForbidden, "Senha inválida"},
		{"missing fields", `{"usuario": "maria"}`, http.StatusUnprocessableEntity, "Usuário e senha são obrigatórios"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, r, "/auth/login", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if msg := decodeMsg(t, rec)["msg"]; msg != tt.wantMsg {
				t.Errorf("msg = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestGetUserRequiresToken(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/user/"+primitive.NewObjectID().Hex(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestGetUser(t *testing.T) {
	r, tokens := newTestRouter(t)

	if rec := postJSON(t, r, "/auth/register", `{"usuario": "joao", "senha": "segredo"}`); rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d", rec.Code)
	}
	rec := postJSON(t, r, "/auth/login", `{"usuario": "joao", "senha": "segredo"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d", rec.Code)
	}
	token := decodeMsg(t, rec)["token"]
	userID, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/user/"+userID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec2 := httptest.NewRecorder()
	r.ServeHTTP(rec2, req)

	if rec2.Code != http.StatusOK {
		t.Fatalf("get user status = %d, body = %s", rec2.Code, rec2.Body.String())
	}

	var resp struct {
		User struct {
			ID      string `json:"_id"`
			Usuario string `json:"usuario"`
			Senha   string `json:"senha"`
		} `json:"user"`
	}
	if err := json.NewDecoder(rec2.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User.Usuario != "joao" {
		t.Errorf("usuario = %q", resp.User.Usuario)
	}
	if resp.User.Senha != "" {
		t.Error("response leaked the password hash")
	}
}

func TestGetUserUnknownID(t *testing.T) {
	r, tokens := newTestRouter(t)

	token, err := tokens.Issue(primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	for _, id := range []string{primitive.NewObjectID().Hex(), "malformado"} {
		req := httptest.NewRequest(http.MethodGet, "/user/"+id, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("get user %q status = %d, want 404", id, rec.Code)
		}
		if msg := decodeMsg(t, rec)["msg"]; msg != "Usuário Não encontrado" {
			t.Errorf("msg = %q", msg)
		}
	}
}
