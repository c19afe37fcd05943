package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/louvorapp/api/internal/service"
)

func requestComPapel(papel string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/escalas", nil)
	ctx := context.WithValue(req.Context(), ContextKeyPapel, papel)
	return req.WithContext(ctx)
}

func TestPermissao_NegaPapelForaDaMatriz(t *testing.T) {
	chamado := false
	handler := Permissao(service.RecursoEscalas, service.AcaoCriar)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chamado = true
	}))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, requestComPapel(service.PapelMusico))

	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.Code)
	}
	if chamado {
		t.Fatal("handler must not run when papel is denied")
	}
}

func TestPermissao_PermitePapelDaMatriz(t *testing.T) {
	chamado := false
	handler := Permissao(service.RecursoEscalas, service.AcaoCriar)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chamado = true
		w.WriteHeader(http.StatusNoContent)
	}))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, requestComPapel(service.PapelLider))

	if res.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.Code)
	}
	if !chamado {
		t.Fatal("handler should run for papel permitido")
	}
}

func TestPermissao_NegaSemPapel(t *testing.T) {
	handler := Permissao(service.RecursoAvisos, service.AcaoLer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without papel")
	}))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, requestComPapel(""))

	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.Code)
	}
}
