package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	httpmiddleware "github.com/louvorapp/api/internal/http/middleware"
	"github.com/louvorapp/api/internal/service"
)

func menuPara(t *testing.T, papel string) []ItemMenu {
	t.Helper()

	h := &Handler{}
	req := httptest.NewRequest(http.MethodGet, "/menu", nil)
	ctx := context.WithValue(req.Context(), httpmiddleware.ContextKeyPapel, papel)
	res := httptest.NewRecorder()
	h.Menu(res, req.WithContext(ctx))

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var body struct {
		Data struct {
			Itens []ItemMenu `json:"itens"`
		} `json:"data"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return body.Data.Itens
}

func contemRota(itens []ItemMenu, rota string) bool {
	for _, item := range itens {
		if item.Rota == rota {
			return true
		}
	}
	return false
}

func TestMenu_LiderVeCadastro(t *testing.T) {
	itens := menuPara(t, service.PapelLider)

	for _, rota := range []string{"/dashboard", "/ensaios/lista", "/escalas/lista", "/repertorios/lista", "/cadastro", "/sair"} {
		if !contemRota(itens, rota) {
			t.Fatalf("expected rota %s for lider, got %+v", rota, itens)
		}
	}
}

func TestMenu_MusicoNaoVeCadastro(t *testing.T) {
	itens := menuPara(t, service.PapelMusico)

	if contemRota(itens, "/cadastro") {
		t.Fatalf("musico must not see /cadastro: %+v", itens)
	}
	if !contemRota(itens, "/escalas/lista") {
		t.Fatalf("expected /escalas/lista for musico: %+v", itens)
	}
}

func TestMenu_SemPapelApenasSair(t *testing.T) {
	itens := menuPara(t, "")

	if len(itens) != 1 || itens[0].Rota != "/sair" {
		t.Fatalf("expected only /sair for papel ausente, got %+v", itens)
	}
}
