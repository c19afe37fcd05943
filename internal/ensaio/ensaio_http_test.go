package ensaio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/louvorapp/api/internal/aviso"
)

type stubRepo struct {
	ensaios []Ensaio
	obtido  Ensaio
	err     error
	criado  *Ensaio
}

func (s *stubRepo) Listar(_ context.Context) ([]Ensaio, error) { return s.ensaios, s.err }
func (s *stubRepo) Obter(_ context.Context, _ uuid.UUID) (Ensaio, error) {
	return s.obtido, s.err
}
func (s *stubRepo) Criar(_ context.Context, e Ensaio) error {
	s.criado = &e
	return s.err
}
func (s *stubRepo) Atualizar(_ context.Context, _ Ensaio) error { return s.err }
func (s *stubRepo) Excluir(_ context.Context, _ uuid.UUID) error {
	return s.err
}

func newTestRouter(repo *stubRepo) (http.Handler, *aviso.Central) {
	central := aviso.NewCentralComDuracao(time.Minute)
	h := NewHandler(NewService(repo), central)

	r := chi.NewRouter()
	r.Get("/ensaios", h.Listar)
	r.Get("/ensaios/{id}", h.Obter)
	r.Post("/ensaios", h.Criar)
	r.Put("/ensaios/{id}", h.Atualizar)
	r.Delete("/ensaios/{id}", h.Excluir)
	return r, central
}

func TestListar_OrdenaPorDataEHora(t *testing.T) {
	repo := &stubRepo{ensaios: []Ensaio{
		{ID: uuid.New(), Data: "2026-09-12", Hora: "19:00", Local: "Templo"},
		{ID: uuid.New(), Data: "2026-09-05", Hora: "19:00", Local: "Templo"},
		{ID: uuid.New(), Data: "2026-09-12", Hora: "18:00", Local: "Anexo"},
	}}
	router, central := newTestRouter(repo)
	defer central.Encerrar()

	req := httptest.NewRequest(http.MethodGet, "/ensaios", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var body struct {
		Data struct {
			Ensaios []Ensaio `json:"ensaios"`
		} `json:"data"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	got := body.Data.Ensaios
	if len(got) != 3 {
		t.Fatalf("expected 3 ensaios, got %d", len(got))
	}
	if got[0].Data != "2026-09-05" {
		t.Fatalf("expected 2026-09-05 first, got %s", got[0].Data)
	}
	if got[1].Hora != "18:00" || got[2].Hora != "19:00" {
		t.Fatalf("same-day ensaios out of hour order: %s, %s", got[1].Hora, got[2].Hora)
	}
}

func TestCriar_Valido(t *testing.T) {
	repo := &stubRepo{}
	router, central := newTestRouter(repo)
	defer central.Encerrar()

	payload := `{"data":"2026-09-05","hora":"19:30","local":"Templo","observacoes":" trazer cabos "}`
	req := httptest.NewRequest(http.MethodPost, "/ensaios", strings.NewReader(payload))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", res.Code)
	}
	if repo.criado == nil {
		t.Fatal("expected ensaio persisted")
	}
	if repo.criado.Observacoes == nil || *repo.criado.Observacoes != "trazer cabos" {
		t.Fatalf("observações não aparadas: %v", repo.criado.Observacoes)
	}

	ativos := central.Ativos()
	if len(ativos) != 1 || ativos[0].Tipo != aviso.TipoSucesso {
		t.Fatalf("expected success aviso, got %+v", ativos)
	}
}

func TestCriar_DataInvalida(t *testing.T) {
	repo := &stubRepo{}
	router, central := newTestRouter(repo)
	defer central.Encerrar()

	req := httptest.NewRequest(http.MethodPost, "/ensaios", strings.NewReader(`{"data":"05/09/2026","hora":"19:00","local":"Templo"}`))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	if repo.criado != nil {
		t.Fatal("repo should not be called on validation failure")
	}
}

func TestObter_NaoEncontrado(t *testing.T) {
	repo := &stubRepo{err: ErrNaoEncontrado}
	router, central := newTestRouter(repo)
	defer central.Encerrar()

	req := httptest.NewRequest(http.MethodGet, "/ensaios/"+uuid.NewString(), nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}
