package escala

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/louvorapp/api/internal/aviso"
)

type stubRepo struct {
	escalas []Escala
	obtida  Escala
	err     error
	criada  *Escala
}

func (s *stubRepo) Listar(_ context.Context) ([]Escala, error) { return s.escalas, s.err }
func (s *stubRepo) Obter(_ context.Context, _ uuid.UUID) (Escala, error) {
	return s.obtida, s.err
}
func (s *stubRepo) Criar(_ context.Context, e Escala) error {
	s.criada = &e
	return s.err
}
func (s *stubRepo) Atualizar(_ context.Context, _ Escala) error { return s.err }
func (s *stubRepo) Excluir(_ context.Context, _ uuid.UUID) error {
	return s.err
}

func newTestRouter(repo *stubRepo) (http.Handler, *aviso.Central) {
	central := aviso.NewCentralComDuracao(time.Minute)
	h := NewHandler(NewService(repo), central)

	r := chi.NewRouter()
	r.Get("/escalas", h.Listar)
	r.Get("/escalas/{id}", h.Obter)
	r.Post("/escalas", h.Criar)
	r.Put("/escalas/{id}", h.Atualizar)
	r.Delete("/escalas/{id}", h.Excluir)
	return r, central
}

func TestSepararNomes(t *testing.T) {
	cases := []struct {
		entrada string
		want    []string
	}{
		{"", nil},
		{"Ana", []string{"Ana"}},
		{"Ana, Bruno", []string{"Ana", "Bruno"}},
		{" Ana ,Bruno ", []string{"Ana", "Bruno"}},
		{"Ana,,Bruno", []string{"Ana", "", "Bruno"}},
	}

	for _, tc := range cases {
		if got := SepararNomes(tc.entrada); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("SepararNomes(%q) = %#v, want %#v", tc.entrada, got, tc.want)
		}
	}
}

func TestCriar_RoundTripDoFormulario(t *testing.T) {
	repo := &stubRepo{}
	router, central := newTestRouter(repo)
	defer central.Encerrar()

	payload := `{"data":"2026-09-06","vocal":"Ana, Bruno","guitarra":"Carlos","teclado":"","bateria":"Davi"}`
	req := httptest.NewRequest(http.MethodPost, "/escalas", strings.NewReader(payload))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", res.Code)
	}
	if repo.criada == nil {
		t.Fatal("expected escala persisted")
	}
	if !reflect.DeepEqual(repo.criada.Vocal, []string{"Ana", "Bruno"}) {
		t.Fatalf("vocal mal separado: %#v", repo.criada.Vocal)
	}
	if repo.criada.Teclado != nil {
		t.Fatalf("teclado vazio deveria ficar nil, got %#v", repo.criada.Teclado)
	}

	form := ParaFormulario(*repo.criada)
	if form.Vocal != "Ana, Bruno" {
		t.Fatalf("round-trip do vocal falhou: %q", form.Vocal)
	}
	if form.Guitarra != "Carlos" || form.Bateria != "Davi" {
		t.Fatalf("round-trip dos slots falhou: %+v", form)
	}
}

func TestCriar_ExigeDataEVocal(t *testing.T) {
	repo := &stubRepo{}
	router, central := newTestRouter(repo)
	defer central.Encerrar()

	for _, payload := range []string{
		`{"data":"","vocal":"Ana"}`,
		`{"data":"2026-09-06","vocal":"  "}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/escalas", strings.NewReader(payload))
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		if res.Code != http.StatusBadRequest {
			t.Fatalf("payload %s: expected 400, got %d", payload, res.Code)
		}

		var body struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if body.Error.Message != "preencha a data e o vocal" {
			t.Fatalf("unexpected message: %q", body.Error.Message)
		}
	}
	if repo.criada != nil {
		t.Fatal("repo should not be called on validation failure")
	}
}

func TestListar_OrdenaPorData(t *testing.T) {
	repo := &stubRepo{escalas: []Escala{
		{ID: uuid.New(), Data: "2026-09-20"},
		{ID: uuid.New(), Data: "2026-09-06"},
		{ID: uuid.New(), Data: "2026-09-13"},
	}}
	router, central := newTestRouter(repo)
	defer central.Encerrar()

	req := httptest.NewRequest(http.MethodGet, "/escalas", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var body struct {
		Data struct {
			Escalas []Escala `json:"escalas"`
		} `json:"data"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	got := body.Data.Escalas
	if len(got) != 3 || got[0].Data != "2026-09-06" || got[2].Data != "2026-09-20" {
		t.Fatalf("escalas fora de ordem: %+v", got)
	}
}

func TestObter_DevolveFormulario(t *testing.T) {
	id := uuid.New()
	repo := &stubRepo{obtida: Escala{
		ID:    id,
		Data:  "2026-09-06",
		Vocal: []string{"Ana", "", "Bruno"},
	}}
	router, central := newTestRouter(repo)
	defer central.Encerrar()

	req := httptest.NewRequest(http.MethodGet, "/escalas/"+id.String(), nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var body struct {
		Data struct {
			Formulario Formulario `json:"formulario"`
		} `json:"data"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if body.Data.Formulario.Vocal != "Ana, , Bruno" {
		t.Fatalf("entradas vazias perdidas no formulário: %q", body.Data.Formulario.Vocal)
	}
}
