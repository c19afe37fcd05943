package repertorio

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

// stubRepo guarda um único repertório em memória e reproduz a
// semântica de remoção idempotente do repositório real.
type stubRepo struct {
	rep Repertorio
	err error
}

func (s *stubRepo) Listar(_ context.Context) ([]Repertorio, error) {
	return []Repertorio{s.rep}, s.err
}
func (s *stubRepo) Obter(_ context.Context, _ uuid.UUID) (Repertorio, error) {
	return s.rep, s.err
}
func (s *stubRepo) Criar(_ context.Context, rep Repertorio) error {
	s.rep = rep
	return s.err
}
func (s *stubRepo) Atualizar(_ context.Context, rep Repertorio) error {
	s.rep = rep
	return s.err
}
func (s *stubRepo) Excluir(_ context.Context, _ uuid.UUID) error { return s.err }
func (s *stubRepo) AdicionarMusica(_ context.Context, _ uuid.UUID, m Musica) error {
	s.rep.Musicas = append(s.rep.Musicas, m)
	return s.err
}
func (s *stubRepo) AtualizarMusica(_ context.Context, _ uuid.UUID, m Musica) error {
	for i := range s.rep.Musicas {
		if s.rep.Musicas[i].ID == m.ID {
			s.rep.Musicas[i] = m
			return s.err
		}
	}
	return ErrMusicaNaoEncontrada
}
func (s *stubRepo) RemoverMusica(_ context.Context, _ uuid.UUID, musicaID string) error {
	restantes := s.rep.Musicas[:0]
	for _, m := range s.rep.Musicas {
		if m.ID != musicaID {
			restantes = append(restantes, m)
		}
	}
	s.rep.Musicas = restantes
	return s.err
}

func newTestRouter(repo *stubRepo) (http.Handler, *aviso.Central) {
	central := aviso.NewCentralComDuracao(time.Minute)
	h := NewHandler(NewService(repo), central)

	r := chi.NewRouter()
	r.Get("/repertorios", h.Listar)
	r.Get("/repertorios/{id}", h.Obter)
	r.Post("/repertorios", h.Criar)
	r.Put("/repertorios/{id}", h.Atualizar)
	r.Delete("/repertorios/{id}", h.Excluir)
	r.Post("/repertorios/{id}/musicas", h.AdicionarMusica)
	r.Put("/repertorios/{id}/musicas/{musicaID}", h.AtualizarMusica)
	r.Delete("/repertorios/{id}/musicas/{musicaID}", h.RemoverMusica)
	return r, central
}

func TestAdicionarMusica_GeraIDEstavel(t *testing.T) {
	id := uuid.New()
	repo := &stubRepo{rep: Repertorio{ID: id, DataCulto: "2026-09-06"}}
	router, central := newTestRouter(repo)
	defer central.Encerrar()

	payload := `{"nome":"Grande És Tu","tomOriginal":"G","tomAdaptado":"A"}`
	req := httptest.NewRequest(http.MethodPost, "/repertorios/"+id.String()+"/musicas", strings.NewReader(payload))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", res.Code)
	}

	var body struct {
		Data struct {
			Musica Musica `json:"musica"`
		} `json:"data"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if body.Data.Musica.ID == "" {
		t.Fatal("expected generated música id")
	}
	if _, err := uuid.Parse(body.Data.Musica.ID); err != nil {
		t.Fatalf("música id is not a uuid: %q", body.Data.Musica.ID)
	}
	if len(repo.rep.Musicas) != 1 || repo.rep.Musicas[0].ID != body.Data.Musica.ID {
		t.Fatalf("música not persisted with same id: %+v", repo.rep.Musicas)
	}
}

func TestAdicionarMusica_NomeObrigatorio(t *testing.T) {
	id := uuid.New()
	repo := &stubRepo{rep: Repertorio{ID: id}}
	router, central := newTestRouter(repo)
	defer central.Encerrar()

	req := httptest.NewRequest(http.MethodPost, "/repertorios/"+id.String()+"/musicas", strings.NewReader(`{"nome":"  "}`))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}

	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if body.Error.Message != "nome da música é obrigatório" {
		t.Fatalf("unexpected message: %q", body.Error.Message)
	}
}

func TestRemoverMusica_DuplaRemocaoSemErro(t *testing.T) {
	id := uuid.New()
	musicaID := uuid.NewString()
	repo := &stubRepo{rep: Repertorio{
		ID:      id,
		Musicas: []Musica{{ID: musicaID, Nome: "Oceanos"}, {ID: uuid.NewString(), Nome: "Lugar Secreto"}},
	}}
	router, central := newTestRouter(repo)
	defer central.Encerrar()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodDelete, "/repertorios/"+id.String()+"/musicas/"+musicaID, nil)
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		if res.Code != http.StatusOK {
			t.Fatalf("remoção %d: expected 200, got %d", i+1, res.Code)
		}
	}

	if len(repo.rep.Musicas) != 1 {
		t.Fatalf("expected 1 música remaining, got %d", len(repo.rep.Musicas))
	}
	if repo.rep.Musicas[0].Nome != "Lugar Secreto" {
		t.Fatalf("wrong música removed: %+v", repo.rep.Musicas)
	}
}

func TestAtualizarMusica_IDInexistente(t *testing.T) {
	id := uuid.New()
	repo := &stubRepo{rep: Repertorio{ID: id, Musicas: []Musica{{ID: uuid.NewString(), Nome: "Oceanos"}}}}
	router, central := newTestRouter(repo)
	defer central.Encerrar()

	req := httptest.NewRequest(http.MethodPut, "/repertorios/"+id.String()+"/musicas/"+uuid.NewString(), strings.NewReader(`{"nome":"Outra"}`))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestListar_OrdenaPorDataDoCulto(t *testing.T) {
	central := aviso.NewCentralComDuracao(time.Minute)
	defer central.Encerrar()

	svc := NewService(&stubRepoLista{repertorios: []Repertorio{
		{ID: uuid.New(), DataCulto: "2026-09-20"},
		{ID: uuid.New(), DataCulto: "2026-09-06"},
	}})

	repertorios, err := svc.Listar(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repertorios[0].DataCulto != "2026-09-06" {
		t.Fatalf("repertórios fora de ordem: %+v", repertorios)
	}
}

type stubRepoLista struct {
	stubRepo
	repertorios []Repertorio
}

func (s *stubRepoLista) Listar(_ context.Context) ([]Repertorio, error) {
	return s.repertorios, nil
}
