package repertorio

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type repositorio interface {
	Listar(ctx context.Context) ([]Repertorio, error)
	Obter(ctx context.Context, id uuid.UUID) (Repertorio, error)
	Criar(ctx context.Context, rep Repertorio) error
	Atualizar(ctx context.Context, rep Repertorio) error
	Excluir(ctx context.Context, id uuid.UUID) error
	AdicionarMusica(ctx context.Context, id uuid.UUID, m Musica) error
	AtualizarMusica(ctx context.Context, id uuid.UUID, m Musica) error
	RemoverMusica(ctx context.Context, id uuid.UUID, musicaID string) error
}

// Service concentra as regras dos repertórios.
type Service struct {
	repo repositorio
}

func NewService(r repositorio) *Service {
	return &Service{repo: r}
}

// Entrada agrupa os campos editáveis de um repertório.
type Entrada struct {
	DataCulto string `json:"dataCulto"`
}

// EntradaMusica agrupa os campos editáveis de uma música.
type EntradaMusica struct {
	Nome        string `json:"nome"`
	Youtube     string `json:"youtube"`
	Cifra       string `json:"cifra"`
	TomOriginal string `json:"tomOriginal"`
	TomAdaptado string `json:"tomAdaptado"`
}

// Listar devolve os repertórios ordenados pela data do culto crescente.
func (s *Service) Listar(ctx context.Context) ([]Repertorio, error) {
	repertorios, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(repertorios, func(i, j int) bool {
		return repertorios[i].DataCulto < repertorios[j].DataCulto
	})
	return repertorios, nil
}

func (s *Service) Obter(ctx context.Context, id uuid.UUID) (Repertorio, error) {
	return s.repo.Obter(ctx, id)
}

func (s *Service) Criar(ctx context.Context, in Entrada) (Repertorio, error) {
	rep := Repertorio{
		ID:        uuid.New(),
		DataCulto: in.DataCulto,
		Musicas:   []Musica{},
		CriadoEm:  time.Now().UTC(),
	}
	if err := s.repo.Criar(ctx, rep); err != nil {
		return Repertorio{}, err
	}
	return rep, nil
}

func (s *Service) Atualizar(ctx context.Context, id uuid.UUID, in Entrada) (Repertorio, error) {
	atual, err := s.repo.Obter(ctx, id)
	if err != nil {
		return Repertorio{}, err
	}

	atual.DataCulto = in.DataCulto

	if err := s.repo.Atualizar(ctx, atual); err != nil {
		return Repertorio{}, err
	}
	return atual, nil
}

func (s *Service) Excluir(ctx context.Context, id uuid.UUID) error {
	return s.repo.Excluir(ctx, id)
}

// AdicionarMusica gera o id estável da música e a anexa ao repertório.
func (s *Service) AdicionarMusica(ctx context.Context, id uuid.UUID, in EntradaMusica) (Musica, error) {
	m := musicaDe(in)
	m.ID = uuid.NewString()

	if err := s.repo.AdicionarMusica(ctx, id, m); err != nil {
		return Musica{}, err
	}
	return m, nil
}

func (s *Service) AtualizarMusica(ctx context.Context, id uuid.UUID, musicaID string, in EntradaMusica) (Musica, error) {
	m := musicaDe(in)
	m.ID = musicaID

	if err := s.repo.AtualizarMusica(ctx, id, m); err != nil {
		return Musica{}, err
	}
	return m, nil
}

func (s *Service) RemoverMusica(ctx context.Context, id uuid.UUID, musicaID string) error {
	return s.repo.RemoverMusica(ctx, id, musicaID)
}

func musicaDe(in EntradaMusica) Musica {
	return Musica{
		Nome:        strings.TrimSpace(in.Nome),
		Youtube:     strings.TrimSpace(in.Youtube),
		Cifra:       strings.TrimSpace(in.Cifra),
		TomOriginal: strings.TrimSpace(in.TomOriginal),
		TomAdaptado: strings.TrimSpace(in.TomAdaptado),
	}
}
