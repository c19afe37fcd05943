package ensaio

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type repositorio interface {
	Listar(ctx context.Context) ([]Ensaio, error)
	Obter(ctx context.Context, id uuid.UUID) (Ensaio, error)
	Criar(ctx context.Context, e Ensaio) error
	Atualizar(ctx context.Context, e Ensaio) error
	Excluir(ctx context.Context, id uuid.UUID) error
}

// Service concentra as regras dos ensaios.
type Service struct {
	repo repositorio
}

func NewService(r repositorio) *Service {
	return &Service{repo: r}
}

// Entrada agrupa os campos editáveis de um ensaio.
type Entrada struct {
	Data        string `json:"data"`
	Hora        string `json:"hora"`
	Local       string `json:"local"`
	Observacoes string `json:"observacoes"`
}

// Listar devolve os ensaios ordenados por (data, hora) crescente.
func (s *Service) Listar(ctx context.Context) ([]Ensaio, error) {
	ensaios, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(ensaios, func(i, j int) bool {
		if ensaios[i].Data != ensaios[j].Data {
			return ensaios[i].Data < ensaios[j].Data
		}
		return ensaios[i].Hora < ensaios[j].Hora
	})
	return ensaios, nil
}

func (s *Service) Obter(ctx context.Context, id uuid.UUID) (Ensaio, error) {
	return s.repo.Obter(ctx, id)
}

func (s *Service) Criar(ctx context.Context, in Entrada) (Ensaio, error) {
	e := Ensaio{
		ID:          uuid.New(),
		Data:        in.Data,
		Hora:        in.Hora,
		Local:       strings.TrimSpace(in.Local),
		Observacoes: observacoesDe(in.Observacoes),
		CriadoEm:    time.Now().UTC(),
	}
	if err := s.repo.Criar(ctx, e); err != nil {
		return Ensaio{}, err
	}
	return e, nil
}

func (s *Service) Atualizar(ctx context.Context, id uuid.UUID, in Entrada) (Ensaio, error) {
	atual, err := s.repo.Obter(ctx, id)
	if err != nil {
		return Ensaio{}, err
	}

	atual.Data = in.Data
	atual.Hora = in.Hora
	atual.Local = strings.TrimSpace(in.Local)
	atual.Observacoes = observacoesDe(in.Observacoes)

	if err := s.repo.Atualizar(ctx, atual); err != nil {
		return Ensaio{}, err
	}
	return atual, nil
}

func (s *Service) Excluir(ctx context.Context, id uuid.UUID) error {
	return s.repo.Excluir(ctx, id)
}

func observacoesDe(texto string) *string {
	texto = strings.TrimSpace(texto)
	if texto == "" {
		return nil
	}
	return &texto
}
