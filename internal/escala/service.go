package escala

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

type repositorio interface {
	Listar(ctx context.Context) ([]Escala, error)
	Obter(ctx context.Context, id uuid.UUID) (Escala, error)
	Criar(ctx context.Context, e Escala) error
	Atualizar(ctx context.Context, e Escala) error
	Excluir(ctx context.Context, id uuid.UUID) error
}

// Service concentra as regras das escalas.
type Service struct {
	repo repositorio
}

func NewService(r repositorio) *Service {
	return &Service{repo: r}
}

// Entrada traz os slots como digitados no formulário, separados por vírgula.
type Entrada struct {
	Data     string `json:"data"`
	Vocal    string `json:"vocal"`
	Guitarra string `json:"guitarra"`
	Teclado  string `json:"teclado"`
	Bateria  string `json:"bateria"`
}

// Formulario devolve a escala no formato de edição.
type Formulario struct {
	Data     string `json:"data"`
	Vocal    string `json:"vocal"`
	Guitarra string `json:"guitarra"`
	Teclado  string `json:"teclado"`
	Bateria  string `json:"bateria"`
}

// Listar devolve as escalas ordenadas por data crescente.
func (s *Service) Listar(ctx context.Context) ([]Escala, error) {
	escalas, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(escalas, func(i, j int) bool {
		return escalas[i].Data < escalas[j].Data
	})
	return escalas, nil
}

func (s *Service) Obter(ctx context.Context, id uuid.UUID) (Escala, error) {
	return s.repo.Obter(ctx, id)
}

func (s *Service) Criar(ctx context.Context, in Entrada) (Escala, error) {
	e := escalaDe(in)
	e.ID = uuid.New()
	e.CriadoEm = time.Now().UTC()

	if err := s.repo.Criar(ctx, e); err != nil {
		return Escala{}, err
	}
	return e, nil
}

func (s *Service) Atualizar(ctx context.Context, id uuid.UUID, in Entrada) (Escala, error) {
	atual, err := s.repo.Obter(ctx, id)
	if err != nil {
		return Escala{}, err
	}

	nova := escalaDe(in)
	nova.ID = atual.ID
	nova.CriadoEm = atual.CriadoEm

	if err := s.repo.Atualizar(ctx, nova); err != nil {
		return Escala{}, err
	}
	return nova, nil
}

func (s *Service) Excluir(ctx context.Context, id uuid.UUID) error {
	return s.repo.Excluir(ctx, id)
}

// ParaFormulario refaz os campos de edição a partir das listas salvas.
func ParaFormulario(e Escala) Formulario {
	return Formulario{
		Data:     e.Data,
		Vocal:    JuntarNomes(e.Vocal),
		Guitarra: JuntarNomes(e.Guitarra),
		Teclado:  JuntarNomes(e.Teclado),
		Bateria:  JuntarNomes(e.Bateria),
	}
}

func escalaDe(in Entrada) Escala {
	return Escala{
		Data:     in.Data,
		Vocal:    SepararNomes(in.Vocal),
		Guitarra: SepararNomes(in.Guitarra),
		Teclado:  SepararNomes(in.Teclado),
		Bateria:  SepararNomes(in.Bateria),
	}
}
