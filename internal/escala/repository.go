package escala

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNaoEncontrada indica escala inexistente.
var ErrNaoEncontrada = errors.New("escala não encontrada")

const dbTimeout = 3 * time.Second

// Escala designa os nomes de cada slot para a data do culto.
type Escala struct {
	ID       uuid.UUID `json:"id"`
	Data     string    `json:"data"`
	Vocal    []string  `json:"vocal"`
	Guitarra []string  `json:"guitarra"`
	Teclado  []string  `json:"teclado"`
	Bateria  []string  `json:"bateria"`
	CriadoEm time.Time `json:"criadoEm"`
}

// Repository fornece acesso às escalas.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Listar(ctx context.Context) ([]Escala, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, to_char(data, 'YYYY-MM-DD'), vocal, guitarra, teclado, bateria, criado_em
		FROM escalas
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var escalas []Escala
	for rows.Next() {
		var e Escala
		if err := rows.Scan(&e.ID, &e.Data, &e.Vocal, &e.Guitarra, &e.Teclado, &e.Bateria, &e.CriadoEm); err != nil {
			return nil, err
		}
		escalas = append(escalas, e)
	}

	return escalas, rows.Err()
}

func (r *Repository) Obter(ctx context.Context, id uuid.UUID) (Escala, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var e Escala
	err := r.db.QueryRow(ctx, `
		SELECT id, to_char(data, 'YYYY-MM-DD'), vocal, guitarra, teclado, bateria, criado_em
		FROM escalas
		WHERE id = $1
	`, id).Scan(&e.ID, &e.Data, &e.Vocal, &e.Guitarra, &e.Teclado, &e.Bateria, &e.CriadoEm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Escala{}, ErrNaoEncontrada
		}
		return Escala{}, err
	}
	return e, nil
}

func (r *Repository) Criar(ctx context.Context, e Escala) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO escalas (id, data, vocal, guitarra, teclado, bateria, criado_em)
		VALUES ($1, $2::date, $3, $4, $5, $6, $7)
	`, e.ID, e.Data, nomesOuVazio(e.Vocal), nomesOuVazio(e.Guitarra), nomesOuVazio(e.Teclado), nomesOuVazio(e.Bateria), e.CriadoEm)
	return err
}

func (r *Repository) Atualizar(ctx context.Context, e Escala) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE escalas
		SET data = $2::date, vocal = $3, guitarra = $4, teclado = $5, bateria = $6
		WHERE id = $1
	`, e.ID, e.Data, nomesOuVazio(e.Vocal), nomesOuVazio(e.Guitarra), nomesOuVazio(e.Teclado), nomesOuVazio(e.Bateria))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNaoEncontrada
	}
	return nil
}

// nomesOuVazio garante '{}' nas colunas em vez de NULL.
func nomesOuVazio(nomes []string) []string {
	if nomes == nil {
		return []string{}
	}
	return nomes
}

func (r *Repository) Excluir(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM escalas WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNaoEncontrada
	}
	return nil
}
