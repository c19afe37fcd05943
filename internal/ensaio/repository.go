package ensaio

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNaoEncontrado indica ensaio inexistente.
var ErrNaoEncontrado = errors.New("ensaio não encontrado")

const dbTimeout = 3 * time.Second

// Ensaio é um encontro de preparação do ministério.
type Ensaio struct {
	ID          uuid.UUID `json:"id"`
	Data        string    `json:"data"`
	Hora        string    `json:"hora"`
	Local       string    `json:"local"`
	Observacoes *string   `json:"observacoes,omitempty"`
	CriadoEm    time.Time `json:"criadoEm"`
}

// Repository fornece acesso aos ensaios.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Listar(ctx context.Context) ([]Ensaio, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, to_char(data, 'YYYY-MM-DD'), hora, local, observacoes, criado_em
		FROM ensaios
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ensaios []Ensaio
	for rows.Next() {
		var e Ensaio
		if err := rows.Scan(&e.ID, &e.Data, &e.Hora, &e.Local, &e.Observacoes, &e.CriadoEm); err != nil {
			return nil, err
		}
		ensaios = append(ensaios, e)
	}

	return ensaios, rows.Err()
}

func (r *Repository) Obter(ctx context.Context, id uuid.UUID) (Ensaio, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var e Ensaio
	err := r.db.QueryRow(ctx, `
		SELECT id, to_char(data, 'YYYY-MM-DD'), hora, local, observacoes, criado_em
		FROM ensaios
		WHERE id = $1
	`, id).Scan(&e.ID, &e.Data, &e.Hora, &e.Local, &e.Observacoes, &e.CriadoEm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Ensaio{}, ErrNaoEncontrado
		}
		return Ensaio{}, err
	}
	return e, nil
}

func (r *Repository) Criar(ctx context.Context, e Ensaio) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO ensaios (id, data, hora, local, observacoes, criado_em)
		VALUES ($1, $2::date, $3, $4, $5, $6)
	`, e.ID, e.Data, e.Hora, e.Local, e.Observacoes, e.CriadoEm)
	return err
}

func (r *Repository) Atualizar(ctx context.Context, e Ensaio) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE ensaios
		SET data = $2::date, hora = $3, local = $4, observacoes = $5
		WHERE id = $1
	`, e.ID, e.Data, e.Hora, e.Local, e.Observacoes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNaoEncontrado
	}
	return nil
}

func (r *Repository) Excluir(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM ensaios WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNaoEncontrado
	}
	return nil
}
