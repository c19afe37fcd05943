package repertorio

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/louvorapp/api/internal/db"
)

var (
	// ErrNaoEncontrado indica repertório inexistente.
	ErrNaoEncontrado = errors.New("repertório não encontrado")
	// ErrMusicaNaoEncontrada indica música inexistente dentro do repertório.
	ErrMusicaNaoEncontrada = errors.New("música não encontrada")
)

const dbTimeout = 3 * time.Second

// Musica é um item do repertório. O ID é gerado na inclusão e
// permanece estável entre edições e remoções.
type Musica struct {
	ID          string `json:"id"`
	Nome        string `json:"nome"`
	Youtube     string `json:"youtube,omitempty"`
	Cifra       string `json:"cifra,omitempty"`
	TomOriginal string `json:"tomOriginal,omitempty"`
	TomAdaptado string `json:"tomAdaptado,omitempty"`
}

// Repertorio agrupa as músicas de um culto.
type Repertorio struct {
	ID        uuid.UUID `json:"id"`
	DataCulto string    `json:"dataCulto"`
	Musicas   []Musica  `json:"musicas"`
	CriadoEm  time.Time `json:"criadoEm"`
}

// Repository fornece acesso aos repertórios.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

func (r *Repository) Listar(ctx context.Context) ([]Repertorio, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, to_char(data_culto, 'YYYY-MM-DD'), musicas, criado_em
		FROM repertorios
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var repertorios []Repertorio
	for rows.Next() {
		rep, err := scanRepertorio(rows)
		if err != nil {
			return nil, err
		}
		repertorios = append(repertorios, rep)
	}

	return repertorios, rows.Err()
}

func (r *Repository) Obter(ctx context.Context, id uuid.UUID) (Repertorio, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		SELECT id, to_char(data_culto, 'YYYY-MM-DD'), musicas, criado_em
		FROM repertorios
		WHERE id = $1
	`, id)

	rep, err := scanRepertorio(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Repertorio{}, ErrNaoEncontrado
		}
		return Repertorio{}, err
	}
	return rep, nil
}

func (r *Repository) Criar(ctx context.Context, rep Repertorio) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	musicas, err := json.Marshal(musicasOuVazio(rep.Musicas))
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO repertorios (id, data_culto, musicas, criado_em)
		VALUES ($1, $2::date, $3, $4)
	`, rep.ID, rep.DataCulto, musicas, rep.CriadoEm)
	return err
}

func (r *Repository) Atualizar(ctx context.Context, rep Repertorio) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	musicas, err := json.Marshal(musicasOuVazio(rep.Musicas))
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE repertorios
		SET data_culto = $2::date, musicas = $3
		WHERE id = $1
	`, rep.ID, rep.DataCulto, musicas)
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

	tag, err := r.db.Exec(ctx, `DELETE FROM repertorios WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNaoEncontrado
	}
	return nil
}

// AdicionarMusica anexa a música ao final da lista.
func (r *Repository) AdicionarMusica(ctx context.Context, id uuid.UUID, m Musica) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	item, err := json.Marshal(m)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE repertorios
		SET musicas = musicas || $2::jsonb
		WHERE id = $1
	`, id, item)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNaoEncontrado
	}
	return nil
}

// AtualizarMusica substitui a música de mesmo id dentro da lista.
// A troca acontece sob FOR UPDATE para não perder edições concorrentes.
func (r *Repository) AtualizarMusica(ctx context.Context, id uuid.UUID, m Musica) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return db.WithTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		musicas, err := lockMusicas(ctx, tx, id)
		if err != nil {
			return err
		}

		trocou := false
		for i := range musicas {
			if musicas[i].ID == m.ID {
				musicas[i] = m
				trocou = true
				break
			}
		}
		if !trocou {
			return ErrMusicaNaoEncontrada
		}

		return salvarMusicas(ctx, tx, id, musicas)
	})
}

// RemoverMusica descarta a música de mesmo id. Remover um id ausente
// não é erro, a lista simplesmente permanece como está.
func (r *Repository) RemoverMusica(ctx context.Context, id uuid.UUID, musicaID string) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return db.WithTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		musicas, err := lockMusicas(ctx, tx, id)
		if err != nil {
			return err
		}

		restantes := musicas[:0]
		for _, m := range musicas {
			if m.ID != musicaID {
				restantes = append(restantes, m)
			}
		}
		if len(restantes) == len(musicas) {
			return nil
		}

		return salvarMusicas(ctx, tx, id, restantes)
	})
}

func lockMusicas(ctx context.Context, tx pgx.Tx, id uuid.UUID) ([]Musica, error) {
	var raw []byte
	err := tx.QueryRow(ctx, `
		SELECT musicas FROM repertorios WHERE id = $1 FOR UPDATE
	`, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}

	var musicas []Musica
	if err := json.Unmarshal(raw, &musicas); err != nil {
		return nil, err
	}
	return musicas, nil
}

func salvarMusicas(ctx context.Context, tx pgx.Tx, id uuid.UUID, musicas []Musica) error {
	raw, err := json.Marshal(musicasOuVazio(musicas))
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `UPDATE repertorios SET musicas = $2 WHERE id = $1`, id, raw)
	return err
}

// musicasOuVazio garante '[]' no jsonb em vez de 'null'.
func musicasOuVazio(musicas []Musica) []Musica {
	if musicas == nil {
		return []Musica{}
	}
	return musicas
}

func scanRepertorio(row pgx.Row) (Repertorio, error) {
	var (
		rep Repertorio
		raw []byte
	)
	if err := row.Scan(&rep.ID, &rep.DataCulto, &raw, &rep.CriadoEm); err != nil {
		return Repertorio{}, err
	}
	if err := json.Unmarshal(raw, &rep.Musicas); err != nil {
		return Repertorio{}, err
	}
	return rep, nil
}
