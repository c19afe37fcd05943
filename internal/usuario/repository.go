package usuario

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/louvorapp/api/internal/db"
	"github.com/louvorapp/api/internal/repo"
)

const dbTimeout = 3 * time.Second

// Repository grava identidades e papéis do ministério.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// CriarComPapel insere a identidade e o papel na mesma transação: o
// papel é criado exatamente uma vez, no cadastro, por um ator autorizado.
func (r *Repository) CriarComPapel(ctx context.Context, u repo.Usuario, papel string) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	err := db.WithTx(ctx, r.db, func(pctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(pctx, `
			INSERT INTO usuarios (id, email, senha_hash, ativo, criado_em)
			VALUES ($1, $2, $3, TRUE, $4)
		`, u.ID, u.Email, u.SenhaHash, u.CriadoEm); err != nil {
			return err
		}

		_, err := tx.Exec(pctx, `
			INSERT INTO papeis (usuario_id, email, papel, criado_em)
			VALUES ($1, $2, $3, $4)
		`, u.ID, u.Email, papel, u.CriadoEm)
		return err
	})
	if err != nil {
		if repo.IsUniqueViolation(err) {
			return repo.ErrEmailEmUso
		}
		return err
	}
	return nil
}
