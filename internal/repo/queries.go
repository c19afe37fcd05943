package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 3 * time.Second

// Queries fornece acesso às tabelas de identidade e sessão.
type Queries struct {
	db *pgxpool.Pool
}

// New cria o repositório sobre o pool informado.
func New(db *pgxpool.Pool) *Queries {
	return &Queries{db: db}
}

// GetUsuarioByEmail busca usuário pelo e-mail normalizado.
func (q *Queries) GetUsuarioByEmail(ctx context.Context, email string) (Usuario, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var u Usuario
	err := q.db.QueryRow(ctx, `
		SELECT id, email, senha_hash, ativo, criado_em
		FROM usuarios
		WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.SenhaHash, &u.Ativo, &u.CriadoEm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Usuario{}, ErrNotFound
		}
		return Usuario{}, err
	}
	return u, nil
}

// GetUsuarioByID busca usuário pelo id.
func (q *Queries) GetUsuarioByID(ctx context.Context, id uuid.UUID) (Usuario, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var u Usuario
	err := q.db.QueryRow(ctx, `
		SELECT id, email, senha_hash, ativo, criado_em
		FROM usuarios
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.SenhaHash, &u.Ativo, &u.CriadoEm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Usuario{}, ErrNotFound
		}
		return Usuario{}, err
	}
	return u, nil
}

// GetPapelByUsuario faz a consulta pontual do papel pela identidade.
func (q *Queries) GetPapelByUsuario(ctx context.Context, usuarioID uuid.UUID) (PapelUsuario, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var p PapelUsuario
	err := q.db.QueryRow(ctx, `
		SELECT usuario_id, email, papel, criado_em
		FROM papeis
		WHERE usuario_id = $1
	`, usuarioID).Scan(&p.UsuarioID, &p.Email, &p.Papel, &p.CriadoEm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PapelUsuario{}, ErrNotFound
		}
		return PapelUsuario{}, err
	}
	return p, nil
}

// InsertRefreshTokenParams agrupa campos do insert de refresh.
type InsertRefreshTokenParams struct {
	ID        uuid.UUID
	Subject   uuid.UUID
	TokenHash string
	Expiracao time.Time
	CriadoEm  time.Time
}

// InsertRefreshToken grava novo refresh token.
func (q *Queries) InsertRefreshToken(ctx context.Context, arg InsertRefreshTokenParams) (TokenRefresh, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var t TokenRefresh
	err := q.db.QueryRow(ctx, `
		INSERT INTO tokens_refresh (id, subject, token_hash, expiracao, criado_em, revogado)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		RETURNING id, subject, token_hash, expiracao, criado_em, revogado
	`, arg.ID, arg.Subject, arg.TokenHash, arg.Expiracao, arg.CriadoEm).
		Scan(&t.ID, &t.Subject, &t.TokenHash, &t.Expiracao, &t.CriadoEm, &t.Revogado)
	return t, err
}

// GetRefreshTokenByHash busca refresh token pelo hash.
func (q *Queries) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (TokenRefresh, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var t TokenRefresh
	err := q.db.QueryRow(ctx, `
		SELECT id, subject, token_hash, expiracao, criado_em, revogado
		FROM tokens_refresh
		WHERE token_hash = $1
	`, tokenHash).Scan(&t.ID, &t.Subject, &t.TokenHash, &t.Expiracao, &t.CriadoEm, &t.Revogado)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TokenRefresh{}, ErrNotFound
		}
		return TokenRefresh{}, err
	}
	return t, nil
}

// RevokeRefreshToken marca o token como revogado.
func (q *Queries) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := q.db.Exec(ctx, `
		UPDATE tokens_refresh SET revogado = TRUE WHERE token_hash = $1
	`, tokenHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// InvalidateOtherRefreshTokens revoga todos os refresh do subject, exceto o atual.
func (q *Queries) InvalidateOtherRefreshTokens(ctx context.Context, subject uuid.UUID, keepHash string) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err := q.db.Exec(ctx, `
		UPDATE tokens_refresh
		SET revogado = TRUE
		WHERE subject = $1 AND token_hash <> $2 AND NOT revogado
	`, subject, keepHash)
	return err
}

// IsUniqueViolation identifica violação de unicidade do Postgres.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
