package usuario

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/louvorapp/api/internal/auth"
	"github.com/louvorapp/api/internal/repo"
)

type repositorio interface {
	CriarComPapel(ctx context.Context, u repo.Usuario, papel string) error
}

// Service cadastra novos integrantes do ministério.
type Service struct {
	repo repositorio
}

func NewService(r repositorio) *Service {
	return &Service{repo: r}
}

// Registrar cria a identidade com a senha informada e atribui o papel.
func (s *Service) Registrar(ctx context.Context, email, senha, papel string) (uuid.UUID, error) {
	hash, err := auth.Hash(senha)
	if err != nil {
		return uuid.Nil, err
	}

	u := repo.Usuario{
		ID:        uuid.New(),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		SenhaHash: hash,
		Ativo:     true,
		CriadoEm:  time.Now().UTC(),
	}

	if err := s.repo.CriarComPapel(ctx, u, papel); err != nil {
		return uuid.Nil, err
	}
	return u.ID, nil
}
