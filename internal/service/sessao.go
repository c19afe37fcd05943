package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/louvorapp/api/internal/repo"
)

type papelRepository interface {
	GetPapelByUsuario(ctx context.Context, usuarioID uuid.UUID) (repo.PapelUsuario, error)
}

// SessaoService resolve a identidade autenticada para o papel vigente.
// É o único componente que consulta a tabela de papéis para fins de
// autorização; o restante do sistema lê o resultado da sessão.
type SessaoService struct {
	papeis papelRepository
}

// NewSessaoService cria o serviço de sessão.
func NewSessaoService(papeis papelRepository) *SessaoService {
	return &SessaoService{papeis: papeis}
}

// ResolverPapel retorna o papel do usuário, ou vazio quando ausente.
// Identidade sem papel é estado terminal válido (não há retry nem erro).
// Falha de consulta é registrada e tratada como papel ausente; a guarda
// nega o acesso, mas a requisição nunca falha por causa da resolução.
func (s *SessaoService) ResolverPapel(ctx context.Context, usuarioID uuid.UUID) string {
	p, err := s.papeis.GetPapelByUsuario(ctx, usuarioID)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			log.Error().Err(err).Str("usuario_id", usuarioID.String()).Msg("falha ao consultar papel do usuário")
		}
		return ""
	}
	return p.Papel
}
