package repo

import (
	"time"

	"github.com/google/uuid"
)

// Usuario representa uma identidade com acesso ao serviço.
type Usuario struct {
	ID        uuid.UUID
	Email     string
	SenhaHash string
	Ativo     bool
	CriadoEm  time.Time
}

// PapelUsuario vincula a identidade ao papel no ministério.
// No máximo um registro por usuário; substituído por inteiro quando
// reatribuído, nunca atualizado parcialmente.
type PapelUsuario struct {
	UsuarioID uuid.UUID
	Email     string
	Papel     string
	CriadoEm  time.Time
}

// TokenRefresh modela tabela de refresh tokens.
type TokenRefresh struct {
	ID        uuid.UUID
	Subject   uuid.UUID
	TokenHash string
	Expiracao time.Time
	CriadoEm  time.Time
	Revogado  bool
}
