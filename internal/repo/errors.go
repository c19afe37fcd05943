package repo

import "errors"

var (
	// ErrNotFound é retornado quando nenhum registro é encontrado.
	ErrNotFound = errors.New("registro não encontrado")
	// ErrEmailEmUso é retornado quando o e-mail já pertence a outro usuário.
	ErrEmailEmUso = errors.New("email já cadastrado")
)
