package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/louvorapp/api/internal/service"
)

// Sessao resolve o papel vigente do usuário autenticado a cada
// requisição. Nada é cacheado entre requisições: um papel revogado
// em sessão ativa passa a valer na requisição seguinte.
func Sessao(sessoes *service.SessaoService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			usuarioID, err := uuid.Parse(GetSubject(r.Context()))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "AUTH", "identificação inválida")
				return
			}

			papel := sessoes.ResolverPapel(r.Context(), usuarioID)
			ctx := context.WithValue(r.Context(), ContextKeyPapel, papel)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
