package middleware

import (
	"net/http"

	"github.com/louvorapp/api/internal/service"
)

// Permissao nega acesso quando o papel resolvido não está na lista da
// matriz central para (recurso, ação). Usuário sem papel é negado em
// qualquer rota guardada, inclusive quando a lista aceita todos.
func Permissao(recurso service.Recurso, acao service.Acao) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !service.Autorizado(GetPapel(r.Context()), recurso, acao) {
				writeError(w, http.StatusForbidden, "FORBIDDEN", "sem acesso")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
