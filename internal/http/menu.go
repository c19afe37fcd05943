package http

import (
	"net/http"

	httpmiddleware "github.com/louvorapp/api/internal/http/middleware"
	"github.com/louvorapp/api/internal/service"
)

// ItemMenu é uma entrada de navegação visível para o papel vigente.
type ItemMenu struct {
	Rotulo string `json:"rotulo"`
	Rota   string `json:"rota"`
}

// Menu devolve a navegação conforme o papel resolvido na requisição.
// Usuário sem papel enxerga apenas a saída da sessão.
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	papel := httpmiddleware.GetPapel(r.Context())

	var itens []ItemMenu
	if papel != "" {
		itens = append(itens,
			ItemMenu{Rotulo: "Dashboard", Rota: "/dashboard"},
			ItemMenu{Rotulo: "Ensaios", Rota: "/ensaios/lista"},
			ItemMenu{Rotulo: "Escalas", Rota: "/escalas/lista"},
			ItemMenu{Rotulo: "Repertórios", Rota: "/repertorios/lista"},
		)
		if service.Autorizado(papel, service.RecursoUsuarios, service.AcaoCriar) {
			itens = append(itens, ItemMenu{Rotulo: "Cadastro", Rota: "/cadastro"})
		}
	}
	itens = append(itens, ItemMenu{Rotulo: "Sair", Rota: "/sair"})

	WriteJSON(w, http.StatusOK, map[string]any{"itens": itens})
}
