package usuario

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/louvorapp/api/internal/aviso"
	"github.com/louvorapp/api/internal/repo"
	"github.com/louvorapp/api/internal/service"
	"github.com/louvorapp/api/internal/util"
)

// Handler atende o cadastro de usuários (restrito a líderes na rota).
type Handler struct {
	service *Service
	central *aviso.Central
}

func NewHandler(svc *Service, central *aviso.Central) *Handler {
	return &Handler{service: svc, central: central}
}

// Criar registra identidade e papel de um novo integrante.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
		Senha string `json:"senha"`
		Papel string `json:"papel"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	if err := util.ValidateEmail(payload.Email); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}
	if err := util.ValidatePassword(payload.Senha); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}
	if !service.PapelValido(payload.Papel) {
		writeError(w, http.StatusBadRequest, "VALIDATION", "papel inválido", nil)
		return
	}

	id, err := h.service.Registrar(r.Context(), payload.Email, payload.Senha, payload.Papel)
	if err != nil {
		if errors.Is(err, repo.ErrEmailEmUso) {
			writeError(w, http.StatusBadRequest, "VALIDATION", "email já cadastrado", nil)
			return
		}
		log.Error().Err(err).Msg("cadastro de usuário falhou")
		h.central.Publicar("Erro ao criar usuário: "+err.Error(), aviso.TipoErro)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "erro interno", nil)
		return
	}

	h.central.Publicar("Usuário criado com sucesso!", aviso.TipoSucesso)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": payload, "error": nil})
}

func writeError(w http.ResponseWriter, status int, code, message string, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data":  nil,
		"error": map[string]any{"code": code, "message": message, "details": details},
	})
}
