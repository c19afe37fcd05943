package ensaio

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/louvorapp/api/internal/aviso"
	"github.com/louvorapp/api/internal/util"
)

// Handler atende as rotas de ensaios.
type Handler struct {
	service *Service
	central *aviso.Central
}

func NewHandler(svc *Service, central *aviso.Central) *Handler {
	return &Handler{service: svc, central: central}
}

func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	ensaios, err := h.service.Listar(r.Context())
	if err != nil {
		h.falhaInterna(w, "Erro ao carregar ensaios", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ensaios": ensaios})
}

func (h *Handler) Obter(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "ensaio inválido", nil)
		return
	}

	e, err := h.service.Obter(r.Context(), id)
	if err != nil {
		h.erroDeDominio(w, "Erro ao carregar ensaio", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ensaio": e})
}

func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var payload Entrada
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}
	if msg, ok := validarEntrada(payload); !ok {
		writeError(w, http.StatusBadRequest, "VALIDATION", msg, nil)
		return
	}

	e, err := h.service.Criar(r.Context(), payload)
	if err != nil {
		h.falhaInterna(w, "Erro ao salvar ensaio", err)
		return
	}

	h.central.Publicar("Ensaio cadastrado com sucesso!", aviso.TipoSucesso)
	writeJSON(w, http.StatusCreated, map[string]any{"ensaio": e})
}

func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "ensaio inválido", nil)
		return
	}

	var payload Entrada
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}
	if msg, ok := validarEntrada(payload); !ok {
		writeError(w, http.StatusBadRequest, "VALIDATION", msg, nil)
		return
	}

	e, err := h.service.Atualizar(r.Context(), id, payload)
	if err != nil {
		h.erroDeDominio(w, "Erro ao atualizar ensaio", err)
		return
	}

	h.central.Publicar("Ensaio atualizado com sucesso!", aviso.TipoSucesso)
	writeJSON(w, http.StatusOK, map[string]any{"ensaio": e})
}

func (h *Handler) Excluir(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "ensaio inválido", nil)
		return
	}

	if err := h.service.Excluir(r.Context(), id); err != nil {
		h.erroDeDominio(w, "Erro ao excluir ensaio", err)
		return
	}

	h.central.Publicar("Ensaio excluído com sucesso!", aviso.TipoSucesso)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func validarEntrada(in Entrada) (string, bool) {
	if _, err := time.Parse("2006-01-02", in.Data); err != nil {
		return "data inválida", false
	}
	if _, err := time.Parse("15:04", in.Hora); err != nil {
		return "hora inválida", false
	}
	if err := util.RequireString(in.Local, "local"); err != nil {
		return err.Error(), false
	}
	return "", true
}

func (h *Handler) erroDeDominio(w http.ResponseWriter, contexto string, err error) {
	if errors.Is(err, ErrNaoEncontrado) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "ensaio não encontrado", nil)
		return
	}
	h.falhaInterna(w, contexto, err)
}

func (h *Handler) falhaInterna(w http.ResponseWriter, contexto string, err error) {
	log.Error().Err(err).Msg("ensaio handler error")
	h.central.Publicar(contexto+": "+err.Error(), aviso.TipoErro)
	writeError(w, http.StatusInternalServerError, "INTERNAL", "erro interno", nil)
}

// Helpers de resposta JSON compatíveis com o resto do projeto.
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
