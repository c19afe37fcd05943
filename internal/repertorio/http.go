package repertorio

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/louvorapp/api/internal/aviso"
)

// Handler atende as rotas de repertórios.
type Handler struct {
	service *Service
	central *aviso.Central
}

func NewHandler(svc *Service, central *aviso.Central) *Handler {
	return &Handler{service: svc, central: central}
}

func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	repertorios, err := h.service.Listar(r.Context())
	if err != nil {
		h.falhaInterna(w, "Erro ao carregar repertórios", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"repertorios": repertorios})
}

func (h *Handler) Obter(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "repertório inválido", nil)
		return
	}

	rep, err := h.service.Obter(r.Context(), id)
	if err != nil {
		h.erroDeDominio(w, "Erro ao carregar repertório", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"repertorio": rep})
}

func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var payload Entrada
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}
	if _, err := time.Parse("2006-01-02", payload.DataCulto); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "data do culto inválida", nil)
		return
	}

	rep, err := h.service.Criar(r.Context(), payload)
	if err != nil {
		h.falhaInterna(w, "Erro ao salvar repertório", err)
		return
	}

	h.central.Publicar("Repertório criado com sucesso!", aviso.TipoSucesso)
	writeJSON(w, http.StatusCreated, map[string]any{"repertorio": rep})
}

func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "repertório inválido", nil)
		return
	}

	var payload Entrada
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}
	if _, err := time.Parse("2006-01-02", payload.DataCulto); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "data do culto inválida", nil)
		return
	}

	rep, err := h.service.Atualizar(r.Context(), id, payload)
	if err != nil {
		h.erroDeDominio(w, "Erro ao atualizar repertório", err)
		return
	}

	h.central.Publicar("Repertório atualizado com sucesso!", aviso.TipoSucesso)
	writeJSON(w, http.StatusOK, map[string]any{"repertorio": rep})
}

func (h *Handler) Excluir(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "repertório inválido", nil)
		return
	}

	if err := h.service.Excluir(r.Context(), id); err != nil {
		h.erroDeDominio(w, "Erro ao excluir repertório", err)
		return
	}

	h.central.Publicar("Repertório excluído com sucesso!", aviso.TipoSucesso)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) AdicionarMusica(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "repertório inválido", nil)
		return
	}

	var payload EntradaMusica
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}
	if strings.TrimSpace(payload.Nome) == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION", "nome da música é obrigatório", nil)
		return
	}

	m, err := h.service.AdicionarMusica(r.Context(), id, payload)
	if err != nil {
		h.erroDeDominio(w, "Erro ao adicionar música", err)
		return
	}

	h.central.Publicar("Música adicionada com sucesso ao repertório!", aviso.TipoSucesso)
	writeJSON(w, http.StatusCreated, map[string]any{"musica": m})
}

func (h *Handler) AtualizarMusica(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "repertório inválido", nil)
		return
	}
	musicaID := chi.URLParam(r, "musicaID")

	var payload EntradaMusica
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}
	if strings.TrimSpace(payload.Nome) == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION", "nome da música é obrigatório", nil)
		return
	}

	m, err := h.service.AtualizarMusica(r.Context(), id, musicaID, payload)
	if err != nil {
		h.erroDeDominio(w, "Erro ao atualizar música", err)
		return
	}

	h.central.Publicar("Música atualizada com sucesso!", aviso.TipoSucesso)
	writeJSON(w, http.StatusOK, map[string]any{"musica": m})
}

func (h *Handler) RemoverMusica(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "repertório inválido", nil)
		return
	}
	musicaID := chi.URLParam(r, "musicaID")

	if err := h.service.RemoverMusica(r.Context(), id, musicaID); err != nil {
		h.erroDeDominio(w, "Erro ao remover música", err)
		return
	}

	h.central.Publicar("Música removida do repertório.", aviso.TipoSucesso)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) erroDeDominio(w http.ResponseWriter, contexto string, err error) {
	switch {
	case errors.Is(err, ErrNaoEncontrado):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "repertório não encontrado", nil)
	case errors.Is(err, ErrMusicaNaoEncontrada):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "música não encontrada", nil)
	default:
		h.falhaInterna(w, contexto, err)
	}
}

func (h *Handler) falhaInterna(w http.ResponseWriter, contexto string, err error) {
	log.Error().Err(err).Msg("repertorio handler error")
	h.central.Publicar(contexto+": "+err.Error(), aviso.TipoErro)
	writeError(w, http.StatusInternalServerError, "INTERNAL", "erro interno", nil)
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
