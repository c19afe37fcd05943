package aviso

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler expõe a central de avisos por HTTP.
type Handler struct {
	central *Central
}

// NewHandler cria o handler sobre a central injetada.
func NewHandler(central *Central) *Handler {
	return &Handler{central: central}
}

// Listar devolve os avisos ativos em ordem de criação.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"avisos": h.central.Ativos()})
}

// Dispensar remove o aviso indicado; id ausente também responde ok.
func (h *Handler) Dispensar(w http.ResponseWriter, r *http.Request) {
	h.central.Dispensar(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Stream entrega eventos da fila via Server-Sent Events. O fluxo vive
// fora de qualquer página: sobrevive à navegação do cliente e só
// termina quando a conexão é fechada.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeErrorEnvelope(w, http.StatusInternalServerError, "INTERNAL", "streaming não suportado")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	eventos, cancelar := h.central.Assinar()
	defer cancelar()

	for _, a := range h.central.Ativos() {
		enviarEvento(w, Evento{Nome: "publicado", Aviso: a})
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, aberto := <-eventos:
			if !aberto {
				return
			}
			enviarEvento(w, ev)
			flusher.Flush()
		}
	}
}

func enviarEvento(w http.ResponseWriter, ev Evento) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Nome, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": payload, "error": nil})
}

func writeErrorEnvelope(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data":  nil,
		"error": map[string]any{"code": code, "message": message},
	})
}
