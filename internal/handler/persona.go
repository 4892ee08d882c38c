package handler

import (
	"log/slog"
	"net/http"

	"nova/internal/httputil"
	"nova/internal/persona"
)

// PersonaHandler handles GET /persona. The persona is loaded once at
// startup; this endpoint just serves it to the frontend.
type PersonaHandler struct {
	persona *persona.Persona
	logger  *slog.Logger
}

// NewPersonaHandler creates a new persona handler
func NewPersonaHandler(p *persona.Persona, logger *slog.Logger) *PersonaHandler {
	return &PersonaHandler{
		persona: p,
		logger:  logger,
	}
}

// GetPersona returns the assistant name and system instruction.
func (h *PersonaHandler) GetPersona(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.persona)
}
