package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/threadlens/threadlens/shared/logger"
)

func (h *Handler) renderTemplate(w http.ResponseWriter, name string, data any) {
	tmpl, ok := h.Templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	// Render into a buffer first so a mid-render failure never produces a
	// half-written page.
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, data); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	_, _ = buf.WriteTo(w)
}
