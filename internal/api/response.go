package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/zed-charania/Meridian/internal/pdf"
)

type errorResponse struct {
	Code    string `json:"code"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, msg, details string) {
	writeJSON(w, status, errorResponse{Code: code, Error: msg, Details: details})
}

func writePDF(w http.ResponseWriter, result *pdf.GenerateResult) {
	h := w.Header()
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	h.Set("Content-Length", strconv.Itoa(len(result.Data)))
	h.Set("X-Fields-Mapped", strconv.Itoa(result.Mapped))
	h.Set("X-Fields-Filled", strconv.Itoa(result.Filled))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Data); err != nil {
		log.Printf("Failed to write PDF: %v", err)
	}
}
