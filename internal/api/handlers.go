package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/zed-charania/Meridian/internal/intake"
	"github.com/zed-charania/Meridian/internal/pdf"
	pdferrors "github.com/zed-charania/Meridian/internal/pdf/errors"
	"github.com/zed-charania/Meridian/internal/store"
)

type healthResponse struct {
	pdf.HealthResult
	Store string `json:"store"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{HealthResult: s.service.Health(), Store: "disabled"}
	if s.store != nil {
		resp.Store = "ok"
		if err := s.store.Ping(r.Context()); err != nil {
			log.Printf("Store ping failed: %v", err)
			resp.Store = "unavailable"
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.ListFields(pdf.DefaultFieldListLimit)
	if err != nil {
		writeError(w, http.StatusNotFound, pdferrors.ErrorTypeTemplateNotFound.String(), "Template not found", "")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	s.generate(w, r, s.service.SampleRecord())
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.decodeRecord(w, r)
	if !ok {
		return
	}
	s.generate(w, r, rec)
}

func (s *Server) handleSaveForm(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.decodeRecord(w, r)
	if !ok {
		return
	}
	if rec.Empty() {
		writeError(w, http.StatusBadRequest, pdferrors.ErrorTypeInvalidRequest.String(), "No data provided", "")
		return
	}

	sub, err := s.store.Save(r.Context(), rec)
	if err != nil {
		log.Printf("Failed to save submission: %v", err)
		writeError(w, http.StatusInternalServerError, pdferrors.ErrorTypeStoreFailure.String(), "Failed to save submission", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (s *Server) handleLatestForm(w http.ResponseWriter, r *http.Request) {
	sub, err := s.store.Latest(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (s *Server) handleGetForm(w http.ResponseWriter, r *http.Request) {
	sub, ok := s.loadSubmission(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (s *Server) handleGenerateLatest(w http.ResponseWriter, r *http.Request) {
	sub, err := s.store.Latest(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	s.generate(w, r, sub.Data)
}

func (s *Server) handleGenerateForm(w http.ResponseWriter, r *http.Request) {
	sub, ok := s.loadSubmission(w, r)
	if !ok {
		return
	}
	s.generate(w, r, sub.Data)
}

func (s *Server) loadSubmission(w http.ResponseWriter, r *http.Request) (store.Submission, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, pdferrors.ErrorTypeInvalidRequest.String(), "Invalid submission id", err.Error())
		return store.Submission{}, false
	}

	sub, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return store.Submission{}, false
	}
	return sub, true
}

// decodeRecord reads a JSON object body no larger than the configured limit.
func (s *Server) decodeRecord(w http.ResponseWriter, r *http.Request) (intake.Record, bool) {
	body := http.MaxBytesReader(w, r.Body, s.opts.MaxBodySize)
	rec, err := intake.Decode(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, pdferrors.ErrorTypeInvalidRequest.String(), "Request body too large", "")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, pdferrors.ErrorTypeInvalidRequest.String(), "Invalid JSON payload", err.Error())
		return nil, false
	}
	return rec, true
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request, rec intake.Record) {
	result, err := s.service.Generate(r.Context(), rec)
	if err != nil {
		writeGenerateError(w, err)
		return
	}
	if s.opts.Debug {
		log.Printf("Generated %s: %d mapped, %d filled", result.Filename, result.Mapped, result.Filled)
	}
	writePDF(w, result)
}

func writeGenerateError(w http.ResponseWriter, err error) {
	kind := pdferrors.TypeOf(err)
	switch kind {
	case pdferrors.ErrorTypeInvalidRequest:
		writeError(w, http.StatusBadRequest, kind.String(), "No data provided", "")
	case pdferrors.ErrorTypeTemplateNotFound:
		writeError(w, http.StatusInternalServerError, kind.String(), "PDF template not found", "")
	default:
		log.Printf("Error generating PDF: %v", err)
		writeError(w, http.StatusInternalServerError, kind.String(), "Failed to generate PDF", err.Error())
	}
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, pdferrors.ErrorTypeNotFound.String(), "Submission not found", "")
		return
	}
	log.Printf("Store error: %v", err)
	writeError(w, http.StatusInternalServerError, pdferrors.ErrorTypeStoreFailure.String(), "Failed to load submission", err.Error())
}
