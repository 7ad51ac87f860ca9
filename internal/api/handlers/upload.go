package handlers

import (
	"errors"
	"net/http"
	"route-planner-service/internal/api/dto"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/ports"
	"route-planner-service/internal/services"
	"strings"

	"go.uber.org/zap"
)

type UploadHandler struct {
	Source   ports.AddressSource
	MaxBytes int64
	Logger   *zap.Logger
}

// Upload parses a planning workbook sent as multipart field "file" and returns
// the deduplicated addresses and the driver names.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, h.Logger, http.MethodPost)
		return
	}

	limit := bodyLimit(h.MaxBytes)
	if r.ContentLength > limit {
		writeError(w, r, h.Logger, http.StatusRequestEntityTooLarge, "Bestand is te groot", domain.KindInvalidInput)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, h.Logger, http.StatusRequestEntityTooLarge, "Bestand is te groot", domain.KindInvalidInput)
			return
		}
		writeError(w, r, h.Logger, http.StatusBadRequest, "Geen bestand geüpload", domain.KindInvalidInput)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, "Geen bestand geüpload", domain.KindInvalidInput)
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
		writeError(w, r, h.Logger, http.StatusBadRequest, "Alleen .xlsx bestanden worden geaccepteerd", domain.KindInvalidInput)
		return
	}

	ing, err := h.Source.Parse(file)
	if err != nil {
		writeRouteError(w, r, h.Logger, err)
		return
	}

	hasDays := services.HasVisitDays(ing.Addresses)
	writeJSON(w, r, h.Logger, http.StatusOK, dto.UploadResponse{
		Addresses: services.Dedupe(ing.Addresses, hasDays),
		Drivers:   ing.Drivers,
		HasDays:   hasDays,
	})
}
