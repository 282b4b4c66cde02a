package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	apperrors "hklcompare/internal/errors"
	"hklcompare/internal/files"
	api "hklcompare/pkg/contracts/api/v1"
)

// FilesHandler lists the reflection files that can be compared.
type FilesHandler struct {
	discovery    *files.Discovery
	errorHandler *apperrors.ErrorHandler
	logger       *slog.Logger
}

// NewFilesHandler creates a handler over the data directory discovery.
func NewFilesHandler(discovery *files.Discovery, errorHandler *apperrors.ErrorHandler, logger *slog.Logger) *FilesHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FilesHandler{
		discovery:    discovery,
		errorHandler: errorHandler,
		logger:       logger.With(slog.String("handler", "files")),
	}
}

// List handles GET /api/v1/files?pattern=
func (h *FilesHandler) List(w http.ResponseWriter, r *http.Request) {
	if !h.discovery.Exists() {
		h.errorHandler.HandleError(w, r, apperrors.NewNotFoundError("data directory"))
		return
	}

	var (
		found []files.FileInfo
		err   error
	)
	if pattern := r.URL.Query().Get("pattern"); pattern != "" {
		found, err = h.discovery.FindFilesByPattern(pattern)
		if err != nil {
			h.errorHandler.HandleError(w, r, apperrors.NewAppValidationError(err.Error()).WithContext("pattern", pattern))
			return
		}
	} else if found, err = h.discovery.FindReflectionFiles(); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list data files", slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apperrors.NewStorageError("list data files", err))
		return
	}

	out := api.FileList{Files: make([]api.DataFile, 0, len(found)), Total: len(found)}
	for _, f := range found {
		out.Files = append(out.Files, api.DataFile{
			Path:     f.Path,
			Name:     f.Name,
			Format:   string(f.Format),
			Size:     f.Size,
			Modified: f.ModTime.UTC(),
		})
	}
	if latest, ok := files.GetLatestFile(found); ok {
		out.Latest = latest.Path
	}
	render.JSON(w, r, out)
}
