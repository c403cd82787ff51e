package handler

import (
	"log/slog"
	"net/http"

	"github.com/HerosSMP/Heros-shop.de/internal/apperror"
	"github.com/HerosSMP/Heros-shop.de/internal/imaging"
)

// maxUploadBytes caps product image uploads at 8 MiB. Anything larger is
// rejected before decoding starts.
const maxUploadBytes = 8 << 20

// ImageHandler converts uploaded product images into embedded data URLs.
type ImageHandler struct {
	logger *slog.Logger
}

func NewImageHandler(logger *slog.Logger) *ImageHandler {
	return &ImageHandler{logger: logger}
}

type imageResponse struct {
	DataURL string `json:"dataUrl"`
}

// HandleUpload accepts a multipart upload, downscales and re-encodes the
// image, and returns a data URL string. The admin form puts that string
// straight into the product's image field — no file hosting involved.
//
// HTTP: POST /api/images (admin)
// FORM: multipart/form-data with an "image" file field
func (h *ImageHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("image")
	if err != nil {
		h.logger.Warn("image upload without file field", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("image", "an image file field is required"))
		return
	}
	defer file.Close()

	dataURL, err := imaging.DataURL(file)
	if err != nil {
		h.logger.Warn("image upload rejected",
			slog.String("filename", header.Filename),
			slog.String("error", err.Error()),
		)
		writeError(w, apperror.ValidationFailed("image", "file is not a decodable image"))
		return
	}

	h.logger.Info("image converted",
		slog.String("filename", header.Filename),
		slog.Int("encodedBytes", len(dataURL)),
	)

	writeJSON(w, http.StatusOK, imageResponse{DataURL: dataURL})
}
