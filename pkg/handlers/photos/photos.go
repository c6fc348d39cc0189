package photos

import (
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/chris/twogether-backend/pkg/api"
	"github.com/chris/twogether-backend/pkg/blobstore"
	"github.com/chris/twogether-backend/pkg/handlers/respond"
	"github.com/chris/twogether-backend/pkg/mapping"
	"github.com/chris/twogether-backend/pkg/middleware"
	"github.com/chris/twogether-backend/pkg/models"
	"github.com/chris/twogether-backend/pkg/storage"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// DefaultMaxUploadBytes bounds the multipart body when no limit is configured.
const DefaultMaxUploadBytes int64 = 10 << 20

const maxCaptionLength = 500

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/heic": true,
}

// PhotosHandler holds the dependencies for photo handlers.
type PhotosHandler struct {
	Store          storage.PhotoStore
	Blobs          blobstore.Store
	MaxUploadBytes int64
	Now            func() time.Time
}

// NewPhotosHandler creates a new PhotosHandler.
func NewPhotosHandler(store storage.PhotoStore, blobs blobstore.Store, maxUploadBytes int64) *PhotosHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &PhotosHandler{Store: store, Blobs: blobs, MaxUploadBytes: maxUploadBytes, Now: time.Now}
}

// UploadPhoto stores the multipart "file" in object storage and records its metadata.
func (h *PhotosHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			respond.Error(w, r, err)
			return
		}
		respond.Error(w, r, respond.BadRequest("invalid multipart form: "+err.Error()))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, r, respond.Invalid("file is required"))
		return
	}
	defer file.Close()

	contentType := strings.ToLower(strings.TrimSpace(header.Header.Get("Content-Type")))
	if !allowedContentTypes[contentType] {
		respond.Error(w, r, respond.Invalid("unsupported content type "+contentType))
		return
	}

	var caption *string
	if c := strings.TrimSpace(r.FormValue("caption")); c != "" {
		if len([]rune(c)) > maxCaptionLength {
			respond.Error(w, r, respond.Invalid("caption must be at most 500 characters"))
			return
		}
		caption = &c
	}

	var memoryDate *openapi_types.Date
	if v := r.FormValue("memoryDate"); v != "" {
		var d openapi_types.Date
		if err := runtime.BindStringToObject(v, &d); err != nil {
			respond.Error(w, r, respond.Invalid("memoryDate must be YYYY-MM-DD"))
			return
		}
		memoryDate = &d
	}

	ctx := r.Context()
	couple := middleware.Couple(ctx)
	photoID := uuid.New().String()

	// 1. Upload the object first so metadata never points at a missing object.
	url, err := h.Blobs.Upload(ctx, couple.ID, photoID, file, header.Size, contentType)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if url == "" {
		url = h.Blobs.PublicURL(couple.ID, photoID)
	}

	// 2. Record the metadata; remove the orphaned object if that fails.
	photo, err := h.Store.CreatePhoto(ctx, &models.Photo{
		ID:          photoID,
		CoupleID:    couple.ID,
		UploadedBy:  middleware.AccountID(ctx),
		FileName:    filepath.Base(header.Filename),
		Caption:     caption,
		ContentType: contentType,
		SizeBytes:   header.Size,
		MemoryDate:  mapping.ToDomainDate(memoryDate),
		URL:         url,
		UploadedAt:  h.Now().UTC(),
	})
	if err != nil {
		if delErr := h.Blobs.Delete(ctx, couple.ID, photoID); delErr != nil {
			slog.ErrorContext(ctx, "failed to remove orphaned photo object", "photo_id", photoID, "error", delErr)
		}
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, mapping.ToApiPhoto(photo))
}

// ListPhotos returns the couple's photos newest first.
func (h *PhotosHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		respond.Error(w, r, respond.BadRequest("invalid limit: "+err.Error()))
		return
	}
	n := 0
	if limit != nil {
		n = *limit
	}

	couple := middleware.Couple(r.Context())
	list, err := h.Store.ListPhotos(r.Context(), couple.ID, n)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	apiPhotos := make([]api.Photo, len(list))
	for i := range list {
		apiPhotos[i] = mapping.ToApiPhoto(&list[i])
	}
	respond.JSON(w, http.StatusOK, apiPhotos)
}
