// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"bidhinews/internal/imaging"
	"bidhinews/internal/middleware"
	"bidhinews/internal/models"
	"bidhinews/internal/storage"
)

// maxUploadSize is the maximum allowed image upload (10 MB).
const maxUploadSize = 10 << 20

// allowedImageTypes are the MIME types accepted for article images.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// thumbableTypes support thumbnail generation. GIF is excluded to
// preserve animation.
var thumbableTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// mediaResponse is the JSON shape for an uploaded or listed media item.
type mediaResponse struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	ThumbURL  string `json:"thumbUrl,omitempty"`
	Filename  string `json:"filename"`
	AltText   string `json:"altText,omitempty"`
	Size      string `json:"size"`
	Type      string `json:"type"`
	CreatedAt int64  `json:"createdAt"`
}

func (a *Admin) mediaResponseFor(m *models.Media) mediaResponse {
	resp := mediaResponse{
		ID:        m.ID.String(),
		URL:       a.storage.FileURL(m.S3Key),
		Filename:  m.Filename,
		AltText:   m.AltText,
		Size:      m.HumanSize(),
		Type:      m.ContentType,
		CreatedAt: m.CreatedAt.UnixMilli(),
	}
	if m.ThumbS3Key != "" {
		resp.ThumbURL = a.storage.FileURL(m.ThumbS3Key)
	}
	return resp
}

// MediaUpload stores an article image in S3 and its metadata in
// PostgreSQL. Two request shapes are accepted: a multipart form with a
// "file" field, and a JSON body carrying a base64 data URI (the editor
// submits pasted images that way). Responds with the public URL the
// post's imageUrl field should reference.
func (a *Admin) MediaUpload(w http.ResponseWriter, r *http.Request) {
	if a.storage == nil {
		respondError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	sess := middleware.SessionFromCtx(r.Context())

	var (
		data        []byte
		contentType string
		filename    string
		altText     string
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var in struct {
			DataURI  string `json:"dataUri"`
			Filename string `json:"filename"`
			AltText  string `json:"altText"`
		}
		// Data URIs inflate the payload by a third, so the JSON limit is
		// wider than the decoded size limit checked below.
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize*2)
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var err error
		contentType, data, err = storage.ParseDataURI(in.DataURI)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid image data URI")
			return
		}
		filename = in.Filename
		altText = in.AltText
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			respondError(w, http.StatusRequestEntityTooLarge, "file too large, maximum size is 10 MB")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			respondError(w, http.StatusBadRequest, "no file provided")
			return
		}
		defer file.Close()

		data, err = io.ReadAll(file)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to read file")
			return
		}
		contentType = http.DetectContentType(data)
		filename = header.Filename
		altText = r.FormValue("alt_text")
	}

	if len(data) == 0 {
		respondError(w, http.StatusBadRequest, "empty file")
		return
	}
	if len(data) > maxUploadSize {
		respondError(w, http.StatusRequestEntityTooLarge, "file too large, maximum size is 10 MB")
		return
	}
	if !allowedImageTypes[contentType] {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("file type %q is not allowed", contentType))
		return
	}

	now := time.Now()
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = extensionFromType(contentType)
	}
	fileID := uuid.New().String()
	s3Key := fmt.Sprintf("media/%d/%02d/%s%s", now.Year(), now.Month(), fileID, ext)

	ctx := r.Context()
	if _, err := a.storage.UploadBytes(ctx, s3Key, contentType, data); err != nil {
		slog.Error("s3 upload failed", "error", err, "key", s3Key)
		respondError(w, http.StatusInternalServerError, "failed to upload file")
		return
	}

	// Thumbnails are best-effort; a post can reference the original
	// without one.
	var thumbKey string
	if thumbableTypes[contentType] {
		thumb, err := imaging.Thumbnail(data, imaging.ThumbWidth)
		if err != nil {
			slog.Warn("thumbnail generation failed", "error", err, "key", s3Key)
		} else {
			tk := fmt.Sprintf("media/%d/%02d/%s_thumb.jpg", now.Year(), now.Month(), fileID)
			if _, err := a.storage.UploadBytes(ctx, tk, "image/jpeg", thumb); err != nil {
				slog.Warn("thumbnail upload failed", "error", err, "key", tk)
			} else {
				thumbKey = tk
			}
		}
	}

	created, err := a.media.Create(&models.Media{
		Filename:    fileID + ext,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		S3Key:       s3Key,
		ThumbS3Key:  thumbKey,
		AltText:     altText,
		UploaderID:  sess.UserID,
	})
	if err != nil {
		slog.Error("media db insert failed", "error", err, "key", s3Key)
		respondError(w, http.StatusInternalServerError, "failed to save file metadata")
		return
	}

	respondJSON(w, http.StatusCreated, a.mediaResponseFor(created))
}

// MediaList returns uploaded media, newest first, paginated.
func (a *Admin) MediaList(w http.ResponseWriter, r *http.Request) {
	if a.storage == nil {
		respondError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	items, err := a.media.List(limit, offset)
	if err != nil {
		respondStoreError(w, err, "list media")
		return
	}

	views := make([]mediaResponse, 0, len(items))
	for i := range items {
		views = append(views, a.mediaResponseFor(&items[i]))
	}
	respondJSON(w, http.StatusOK, views)
}

// MediaDelete removes a media item from both the database and S3. The
// S3 cleanup is best-effort; an orphaned object is cheaper than a
// failed delete.
func (a *Admin) MediaDelete(w http.ResponseWriter, r *http.Request) {
	if a.storage == nil {
		respondError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid media id")
		return
	}

	deleted, err := a.media.Delete(id)
	if err != nil {
		respondStoreError(w, err, "delete media")
		return
	}

	ctx := r.Context()
	if err := a.storage.Delete(ctx, deleted.S3Key); err != nil {
		slog.Warn("s3 original delete failed", "error", err, "key", deleted.S3Key)
	}
	if deleted.ThumbS3Key != "" {
		if err := a.storage.Delete(ctx, deleted.ThumbS3Key); err != nil {
			slog.Warn("s3 thumbnail delete failed", "error", err, "key", deleted.ThumbS3Key)
		}
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// extensionFromType returns a file extension for known image MIME types.
func extensionFromType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}

// queryInt parses an integer query parameter with a fallback.
func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
