// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"bidhinews/internal/storage"
)

// describeImageTimeout bounds a single vision-model call. Alt text is a
// convenience; the editor must never hang on it.
const describeImageTimeout = 30 * time.Second

// DescribeImage asks the active AI provider for alt text. The image
// arrives either as a data URI or as the id of an already-uploaded
// media item. Provider failures are a 502: alt text is assistive, the
// client falls back to saving the post without it.
func (a *Admin) DescribeImage(w http.ResponseWriter, r *http.Request) {
	var in struct {
		DataURI string `json:"dataUri"`
		MediaID string `json:"mediaId"`
	}
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var (
		data     []byte
		mimeType string
		mediaID  uuid.UUID
	)

	switch {
	case in.MediaID != "":
		if a.storage == nil {
			respondError(w, http.StatusServiceUnavailable, "object storage is not configured")
			return
		}
		id, err := uuid.Parse(in.MediaID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid media id")
			return
		}
		media, err := a.media.FindByID(id)
		if err != nil {
			respondStoreError(w, err, "find media")
			return
		}
		data, err = a.storage.Download(r.Context(), media.S3Key)
		if err != nil {
			slog.Error("media download for alt text failed", "error", err, "key", media.S3Key)
			respondError(w, http.StatusInternalServerError, "failed to load image")
			return
		}
		mimeType = media.ContentType
		mediaID = media.ID

	case in.DataURI != "":
		var err error
		mimeType, data, err = storage.ParseDataURI(in.DataURI)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid image data URI")
			return
		}

	default:
		respondError(w, http.StatusBadRequest, "dataUri or mediaId is required")
		return
	}

	if !strings.HasPrefix(mimeType, "image/") {
		respondError(w, http.StatusBadRequest, "not an image")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), describeImageTimeout)
	defer cancel()

	altText, err := a.aiRegistry.DescribeImage(ctx, data, mimeType)
	if err != nil {
		slog.Error("alt text generation failed", "error", err, "provider", a.aiRegistry.ActiveName())
		respondError(w, http.StatusBadGateway, "alt text generation failed")
		return
	}
	altText = strings.TrimSpace(altText)

	// Persist onto the media row when we know which one it is.
	if mediaID != uuid.Nil {
		if err := a.media.UpdateAltText(mediaID, altText); err != nil {
			slog.Warn("alt text save failed", "error", err, "media_id", mediaID)
		}
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"altText":  altText,
		"provider": a.aiRegistry.ActiveName(),
	})
}

// AIProviders lists the configured providers and which one is active.
func (a *Admin) AIProviders(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"active":    a.aiRegistry.ActiveName(),
		"available": a.aiRegistry.Available(),
	})
}

// AISetProvider switches the active provider at runtime.
func (a *Admin) AISetProvider(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Provider string `json:"provider"`
	}
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := a.aiRegistry.SetActive(in.Provider); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"active": a.aiRegistry.ActiveName()})
}
