package handlers

import (
	"errors"
	"io"
	"net/http"

	"donorly/internal/domain"
	"donorly/internal/storage"
)

// Upload stores an image sent as the multipart field "file" and returns its
// public URL.
func (a *App) Upload(w http.ResponseWriter, r *http.Request) {
	session := a.session(r)
	if session == nil {
		a.fail(w, r, domain.ErrUnauthorized)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxImageBytes+(1<<20))
	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.fail(w, r, storage.ErrTooLarge)
			return
		}
		a.error(w, http.StatusBadRequest, "bad_request", "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, storage.MaxImageBytes+1))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "could not read upload")
		return
	}
	stored, err := a.Files.SaveImage(r.Context(), session.UserID, data)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.Logger.Info().Str("user_id", session.UserID).Str("key", stored.Key).Int("size", stored.Size).Msg("image uploaded")
	a.json(w, http.StatusCreated, map[string]any{
		"url":          stored.URL,
		"key":          stored.Key,
		"content_type": stored.ContentType,
		"size":         stored.Size,
	})
}
