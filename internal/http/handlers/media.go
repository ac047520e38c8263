package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"mediapress/internal/optimize"
	"mediapress/internal/storage"
	"mediapress/pkg/zip"
)

var formatContentTypes = map[string]string{
	"optimized": "image/jpeg",
	"webp":      "image/webp",
	"avif":      "image/avif",
}

type uploadResponse struct {
	ID       string                 `json:"id"`
	Filename string                 `json:"filename"`
	Sizes    optimize.ResponsiveSet `json:"sizes"`
}

// MediaUpload accepts a multipart image upload and builds the full
// responsive derivative set for it.
func (a *App) MediaUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.Config.MaxUploadBytes)
	if err := r.ParseMultipartForm(a.Config.MaxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "image file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "failed to read upload")
		return
	}

	base := storage.SafeBaseName(header.Filename)
	id, set, err := a.Pipeline.BuildResponsiveSet(data, base)
	if err != nil {
		a.Logger.Error().Err(err).Str("filename", base).Msg("responsive set failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to build responsive set")
		return
	}
	a.json(w, http.StatusCreated, uploadResponse{ID: id, Filename: base, Sizes: set})
}

type optimizeResponse struct {
	ID          string                     `json:"id"`
	Preset      string                     `json:"preset"`
	Label       string                     `json:"label"`
	Fallback    bool                       `json:"fallback"`
	Progressive bool                       `json:"progressive"`
	Variants    map[string]variantResponse `json:"variants"`
}

type variantResponse struct {
	URL   string `json:"url"`
	Bytes int    `json:"bytes"`
}

// MediaOptimize runs a single-preset optimization and persists the produced
// variants. Preset and feature flags arrive as form/query values.
func (a *App) MediaOptimize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.Config.MaxUploadBytes)
	if err := r.ParseMultipartForm(a.Config.MaxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "image file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "failed to read upload")
		return
	}

	presetKey := optimize.PresetKey(r.FormValue("preset"))
	opts := optimize.EncodeOptions{
		WebP:        r.FormValue("webp") != "false",
		AVIF:        r.FormValue("avif") == "true",
		Progressive: r.FormValue("progressive") == "true",
	}

	res := a.Pipeline.Optimize(data, presetKey, opts)
	preset := optimize.PresetFor(presetKey)

	id := uuid.NewString()
	variants := make(map[string]variantResponse, 3)
	for format, payload := range map[string][]byte{
		string(optimize.FormatJPEG): res.JPEG,
		string(optimize.FormatWebP): res.WebP,
		string(optimize.FormatAVIF): res.AVIF,
	} {
		if payload == nil {
			continue
		}
		url, werr := a.Store.Write(id, string(preset.Key), format, payload)
		if werr != nil {
			a.Logger.Error().Err(werr).Str("format", format).Msg("variant not persisted")
			continue
		}
		variants[format] = variantResponse{URL: url, Bytes: len(payload)}
	}
	if _, ok := variants[string(optimize.FormatJPEG)]; !ok {
		a.error(w, http.StatusInternalServerError, "internal", "failed to persist jpeg variant")
		return
	}

	a.json(w, http.StatusCreated, optimizeResponse{
		ID:          id,
		Preset:      string(preset.Key),
		Label:       res.Label.String(),
		Fallback:    res.Fallback,
		Progressive: res.Progressive,
		Variants:    variants,
	})
}

// MediaServe streams one derivative file with a long-lived cache policy.
// Derivative filenames embed a fresh identifier per upload, so aggressive
// caching is safe.
func (a *App) MediaServe(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	filename := chi.URLParam(r, "filename")

	path, err := a.Store.Resolve(format, filename)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "no such derivative")
		return
	}
	if ct, ok := formatContentTypes[format]; ok {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	http.ServeFile(w, r, path)
}

// MediaArchive bundles every derivative of one upload into a zip download.
func (a *App) MediaArchive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	assets, err := a.Store.ListFamily(id)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid identifier")
		return
	}
	if len(assets) == 0 {
		a.error(w, http.StatusNotFound, "not_found", "no derivatives for identifier")
		return
	}

	entries := make([]zip.Entry, 0, len(assets))
	for _, asset := range assets {
		entries = append(entries, zip.Entry{Filename: asset.Filename, Data: asset.Data})
	}
	archive, err := zip.Archive(entries)
	if err != nil {
		a.Logger.Error().Err(err).Str("id", id).Msg("archive failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to build archive")
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename=media-`+id+`.zip`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

type remoteRequest struct {
	URL string `json:"url"`
}

// MediaRemote rewrites a third-party hosted image URL into the responsive
// preset/format shape without downloading or re-encoding anything.
func (a *App) MediaRemote(w http.ResponseWriter, r *http.Request) {
	var req remoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "url is required")
		return
	}
	set, err := optimize.ResponsiveRemoteSet(req.URL)
	if err != nil {
		a.error(w, http.StatusUnprocessableEntity, "unsupported_source", err.Error())
		return
	}
	a.json(w, http.StatusOK, map[string]any{"sizes": set})
}
