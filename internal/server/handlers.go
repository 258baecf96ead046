package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/toonvert/toonvert/internal/codec"
	"github.com/toonvert/toonvert/internal/frame"
	"github.com/toonvert/toonvert/internal/style"
)

// batchMemoryLimit bounds in-memory multipart parsing for batch uploads.
const batchMemoryLimit = 64 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, format string, args ...interface{}) {
	writeJSON(w, status, errorResponse{Error: fmt.Sprintf(format, args...)})
}

// mapError converts typed pipeline errors to HTTP status codes.
func mapError(err error) int {
	switch {
	case errors.Is(err, codec.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, codec.ErrInvalidFormat),
		errors.Is(err, codec.ErrBadDimensions),
		errors.Is(err, style.ErrUnknownStyle),
		errors.Is(err, style.ErrBatchTooLarge):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) limits() codec.Limits {
	lim := codec.DefaultLimits()
	if s.cfg.MaxUploadBytes > 0 {
		lim.MaxBytes = s.cfg.MaxUploadBytes
	}
	return lim
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "healthy",
		"backend":        s.backend.Name(),
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
	})
}

func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	all := s.allStyles()
	infos := make([]styleInfo, 0, len(all))
	for _, name := range all {
		infos = append(infos, describeStyle(name))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"engine_styles":  s.engine.Styles(),
		"backend_styles": s.backend.Styles(),
		"styles":         infos,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	count, bytes, err := s.store.Stats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "stats unavailable: %v", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"uptime_seconds":    int64(time.Since(s.started).Seconds()),
		"conversions_total": s.conversions.Load(),
		"files_stored":      count,
		"bytes_stored":      bytes,
		"output_dir":        s.store.Dir(),
		"backend":           s.backend.Name(),
		"styles_available":  len(s.allStyles()),
	})
}

func (s *Server) handleCleanup(w http.ResponseWriter, r *http.Request) {
	removed, err := s.store.Cleanup(s.cfg.RetentionAge)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "cleanup failed: %v", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

func (s *Server) handleOutput(w http.ResponseWriter, r *http.Request) {
	path, err := s.store.Open(r.PathValue("name"))
	if err != nil {
		writeError(w, http.StatusNotFound, "no such output")
		return
	}
	http.ServeFile(w, r, path)
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	// Leave headroom over the image cap for multipart framing; the codec
	// enforces the exact byte limit.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1<<20)

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	if !codec.AllowedExtension(header.Filename) {
		writeError(w, http.StatusBadRequest, "unsupported file type %q", header.Filename)
		return
	}

	styleName := r.FormValue("style")
	if styleName == "" {
		styleName = "classic"
	}
	if !s.servesStyle(styleName) {
		writeError(w, http.StatusBadRequest, "unknown style %q, see /api/styles", styleName)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading upload: %v", err)
		return
	}

	f, _, err := codec.Decode(data, s.limits())
	if err != nil {
		writeError(w, mapError(err), "%v", err)
		return
	}
	if r.FormValue("resize") != "false" {
		f = codec.FitWithin(f, s.cfg.MaxOutputWidth, s.cfg.MaxOutputHeight)
	}

	out, err := s.stylize(f, styleName)
	if err != nil {
		s.log.Error("conversion failed",
			zap.String("style", styleName),
			zap.String("file", header.Filename),
			zap.Error(err))
		writeError(w, mapError(err), "%v", err)
		return
	}

	format := r.FormValue("format")
	if format == "" {
		format = "jpeg"
	}
	encoded, err := codec.Encode(out, format, s.cfg.JPEGQuality)
	if err != nil {
		writeError(w, mapError(err), "%v", err)
		return
	}

	entry, err := s.store.Save(encoded, format)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storing result: %v", err)
		return
	}
	if err := s.store.SaveThumbnail(entry, out); err != nil {
		s.log.Warn("thumbnail failed", zap.String("output", entry.Name), zap.Error(err))
	}
	s.conversions.Add(1)

	if format == "png" {
		w.Header().Set("Content-Type", "image/png")
	} else {
		w.Header().Set("Content-Type", "image/jpeg")
	}
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s_%s", styleName, header.Filename))
	w.Header().Set("X-Processing-Style", styleName)
	w.Header().Set("X-Output-Name", entry.Name)
	_, _ = w.Write(encoded)
}

type batchItemResult struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	Output   string `json:"output,omitempty"`
}

func (s *Server) handleBatchConvert(w http.ResponseWriter, r *http.Request) {
	// Same framing headroom as the single-image handler, scaled by the
	// batch cap; per-item byte limits are still enforced by the codec.
	r.Body = http.MaxBytesReader(w, r.Body,
		int64(style.MaxBatchItems)*(s.cfg.MaxUploadBytes+1<<20))

	if err := r.ParseMultipartForm(batchMemoryLimit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				"batch request exceeds %d bytes", tooLarge.Limit)
			return
		}
		writeError(w, http.StatusBadRequest, "parsing upload: %v", err)
		return
	}
	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no images in request")
		return
	}
	if len(files) > style.MaxBatchItems {
		writeError(w, http.StatusBadRequest,
			"batch of %d exceeds the limit of %d", len(files), style.MaxBatchItems)
		return
	}

	styleName := r.FormValue("style")
	if styleName == "" {
		styleName = "classic"
	}
	if !s.servesStyle(styleName) {
		writeError(w, http.StatusBadRequest, "unknown style %q, see /api/styles", styleName)
		return
	}

	items := make([]style.BatchItem, len(files))
	for i, fh := range files {
		items[i].ID = fh.Filename
		f, err := s.decodeUpload(fh)
		if err != nil {
			items[i].Err = err
			continue
		}
		if r.FormValue("resize") != "false" {
			f = codec.FitWithin(f, s.cfg.MaxOutputWidth, s.cfg.MaxOutputHeight)
		}
		items[i].Frame = f
	}

	results := s.convertBatch(items, styleName)

	out := make([]batchItemResult, len(results))
	succeeded := 0
	for i, res := range results {
		out[i].Filename = res.ID
		if res.Err != nil {
			out[i].Status = "failed"
			out[i].Error = res.Err.Error()
			continue
		}
		encoded, err := codec.Encode(res.Frame, "jpeg", s.cfg.JPEGQuality)
		if err == nil {
			saved, serr := s.store.Save(encoded, "jpeg")
			if serr == nil {
				out[i].Status = "success"
				out[i].Output = saved.Name
				succeeded++
				s.conversions.Add(1)
				continue
			}
			err = serr
		}
		out[i].Status = "failed"
		out[i].Error = err.Error()
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":     len(out),
		"succeeded": succeeded,
		"failed":    len(out) - succeeded,
		"style":     styleName,
		"results":   out,
	})
}

// convertBatch runs engine styles through the engine's bounded pool and
// backend styles item by item.
func (s *Server) convertBatch(items []style.BatchItem, styleName string) []style.BatchResult {
	if results, err := s.engine.ConvertBatch(items, styleName); err == nil {
		return results
	}
	results := make([]style.BatchResult, len(items))
	for i, item := range items {
		results[i].ID = item.ID
		if item.Err != nil {
			results[i].Err = item.Err
			continue
		}
		results[i].Frame, results[i].Err = s.backend.Stylize(item.Frame, styleName)
	}
	return results
}

func (s *Server) decodeUpload(fh *multipart.FileHeader) (*frame.Frame, error) {
	if !codec.AllowedExtension(fh.Filename) {
		return nil, fmt.Errorf("%w: unsupported file type %q", codec.ErrInvalidFormat, fh.Filename)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	decoded, _, err := codec.Decode(data, s.limits())
	return decoded, err
}
