package server

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"drumcharter/internal/chart"
	"drumcharter/internal/render"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

func (s *implServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		HasServerKey bool
	}{
		HasServerKey: len(s.cfg.Gemini.APIKeys) > 0,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.logger.Error(r.Context(), "Render index: %v", err)
	}
}

func (s *implServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze accepts a multipart audio upload, runs the model analysis
// and stores the result in the caller's session for later editing.
func (s *implServer) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	maxBytes := s.cfg.Limits.MaxUploadMB << 20

	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "upload too large or malformed")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing audio file")
		return
	}
	defer file.Close()

	if !chart.IsAudioFile(header.Filename) {
		writeError(w, http.StatusBadRequest, "unsupported file type, expected .mp3, .wav or .m4a")
		return
	}

	audio, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read upload: "+err.Error())
		return
	}

	// Explicit key from the form wins over configured/environment keys.
	apiKey := r.FormValue("api_key")

	s.logger.Info(ctx, "Analyzing upload %s (%d bytes)", header.Filename, len(audio))
	sections, err := s.analyzer.Analyze(ctx, audio, chart.MIMEType(header.Filename), apiKey)
	if err != nil {
		s.logger.Error(ctx, "Analysis failed for %s: %v", header.Filename, err)
		writeError(w, http.StatusBadGateway, "analysis failed: "+err.Error())
		return
	}

	result := analysis{
		Title:    chart.CleanTitle(header.Filename),
		Sections: sections,
	}
	s.sessions.put(sessionID(w, r), result)

	writeJSON(w, http.StatusOK, result)
}

type chartRequest struct {
	Title    string          `json:"title"`
	Sections []chart.Section `json:"sections"`
	Format   string          `json:"format"`
}

// handleChart renders the posted (possibly user-edited) sections as a
// downloadable document. A request without sections falls back to the
// caller's last analysis.
func (s *implServer) handleChart(w http.ResponseWriter, r *http.Request) {
	var req chartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Sections == nil {
		stored, ok := s.sessions.get(sessionID(w, r))
		if !ok {
			writeError(w, http.StatusBadRequest, "no sections given and no previous analysis")
			return
		}
		req.Sections = stored.Sections
		if req.Title == "" {
			req.Title = stored.Title
		}
	}

	c := chart.Chart{
		Title:    chart.CleanTitle(req.Title),
		Sections: req.Sections,
		LogoPath: s.cfg.Chart.LogoPath,
	}

	var (
		data        []byte
		err         error
		ext         string
		contentType string
	)
	switch req.Format {
	case "docx":
		data, err = render.DOCX(c)
		ext = "docx"
		contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		data, err = render.PDF(c)
		ext = "pdf"
		contentType = "application/pdf"
	}
	if err != nil {
		s.logger.Error(r.Context(), "Render chart %q: %v", c.Title, err)
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}

	filename := c.Title + "_chart." + ext
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
