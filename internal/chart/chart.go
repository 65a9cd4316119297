package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Section is one structural segment of a song as the model describes it.
// All fields are free text: the model sometimes emits bar counts like
// "8x (last bar 2/4)" so Bars is deliberately not an integer.
type Section struct {
	Name  string `json:"section"`
	Bars  string `json:"bars"`
	Feel  string `json:"feel"`
	Notes string `json:"notes"`
}

// Chart is the unit handed to a renderer: an ordered list of sections plus
// the display title and an optional logo image path. Section order is
// presentation order; renderers never reorder.
type Chart struct {
	Title    string
	Sections []Section
	LogoPath string
}

// audioExts are the upload formats the tool accepts. CleanTitle strips them
// from filenames and the server uses them to reject other uploads.
var audioExts = []string{".mp3", ".wav", ".m4a"}

// CleanTitle derives a display title from a source filename by stripping
// each known audio extension once, case-sensitive. Names without a known
// extension pass through unchanged.
func CleanTitle(name string) string {
	for _, ext := range audioExts {
		name = strings.Replace(name, ext, "", 1)
	}
	return name
}

// IsAudioFile reports whether path has one of the supported audio extensions.
func IsAudioFile(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range audioExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// MIMEType maps a filename to the MIME type sent with the upload.
// Unknown extensions fall back to audio/mp3, which is what the hosted
// model assumes anyway.
func MIMEType(name string) string {
	switch {
	case strings.HasSuffix(strings.ToLower(name), ".wav"):
		return "audio/wav"
	case strings.HasSuffix(strings.ToLower(name), ".m4a"):
		return "audio/mp4"
	default:
		return "audio/mp3"
	}
}

// ParseSections decodes the model's JSON response into sections. The model
// is asked for a bare JSON array, but responses occasionally arrive wrapped
// in Markdown code fences or nested under a single object key, so both are
// tolerated. Records with missing keys decode to empty strings.
func ParseSections(data []byte) ([]Section, error) {
	data = stripFences(data)

	var sections []Section
	if err := json.Unmarshal(data, &sections); err == nil {
		return sections, nil
	}

	// Some responses wrap the array in an object, e.g. {"sections": [...]}.
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("parse sections: %w", err)
	}
	for _, raw := range wrapper {
		var sections []Section
		if err := json.Unmarshal(raw, &sections); err == nil {
			return sections, nil
		}
	}

	return nil, fmt.Errorf("parse sections: no section array in response")
}

// stripFences removes a surrounding Markdown code fence (``` or ```json)
// if the model added one despite the JSON response MIME type.
func stripFences(data []byte) []byte {
	trimmed := bytes.TrimSpace(data)
	if !bytes.HasPrefix(trimmed, []byte("```")) {
		return trimmed
	}
	if idx := bytes.IndexByte(trimmed, '\n'); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = bytes.TrimSuffix(bytes.TrimSpace(trimmed), []byte("```"))
	return bytes.TrimSpace(trimmed)
}
