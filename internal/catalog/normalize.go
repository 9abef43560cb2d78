package catalog

import (
	"bytes"
	"encoding/json"
	"math"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Document is the JSON shape served by the catalog source.
type Document struct {
	Entries []RawEntry `json:"entries"`
}

// RawEntry mirrors one element of Document.Entries before normalization.
type RawEntry struct {
	File          string          `json:"file"`
	FileSizeBytes int64           `json:"fileSizeBytes"`
	Dimensions    Dimensions      `json:"dimensions"`
	Size          string          `json:"size"`
	DataVersion   int             `json:"dataVersion"`
	Version       string          `json:"version"`
	TimeCreated   json.RawMessage `json:"timeCreated"`
	Author        string          `json:"author"`
	HasImage      bool            `json:"has_image"`
}

// PathOptions controls how download and render references are derived from
// an entry's file name.
type PathOptions struct {
	FileBase   string
	RenderBase string
	RenderExt  string
}

// DefaultPathOptions returns the layout used by the public catalog.
func DefaultPathOptions() PathOptions {
	return PathOptions{
		FileBase:   "files/",
		RenderBase: "renders/",
		RenderExt:  ".webp",
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Normalize converts raw entries into immutable Entries in load order.
func Normalize(raw []RawEntry, opts PathOptions) []Entry {
	entries := make([]Entry, 0, len(raw))
	for idx, r := range raw {
		file := norm.NFC.String(strings.TrimSpace(r.File))
		entry := Entry{
			ID:            entryID(file, idx),
			File:          file,
			Author:        norm.NFC.String(strings.TrimSpace(r.Author)),
			Version:       strings.TrimSpace(r.Version),
			Size:          strings.TrimSpace(r.Size),
			FileSizeBytes: r.FileSizeBytes,
			Dimensions:    r.Dimensions,
			DataVersion:   r.DataVersion,
			CreatedAt:     parseTimeCreated(r.TimeCreated),
			FilePath:      opts.FileBase + url.PathEscape(file),
		}
		if r.HasImage {
			entry.RenderPath = opts.RenderBase + url.PathEscape(renderName(file, opts.RenderExt))
		}
		entries = append(entries, entry)
	}
	return entries
}

func renderName(file, ext string) string {
	stem := strings.TrimSuffix(file, path.Ext(file))
	return stem + ext
}

// parseTimeCreated accepts a JSON number, a numeric string or a date string.
// Anything else maps to 0.
func parseTimeCreated(raw json.RawMessage) int64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		return parseTimeString(s)
	}

	return parseNumeric(string(raw))
}

func parseTimeString(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n := parseNumeric(s); n != 0 {
		return n
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Unix()
		}
	}
	return 0
}

func parseNumeric(s string) int64 {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f < -(1<<63) || f >= 1<<63 {
		return 0
	}
	return int64(f)
}
