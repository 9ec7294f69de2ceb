package web

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"battledemo/internal/present"
)

// audioExtensions lists file extensions to try for a cue's static file.
var audioExtensions = []string{".mp3", ".ogg", ".wav", ".m4a"}

// Content types for audio (used in handler and tests).
const (
	contentTypeMP3 = "audio/mpeg"
	contentTypeOGG = "audio/ogg"
	contentTypeWAV = "audio/wav"
	contentTypeM4A = "audio/mp4"
)

// handleAudio serves a sound cue. URL shape: /audio/<cue>. A file in
// <StaticDir>/audio/ named after the cue wins (server tries .mp3, .ogg, .wav,
// .m4a); otherwise the cue's beeps are synthesized into a WAV.
func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cue := present.Cue(strings.Trim(strings.TrimPrefix(r.URL.Path, "/audio/"), "/"))
	if !knownCue(cue) {
		http.NotFound(w, r)
		return
	}

	if candidates, ok := s.assetCandidates("audio", string(cue), audioExtensions); ok {
		for _, p := range candidates {
			if s.serveAudioFile(w, r, p) {
				return
			}
		}
	}

	wav, ok := synthesizeCue(cue)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", contentTypeWAV)
	w.Header().Set("Cache-Control", assetCacheControl)
	http.ServeContent(w, r, string(cue)+".wav", time.Time{}, bytes.NewReader(wav))
}

func (s *Server) serveAudioFile(w http.ResponseWriter, r *http.Request, p string) bool {
	f, err := os.Open(p) // #nosec G304 -- p is under the validated static audio dir
	if err != nil {
		return false
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}

	contentType := contentTypeMP3
	switch strings.ToLower(filepath.Ext(p)) {
	case ".ogg":
		contentType = contentTypeOGG
	case ".wav":
		contentType = contentTypeWAV
	case ".m4a":
		contentType = contentTypeM4A
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", assetCacheControl)
	http.ServeContent(w, r, filepath.Base(p), info.ModTime(), f)
	return true
}

func knownCue(c present.Cue) bool {
	for _, known := range present.Cues {
		if c == known {
			return true
		}
	}
	return false
}
