package web

import (
	"bytes"
	"encoding/binary"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"battledemo/internal/present"
)

// minimalMP3 returns a minimal blob that looks like an MP3 (frame sync bytes) for test fixtures.
func minimalMP3(t *testing.T) []byte {
	t.Helper()
	// MPEG frame sync: 0xFF 0xFB (or 0xFF 0xFA)
	return []byte{0xff, 0xfb, 0x90, 0x00, 0x00, 0x00, 0x00, 0x00}
}

func TestHandleAudio_ServesStaticFile(t *testing.T) {
	srv := &Server{StaticDir: t.TempDir()}
	audioDir := filepath.Join(srv.StaticDir, "audio")
	if err := os.MkdirAll(audioDir, 0o750); err != nil {
		t.Fatalf("mkdir audio: %v", err)
	}
	if err := os.WriteFile(filepath.Join(audioDir, "attack.mp3"), minimalMP3(t), 0o600); err != nil {
		t.Fatalf("write attack.mp3: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/audio/attack", http.NoBody)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("GET /audio/attack: expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != contentTypeMP3 {
		t.Errorf("Content-Type: expected %s, got %q", contentTypeMP3, ct)
	}
	if !bytes.Equal(rec.Body.Bytes(), minimalMP3(t)) {
		t.Error("Expected the static file body")
	}
}

func TestHandleAudio_SynthesizesEveryCue(t *testing.T) {
	srv := &Server{StaticDir: t.TempDir()}
	for _, cue := range present.Cues {
		req := httptest.NewRequest(http.MethodGet, "/audio/"+string(cue), http.NoBody)
		rec := httptest.NewRecorder()
		srv.Routes().ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("GET /audio/%s: expected 200, got %d", cue, rec.Code)
			continue
		}
		if ct := rec.Header().Get("Content-Type"); ct != contentTypeWAV {
			t.Errorf("%s Content-Type: expected %s, got %q", cue, contentTypeWAV, ct)
		}
		if !bytes.HasPrefix(rec.Body.Bytes(), []byte("RIFF")) {
			t.Errorf("%s: expected a RIFF header", cue)
		}
	}
}

func TestHandleAudio_UnknownCue_NotFound(t *testing.T) {
	srv := &Server{StaticDir: t.TempDir()}
	for _, p := range []string{"/audio/", "/audio/ambient", "/audio/../battle", "/audio/attack/../../etc/passwd"} {
		req := httptest.NewRequest(http.MethodGet, "http://example.com"+p, http.NoBody)
		rec := httptest.NewRecorder()
		srv.handleAudio(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s: expected 404, got %d", p, rec.Code)
		}
	}
}

func TestHandleAudio_MethodNotAllowed(t *testing.T) {
	srv := &Server{StaticDir: t.TempDir()}
	req := httptest.NewRequest(http.MethodPost, "/audio/attack", http.NoBody)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /audio/attack: expected 405, got %d", rec.Code)
	}
}

func TestAssetCandidates_RejectsTraversal(t *testing.T) {
	srv := &Server{StaticDir: "static"}
	for _, name := range []string{"", ".", "..", "../x", "a/b", `a\b`, "/etc/passwd"} {
		if _, ok := srv.assetCandidates("audio", name, audioExtensions); ok {
			t.Errorf("Expected %q to be rejected", name)
		}
	}
	got, ok := srv.assetCandidates("audio", "guard", []string{".ogg"})
	if !ok || len(got) != 2 || got[1] != filepath.Join("static", "audio", "guard.ogg") {
		t.Errorf("Unexpected candidates %v (ok=%v)", got, ok)
	}
}

func TestSynthesizeCue_WAVHeader(t *testing.T) {
	b, ok := synthesizeCue(present.CueVictory)
	if !ok {
		t.Fatal("Expected victory to synthesize")
	}
	if string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" || string(b[36:40]) != "data" {
		t.Fatalf("Unexpected header %q", b[:44])
	}
	if rate := binary.LittleEndian.Uint32(b[24:28]); rate != sampleRate {
		t.Errorf("Expected sample rate %d, got %d", sampleRate, rate)
	}
	dataLen := binary.LittleEndian.Uint32(b[40:44])
	if int(dataLen) != len(b)-44 {
		t.Errorf("Expected data length %d, got %d", len(b)-44, dataLen)
	}
	// 0.12s offset + 0.13s note + 10ms tail
	wantSamples := int(0.26*sampleRate) + 1
	if got := int(dataLen) / 2; got < wantSamples-2 || got > wantSamples+2 {
		t.Errorf("Expected about %d samples, got %d", wantSamples, got)
	}

	if _, ok := synthesizeCue("ambient"); ok {
		t.Error("Expected unknown cue to fail")
	}
}

func TestBeepEnvelope(t *testing.T) {
	b := beep{duration: 0.1, volume: 0.05}
	if got := b.envelope(0); got != 0.001 {
		t.Errorf("Expected envelope to start at 0.001, got %v", got)
	}
	if got := b.envelope(0.02); got < 0.0499 || got > 0.0501 {
		t.Errorf("Expected peak volume at 20ms, got %v", got)
	}
	if got := b.envelope(0.2); got != 0.001 {
		t.Errorf("Expected envelope floor after the note, got %v", got)
	}
}
