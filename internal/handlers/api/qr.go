package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"

	gameService "github.com/jpcodeman/partygame/internal/services/game"
)

const qrSize = 320

// handleQRCode renders a PNG QR code linking to the team join page
func (s *Server) handleQRCode(w http.ResponseWriter, r *http.Request) {
	out, err := s.games.GetGame(r.Context(), &gameService.GetGameInput{GameCode: chi.URLParam(r, "code")})
	if err != nil {
		writeError(w, r, err)
		return
	}

	png, err := qrcode.Encode(s.joinURL(r, out.Game.GameCode), qrcode.Medium, qrSize)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(png)
}

// joinURL is <public-url>/team/<code>. Without a configured public URL the
// request's own scheme and host are used.
func (s *Server) joinURL(r *http.Request, code string) string {
	base := s.publicURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}
		base = scheme + "://" + r.Host
	}
	return base + "/team/" + code
}
