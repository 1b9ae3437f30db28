package httpserver

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// handleReload rebuilds or re-reads the outcome table through Options.Reload
// and serves it to sessions created from now on.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.opts.AdminKeyHash == "" || s.opts.Reload == nil {
		writeError(w, http.StatusForbidden, "admin_disabled", nil)
		return
	}
	if !s.checkAdminKey(r.Header.Get("X-Admin-Key")) {
		writeError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	t, err := s.opts.Reload(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("reload table")
		writeError(w, http.StatusInternalServerError, "reload_failed", err)
		return
	}
	s.setTable(t)
	log.Info().Int("guesses", t.NumGuesses()).Int("secrets", t.NumSecrets()).Msg("table reloaded")
	writeJSON(w, http.StatusOK, map[string]int{"guesses": t.NumGuesses(), "secrets": t.NumSecrets()})
}
