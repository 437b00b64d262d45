package server

import (
	"embed"
	"html/template"
	"net/http"

	"pixswap/contracts"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := pageTemplate.Execute(w, struct {
		Presets  []contracts.Preset
		Selected int
	}{
		Presets:  contracts.Presets,
		Selected: sess.Selected(),
	})
	if err != nil {
		s.log.Error("rendering page", "error", err)
	}
}
