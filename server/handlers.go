package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"pixswap/contracts"
	"pixswap/probe"
	"pixswap/session"
)

type noticeView struct {
	Text string `json:"text"`
	Kind string `json:"kind"`
}

type resultView struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Extension string `json:"extension"`
	Size      int    `json:"size"`
	Filename  string `json:"filename"`
}

type stateView struct {
	Selected int         `json:"selected"`
	Notice   *noticeView `json:"notice"`
	Result   *resultView `json:"result"`
	Source   *probe.Info `json:"source,omitempty"`
}

func stateOf(sess *session.Session) stateView {
	view := stateView{Selected: sess.Selected()}
	if n := sess.Notice(); n != nil {
		view.Notice = &noticeView{Text: n.Text, Kind: n.Kind.String()}
	}
	if r := sess.Result(); r != nil {
		view.Result = &resultView{
			Width:     r.Width,
			Height:    r.Height,
			Extension: r.Extension,
			Size:      len(r.Data),
			Filename:  r.DownloadName(),
		}
	}
	return view
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, contracts.Presets)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	writeJSON(w, http.StatusOK, stateOf(sess))
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)

	var req struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := sess.Select(req.Index); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stateOf(sess))
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "upload too large"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing file field"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("reading upload: %v", err)})
		return
	}

	declared := header.Header.Get("Content-Type")
	sess.Submit(contracts.Upload{
		Name:         header.Filename,
		DeclaredType: declared,
		Data:         data,
	})

	view := stateOf(sess)
	if view.Result != nil {
		info := probe.Inspect(data, declared)
		if info != (probe.Info{}) {
			view.Source = &info
		}
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.Reset()
	writeJSON(w, http.StatusOK, stateOf(sess))
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.DismissResult()
	writeJSON(w, http.StatusOK, stateOf(sess))
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	result := sess.Result()
	if result == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no result"})
		return
	}
	w.Header().Set("Content-Type", result.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", result.DownloadName()))
	_, _ = w.Write(result.Data)
}
