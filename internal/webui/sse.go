package webui

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// handleEvents streams a run's frames over server-sent events. Earlier
// frames are replayed first so late subscribers see the full run.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	active, ok := s.lookup(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	offset := 0
	for {
		frames, closed := active.hub.snapshot(offset)
		for _, f := range frames {
			if err := writeFrame(w, f); err != nil {
				return
			}
		}
		offset += len(frames)
		if len(frames) > 0 {
			flusher.Flush()
		}
		if closed {
			writeDone(w, active)
			flusher.Flush()
			return
		}
		select {
		case <-active.hub.wait(offset):
		case <-r.Context().Done():
			return
		}
	}
}

func writeFrame(w http.ResponseWriter, f frame) error {
	switch f.kind {
	case frameToken:
		// Tokens may span lines, so they travel JSON-encoded.
		data, err := json.Marshal(f.data)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "event: token\ndata: %s\n\n", data)
		return err
	case frameEvent:
		data, err := json.Marshal(map[string]json.RawMessage{
			"name":    rawJSONString(f.name),
			"payload": json.RawMessage(f.data),
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "event: lifecycle\ndata: %s\n\n", data)
		return err
	}
	return nil
}

func writeDone(w http.ResponseWriter, active *run) {
	result, done, err := active.outcome()
	if !done {
		return
	}
	payload := map[string]any{
		"report_found": result.ReportFound,
		"report_file":  result.ReportFile,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	data, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: done\ndata: %s\n\n", data)
}

func rawJSONString(s string) json.RawMessage {
	data, _ := json.Marshal(s)
	return data
}
