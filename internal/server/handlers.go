package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/deusflow/newsroom/internal/logger"
	"github.com/deusflow/newsroom/internal/speech"
	"github.com/deusflow/newsroom/internal/summary"
	"github.com/deusflow/newsroom/internal/topics"
	"github.com/deusflow/newsroom/internal/translate"
	"github.com/deusflow/newsroom/internal/writer"
)

var internalError = failure{message: "Internal server error", details: true}

func (s *Server) handleWrite(w http.ResponseWriter, r *http.Request) {
	var req writer.Request
	if err := s.decode(w, r, &req, "Input content is required"); err != nil {
		s.fail(w, r, err, internalError)
		return
	}
	res, err := s.Writer.Write(r.Context(), req)
	if err != nil {
		s.fail(w, r, err, internalError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHotTopics(w http.ResponseWriter, r *http.Request) {
	res := s.Topics.Hot(r.Context(), topics.ParseSources(r.URL.Query().Get("sources")))
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translate.TextRequest
	if err := s.decode(w, r, &req, "Text is required"); err != nil {
		s.fail(w, r, err, failure{})
		return
	}
	res, err := s.Translate.Translate(r.Context(), req)
	if err != nil {
		s.fail(w, r, err, failure{message: "Failed to translate text"})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSpellCheck(w http.ResponseWriter, r *http.Request) {
	var req translate.SpellRequest
	if err := s.decode(w, r, &req, "Text is required"); err != nil {
		s.fail(w, r, err, failure{})
		return
	}
	res, err := s.Translate.SpellCheck(r.Context(), req)
	if err != nil {
		s.fail(w, r, err, failure{message: "Failed to check spelling"})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleTranslateURL(w http.ResponseWriter, r *http.Request) {
	var req translate.URLRequest
	if err := s.decode(w, r, &req, "URL and direction are required"); err != nil {
		s.fail(w, r, err, failure{})
		return
	}
	res, err := s.Translate.TranslateURL(r.Context(), req)
	if err != nil {
		s.fail(w, r, err, failure{message: "Lỗi server khi xử lý URL"})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	var req summary.Request
	if err := s.decode(w, r, &req, "URL is required"); err != nil {
		s.fail(w, r, err, failure{})
		return
	}
	res, err := s.Summary.Summarize(r.Context(), req)
	if err != nil {
		s.fail(w, r, err, failure{message: "Failed to summarize content", details: true})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDigestHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Digest.Health(r.URL.Query().Get("debug") == "true"))
}

func (s *Server) handleDigest(w http.ResponseWriter, r *http.Request) {
	var req summary.Request
	if err := s.decode(w, r, &req, "URL is required"); err != nil {
		s.fail(w, r, err, failure{})
		return
	}
	res, err := s.Digest.Digest(r.Context(), req)
	if err != nil {
		s.fail(w, r, err, failure{message: "Lỗi xử lý yêu cầu tóm tắt", details: true})
		return
	}
	if req.Mode == summary.ModeCategory {
		s.cacheResult(res.FromCache)
	}
	writeJSON(w, http.StatusOK, res)
}

// speechError is the error body of both speech endpoints.
type speechError struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	ErrorCode *int   `json:"errorCode,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

func (s *Server) speechFail(w http.ResponseWriter, r *http.Request, err error, withDetails bool) {
	code, msg := statusFor(err)
	resp := speechError{Error: msg}
	if code >= http.StatusInternalServerError || code == http.StatusRequestTimeout {
		logger.Error("speech request failed", "path", r.URL.Path, "status", code, "error", err)
		s.Metrics.SetError(err.Error())
		var se *speech.ServiceError
		if errors.As(err, &se) {
			if n, has := se.ErrorCode(); has {
				resp.ErrorCode = &n
			}
			if withDetails && se.Err != nil {
				resp.Details = se.Err.Error()
			}
		}
		resp.Timestamp = s.now().UTC().Format(time.RFC3339)
	}
	writeJSON(w, code, resp)
}

func (s *Server) handleTTSHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.TTS.Health(s.now()))
}

func (s *Server) handleTTS(w http.ResponseWriter, r *http.Request) {
	var req speech.TTSRequest
	if err := s.decode(w, r, &req, "Text is required"); err != nil {
		s.speechFail(w, r, err, false)
		return
	}
	res, err := s.TTS.Speak(r.Context(), req)
	if err != nil {
		s.speechFail(w, r, err, false)
		return
	}
	s.cacheResult(res.FromCache)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSTTHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.STT.Health(s.now()))
}

func (s *Server) handleSTT(w http.ResponseWriter, r *http.Request) {
	var req speech.STTRequest
	if err := s.decode(w, r, &req, "Audio data is required"); err != nil {
		s.speechFail(w, r, err, true)
		return
	}
	res, err := s.STT.Transcribe(r.Context(), req)
	if err != nil {
		s.speechFail(w, r, err, true)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
