package api

import (
	"github.com/goccy/go-json"
	"github.com/maxaizer/job-board/internal/logger"
	log "github.com/sirupsen/logrus"
	"net/http"
)

const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeInternal         = "INTERNAL_ERROR"
	ErrCodeDatabase         = "DATABASE_ERROR"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type insertAck struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type updateAck struct {
	Acknowledged  bool `json:"acknowledged"`
	MatchedCount  int  `json:"matchedCount"`
	ModifiedCount int  `json:"modifiedCount"`
}

type deleteAck struct {
	Acknowledged bool `json:"acknowledged"`
	DeletedCount int  `json:"deletedCount"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).Errorf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func boolToCount(b bool) int {
	if b {
		return 1
	}
	return 0
}
