package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-ulidgen/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// ULIDsEnvelope wraps a generated batch.
type ULIDsEnvelope struct {
	ULIDs []string `json:"ulids"`
}

// InspectionEnvelope is the JSON view of domain.InspectionResult.
type InspectionEnvelope struct {
	ULID      string `json:"ulid"`
	Timestamp string `json:"timestamp"`
	UnixMs    uint64 `json:"unix_ms"`
	Random    string `json:"random"`
}

func toInspectionEnvelope(res *domain.InspectionResult) InspectionEnvelope {
	return InspectionEnvelope{
		ULID:      res.Canonical,
		Timestamp: res.Time.Format(domain.TimeLayout),
		UnixMs:    res.UnixMilli,
		Random:    res.Random.Hex(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg, ErrorCode: status})
}
