package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/go-ulidgen/internal/application/generator"
	"github.com/go-ulidgen/internal/domain"
	"github.com/go-ulidgen/internal/pkg/id"
	"github.com/go-ulidgen/internal/pkg/logging"
)

// maxBodyBytes bounds POST /v1/ulids request bodies.
const maxBodyBytes = 1 << 16

// ULIDHandler serves generation and inspection.
type ULIDHandler struct {
	svc    generator.Service
	logger *slog.Logger
}

func NewULIDHandler(svc generator.Service, logger *slog.Logger) *ULIDHandler {
	if logger == nil {
		logger = logging.Nop()
	}
	return &ULIDHandler{svc: svc, logger: logger}
}

// List handles GET /v1/ulids?count=&case=&timestamp=&datetime=.
func (h *ULIDHandler) List(w http.ResponseWriter, r *http.Request) {
	req, err := requestFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.generate(w, r, req)
}

// Create handles POST /v1/ulids with a JSON GenerationRequest body. A missing count means 1.
func (h *ULIDHandler) Create(w http.ResponseWriter, r *http.Request) {
	req := domain.GenerationRequest{Count: 1}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.generate(w, r, req)
}

// Get handles GET /v1/ulids/{ulid}.
func (h *ULIDHandler) Get(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Inspect(r.Context(), chi.URLParam(r, "ulid"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInspectionEnvelope(res))
}

func (h *ULIDHandler) generate(w http.ResponseWriter, r *http.Request, req domain.GenerationRequest) {
	ulids, err := h.svc.Generate(r.Context(), req)
	if err != nil {
		if httpStatus(err) == http.StatusInternalServerError {
			logging.Event(r.Context(), h.logger, slog.LevelError, "generate_failed", slog.Any("error", err))
		}
		httpError(w, err)
		return
	}
	c := req.Case
	if c == "" {
		c = domain.CaseUpper
	}
	writeJSON(w, http.StatusOK, ULIDsEnvelope{ULIDs: id.EncodeAll(ulids, c)})
}

func requestFromQuery(r *http.Request) (domain.GenerationRequest, error) {
	q := r.URL.Query()
	req := domain.GenerationRequest{Count: 1, Case: domain.Case(q.Get("case"))}
	if v := q.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, errInvalidQuery("count", v)
		}
		req.Count = n
	}
	if v := q.Get("timestamp"); v != "" {
		ms, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return req, errInvalidQuery("timestamp", v)
		}
		req.TimestampMs = &ms
	}
	if q.Has("datetime") {
		dt := q.Get("datetime")
		req.Datetime = &dt
	}
	return req, nil
}

type queryError struct{ param, value string }

func (e *queryError) Error() string {
	return "invalid " + e.param + " parameter " + strconv.Quote(e.value)
}

func errInvalidQuery(param, value string) error { return &queryError{param: param, value: value} }
