package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"inu/internal/registry/models"
	id "inu/pkg/domain"
	dErrors "inu/pkg/domain-errors"
	"inu/pkg/platform/httputil"
	"inu/pkg/requestcontext"
)

// Service is the registry ledger as seen by the HTTP layer.
type Service interface {
	NewDomain(ctx context.Context, name string, caller id.AccountID) (uint64, error)
	TransferOwnership(ctx context.Context, sequenceID uint64, from, to, caller id.AccountID) error
	SetPrimaryDomain(ctx context.Context, name string, caller id.AccountID) error
	Exists(ctx context.Context, name string) (bool, error)
	Domain(ctx context.Context, name string) (models.DomainRecord, error)
	DomainBySequence(ctx context.Context, sequenceID uint64) (models.DomainRecord, error)
	Account(ctx context.Context, account id.AccountID) (models.AccountSummary, error)
	Metadata() models.Metadata
}

// Handler exposes the registry over HTTP.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the public query routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/registry", h.HandleMetadata)
	r.Get("/domains/{name}", h.HandleGetDomain)
	r.Get("/domains/by-sequence/{sequenceID}", h.HandleGetBySequence)
	r.Get("/accounts/{account}", h.HandleGetAccount)
}

// RegisterAuthenticated mounts the mutation routes. The caller must already
// be in the request context.
func (h *Handler) RegisterAuthenticated(r chi.Router) {
	r.Post("/domains", h.HandleNewDomain)
	r.Post("/domains/by-sequence/{sequenceID}/transfer", h.HandleTransfer)
	r.Put("/accounts/me/primary", h.HandleSetPrimary)
}

// HandleNewDomain handles POST /domains.
func (h *Handler) HandleNewDomain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, ok := h.requireCaller(w, ctx)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[NewDomainRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	sequenceID, err := h.service.NewDomain(ctx, req.Name, caller)
	if err != nil {
		h.fail(ctx, w, "new domain", err, "name", req.Name)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, &NewDomainResponse{Name: req.Name, SequenceID: sequenceID})
}

// HandleTransfer handles POST /domains/by-sequence/{sequenceID}/transfer.
func (h *Handler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, ok := h.requireCaller(w, ctx)
	if !ok {
		return
	}

	sequenceID, err := parseSequenceID(chi.URLParam(r, "sequenceID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[TransferRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.TransferOwnership(ctx, sequenceID, req.ParsedFrom(), req.ParsedTo(), caller); err != nil {
		h.fail(ctx, w, "transfer ownership", err, "sequence_id", sequenceID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSetPrimary handles PUT /accounts/me/primary.
func (h *Handler) HandleSetPrimary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, ok := h.requireCaller(w, ctx)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[SetPrimaryRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.SetPrimaryDomain(ctx, req.Name, caller); err != nil {
		h.fail(ctx, w, "set primary domain", err, "name", req.Name)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetDomain handles GET /domains/{name}.
func (h *Handler) HandleGetDomain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	exists, err := h.service.Exists(ctx, name)
	if err != nil {
		h.fail(ctx, w, "get domain", err, "name", name)
		return
	}
	var record models.DomainRecord
	if exists {
		if record, err = h.service.Domain(ctx, name); err != nil {
			h.fail(ctx, w, "get domain", err, "name", name)
			return
		}
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecord(name, record, exists))
}

// HandleGetBySequence handles GET /domains/by-sequence/{sequenceID}.
func (h *Handler) HandleGetBySequence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sequenceID, err := parseSequenceID(chi.URLParam(r, "sequenceID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.service.DomainBySequence(ctx, sequenceID)
	if err != nil {
		h.fail(ctx, w, "get domain by sequence", err, "sequence_id", sequenceID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecord(record.Name, record, true))
}

// HandleGetAccount handles GET /accounts/{account}.
func (h *Handler) HandleGetAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	account, err := id.ParseAccountID(chi.URLParam(r, "account"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	summary, err := h.service.Account(ctx, account)
	if err != nil {
		h.fail(ctx, w, "get account", err, "account", account)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}

// HandleMetadata handles GET /registry.
func (h *Handler) HandleMetadata(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.Metadata())
}

func (h *Handler) requireCaller(w http.ResponseWriter, ctx context.Context) (id.AccountID, bool) {
	caller := requestcontext.Caller(ctx)
	if caller.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.ZeroAccount, false
	}
	return caller, true
}

// fail logs a rejected or failed operation and writes the error response.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, operation string, err error, attrs ...any) {
	args := append([]any{
		"request_id", requestcontext.RequestID(ctx),
		"operation", operation,
		"error", err,
	}, attrs...)
	if dErrors.IsDomain(err) {
		h.logger.WarnContext(ctx, "registry request rejected", args...)
	} else {
		h.logger.ErrorContext(ctx, "registry request failed", args...)
	}
	httputil.WriteError(w, err)
}

func parseSequenceID(raw string) (uint64, error) {
	sequenceID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "sequence id must be a non-negative integer")
	}
	return sequenceID, nil
}
