package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"inu/internal/registrar/models"
	"inu/internal/registrar/service"
	id "inu/pkg/domain"
	dErrors "inu/pkg/domain-errors"
	"inu/pkg/platform/httputil"
	"inu/pkg/requestcontext"
)

// Ledger is one registrar as seen by the HTTP layer.
type Ledger interface {
	ParentDomain() string
	Administrator() id.AccountID
	SetOwnerData(ctx context.Context, info models.OwnerInfo, caller id.AccountID) error
	CreateSubdomain(ctx context.Context, name string, caller id.AccountID) error
	TransferSubdomain(ctx context.Context, name string, target, caller id.AccountID) error
	DeleteSubdomain(ctx context.Context, name string, caller id.AccountID) error
	ChangeSubdomainData(ctx context.Context, name string, profile models.Profile, caller id.AccountID) error
	Subdomain(ctx context.Context, name string) (models.SubdomainView, error)
	HasSubdomain(ctx context.Context, account id.AccountID) (bool, error)
	AllSubdomains(ctx context.Context) ([]string, error)
	SubdomainAt(ctx context.Context, index int) (string, error)
	Info(ctx context.Context) (service.Info, error)
}

// Directory finds and deploys registrars by parent domain.
type Directory interface {
	Open(ctx context.Context, parent string) (Ledger, error)
	Deploy(ctx context.Context, parent string, administrator id.AccountID) (Ledger, error)
}

type directory struct {
	dir *service.Directory
}

// NewDirectory adapts the registrar service directory to the handler.
func NewDirectory(dir *service.Directory) Directory {
	return directory{dir: dir}
}

func (d directory) Open(ctx context.Context, parent string) (Ledger, error) {
	registrar, err := d.dir.Open(ctx, parent)
	if err != nil {
		return nil, err
	}
	return registrar, nil
}

func (d directory) Deploy(ctx context.Context, parent string, administrator id.AccountID) (Ledger, error) {
	registrar, err := d.dir.Deploy(ctx, parent, administrator)
	if err != nil {
		return nil, err
	}
	return registrar, nil
}

// Handler exposes registrars over HTTP, one per parent domain.
type Handler struct {
	directory Directory
	logger    *slog.Logger
}

func New(directory Directory, logger *slog.Logger) *Handler {
	return &Handler{directory: directory, logger: logger}
}

// Register mounts the public query routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/domains/{name}/registrar", h.HandleInfo)
	r.Get("/domains/{name}/subdomains", h.HandleList)
	r.Get("/domains/{name}/subdomains/at/{index}", h.HandleAt)
	r.Get("/domains/{name}/subdomains/{sub}", h.HandleGetSubdomain)
	r.Get("/domains/{name}/holders/{account}", h.HandleHolder)
}

// RegisterAuthenticated mounts the mutation routes.
func (h *Handler) RegisterAuthenticated(r chi.Router) {
	r.Post("/domains/{name}/registrar", h.HandleDeploy)
	r.Put("/domains/{name}/registrar/owner-info", h.HandleSetOwnerInfo)
	r.Post("/domains/{name}/subdomains", h.HandleCreate)
	r.Post("/domains/{name}/subdomains/{sub}/transfer", h.HandleTransfer)
	r.Delete("/domains/{name}/subdomains/{sub}", h.HandleDelete)
	r.Put("/domains/{name}/subdomains/{sub}/data", h.HandleChangeData)
}

// HandleDeploy handles POST /domains/{name}/registrar.
func (h *Handler) HandleDeploy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := requireCaller(w, ctx)
	if !ok {
		return
	}
	parent := chi.URLParam(r, "name")

	ledger, err := h.directory.Deploy(ctx, parent, caller)
	if err != nil {
		h.fail(ctx, w, "deploy", err, "parent", parent)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, &DeployResponse{
		ParentDomain:  ledger.ParentDomain(),
		Administrator: ledger.Administrator(),
	})
}

// HandleSetOwnerInfo handles PUT /domains/{name}/registrar/owner-info.
func (h *Handler) HandleSetOwnerInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := requireCaller(w, ctx)
	if !ok {
		return
	}
	ledger, ok := h.open(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ProfileRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	if err := ledger.SetOwnerData(ctx, req.OwnerInfo(), caller); err != nil {
		h.fail(ctx, w, "set owner data", err, "parent", ledger.ParentDomain())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreate handles POST /domains/{name}/subdomains.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := requireCaller(w, ctx)
	if !ok {
		return
	}
	ledger, ok := h.open(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[CreateSubdomainRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	if err := ledger.CreateSubdomain(ctx, req.Name, caller); err != nil {
		h.fail(ctx, w, "create subdomain", err, "parent", ledger.ParentDomain(), "subdomain", req.Name)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, map[string]string{
		"parent_domain": ledger.ParentDomain(),
		"name":          req.Name,
	})
}

// HandleTransfer handles POST /domains/{name}/subdomains/{sub}/transfer.
func (h *Handler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := requireCaller(w, ctx)
	if !ok {
		return
	}
	ledger, ok := h.open(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[TransferSubdomainRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	sub := chi.URLParam(r, "sub")
	if err := ledger.TransferSubdomain(ctx, sub, req.ParsedTarget(), caller); err != nil {
		h.fail(ctx, w, "transfer subdomain", err, "parent", ledger.ParentDomain(), "subdomain", sub)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete handles DELETE /domains/{name}/subdomains/{sub}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := requireCaller(w, ctx)
	if !ok {
		return
	}
	ledger, ok := h.open(w, r)
	if !ok {
		return
	}

	sub := chi.URLParam(r, "sub")
	if err := ledger.DeleteSubdomain(ctx, sub, caller); err != nil {
		h.fail(ctx, w, "delete subdomain", err, "parent", ledger.ParentDomain(), "subdomain", sub)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleChangeData handles PUT /domains/{name}/subdomains/{sub}/data.
func (h *Handler) HandleChangeData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := requireCaller(w, ctx)
	if !ok {
		return
	}
	ledger, ok := h.open(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ProfileRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	sub := chi.URLParam(r, "sub")
	if err := ledger.ChangeSubdomainData(ctx, sub, req.Profile(), caller); err != nil {
		h.fail(ctx, w, "change subdomain data", err, "parent", ledger.ParentDomain(), "subdomain", sub)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleInfo handles GET /domains/{name}/registrar.
func (h *Handler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ledger, ok := h.open(w, r)
	if !ok {
		return
	}

	info, err := ledger.Info(ctx)
	if err != nil {
		h.fail(ctx, w, "registrar info", err, "parent", ledger.ParentDomain())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, info)
}

// HandleList handles GET /domains/{name}/subdomains.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ledger, ok := h.open(w, r)
	if !ok {
		return
	}

	names, err := ledger.AllSubdomains(ctx)
	if err != nil {
		h.fail(ctx, w, "list subdomains", err, "parent", ledger.ParentDomain())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &SubdomainListResponse{ParentDomain: ledger.ParentDomain(), Subdomains: names})
}

// HandleAt handles GET /domains/{name}/subdomains/at/{index}.
func (h *Handler) HandleAt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "index must be a non-negative integer"))
		return
	}
	ledger, ok := h.open(w, r)
	if !ok {
		return
	}

	name, err := ledger.SubdomainAt(ctx, index)
	if err != nil {
		h.fail(ctx, w, "subdomain at", err, "parent", ledger.ParentDomain(), "index", index)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &SubdomainAtResponse{Index: index, Name: name})
}

// HandleGetSubdomain handles GET /domains/{name}/subdomains/{sub}.
func (h *Handler) HandleGetSubdomain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ledger, ok := h.open(w, r)
	if !ok {
		return
	}

	sub := chi.URLParam(r, "sub")
	view, err := ledger.Subdomain(ctx, sub)
	if err != nil {
		h.fail(ctx, w, "get subdomain", err, "parent", ledger.ParentDomain(), "subdomain", sub)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

// HandleHolder handles GET /domains/{name}/holders/{account}.
func (h *Handler) HandleHolder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	account, err := id.ParseAccountID(chi.URLParam(r, "account"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	ledger, ok := h.open(w, r)
	if !ok {
		return
	}

	holds, err := ledger.HasSubdomain(ctx, account)
	if err != nil {
		h.fail(ctx, w, "has subdomain", err, "parent", ledger.ParentDomain(), "account", account)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &HolderResponse{Account: account, HasSubdomain: holds})
}

func (h *Handler) open(w http.ResponseWriter, r *http.Request) (Ledger, bool) {
	ctx := r.Context()
	parent := chi.URLParam(r, "name")
	ledger, err := h.directory.Open(ctx, parent)
	if err != nil {
		h.fail(ctx, w, "open registrar", err, "parent", parent)
		return nil, false
	}
	return ledger, true
}

func requireCaller(w http.ResponseWriter, ctx context.Context) (id.AccountID, bool) {
	caller := requestcontext.Caller(ctx)
	if caller.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.ZeroAccount, false
	}
	return caller, true
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, operation string, err error, attrs ...any) {
	args := append([]any{
		"request_id", requestcontext.RequestID(ctx),
		"operation", operation,
		"error", err,
	}, attrs...)
	if dErrors.IsDomain(err) {
		h.logger.WarnContext(ctx, "registrar request rejected", args...)
	} else {
		h.logger.ErrorContext(ctx, "registrar request failed", args...)
	}
	httputil.WriteError(w, err)
}
