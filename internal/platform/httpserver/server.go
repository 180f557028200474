package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	campaignservice "socialdesk/contexts/agency/campaign-service"
	campaignerrors "socialdesk/contexts/agency/campaign-service/domain/errors"
	"socialdesk/contexts/agency/campaign-service/domain/normalize"
	"socialdesk/contexts/agency/campaign-service/ports"
	campaignhttp "socialdesk/contexts/agency/campaign-service/transport/http"
	clientservice "socialdesk/contexts/agency/client-service"
	clienterrors "socialdesk/contexts/agency/client-service/domain/errors"
	"socialdesk/internal/platform/ratelimit"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "socialdesk/internal/platform/httpserver/docs"
)

// Per-owner budgets, tokens per minute.
const (
	ActionCampaignCreate  = "campaign.create"
	ActionCampaignList    = "campaign.list"
	ActionCampaignGet     = "campaign.get"
	ActionCampaignUpdate  = "campaign.update"
	ActionCampaignDelete  = "campaign.delete"
	ActionCampaignReorder = "campaign.reorder"
	ActionClientCreate    = "client.create"
	ActionClientList      = "client.list"
	ActionClientGet       = "client.get"
	ActionClientUpdate    = "client.update"
	ActionClientDelete    = "client.delete"
)

// DefaultRateRules is the production budget table. Reads get a wider
// budget than writes.
func DefaultRateRules() map[string]ratelimit.Rule {
	return map[string]ratelimit.Rule{
		ActionCampaignCreate:  {PerMinute: 20},
		ActionCampaignList:    {PerMinute: 60},
		ActionCampaignGet:     {PerMinute: 60},
		ActionCampaignUpdate:  {PerMinute: 30},
		ActionCampaignDelete:  {PerMinute: 20},
		ActionCampaignReorder: {PerMinute: 20},
		ActionClientCreate:    {PerMinute: 20},
		ActionClientList:      {PerMinute: 60},
		ActionClientGet:       {PerMinute: 60},
		ActionClientUpdate:    {PerMinute: 30},
		ActionClientDelete:    {PerMinute: 20},
	}
}

type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	campaigns campaignservice.Module
	clients   clientservice.Module
	events    ports.EventSubscriber
	limiter   *ratelimit.Limiter
}

type Options struct {
	Campaigns campaignservice.Module
	Clients   clientservice.Module
	Events    ports.EventSubscriber
	Limiter   *ratelimit.Limiter
	Logger    *slog.Logger
	Addr      string
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	addr := opts.Addr
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		campaigns: opts.Campaigns,
		clients:   opts.Clients,
		events:    opts.Events,
		limiter:   opts.Limiter,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /campaigns", s.handleListCampaigns)
	s.mux.HandleFunc("POST /campaigns", s.handleCreateCampaign)
	s.mux.HandleFunc("PATCH /campaigns", s.handleReorderCampaigns)
	s.mux.HandleFunc("GET /campaigns/events", s.handleCampaignEvents)
	s.mux.HandleFunc("GET /campaigns/{campaign_id}", s.handleGetCampaign)
	s.mux.HandleFunc("PATCH /campaigns/{campaign_id}", s.handleUpdateCampaign)
	s.mux.HandleFunc("DELETE /campaigns/{campaign_id}", s.handleDeleteCampaign)

	s.mux.HandleFunc("GET /clients", s.handleListClients)
	s.mux.HandleFunc("POST /clients", s.handleCreateClient)
	s.mux.HandleFunc("GET /clients/{client_id}", s.handleGetClient)
	s.mux.HandleFunc("PATCH /clients/{client_id}", s.handleUpdateClient)
	s.mux.HandleFunc("DELETE /clients/{client_id}", s.handleDeleteClient)
}

// authorize resolves the owner id and applies the action's rate budget.
// It writes the error response itself and returns ok=false when the
// request must not proceed.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request, action string) (string, bool) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "X-User-Id header is required")
		return "", false
	}
	if s.limiter != nil {
		allowed, retryAfter := s.limiter.Allow(userID, action)
		if !allowed {
			seconds := int(retryAfter.Round(time.Second) / time.Second)
			if seconds < 1 {
				seconds = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			writeError(w, http.StatusTooManyRequests, "Too many requests, slow down")
			return "", false
		}
	}
	return userID, true
}

func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authorize(w, r, ActionCampaignCreate)
	if !ok {
		return
	}
	var req campaignhttp.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.campaigns.Handler.CreateCampaignHandler(r.Context(), userID, req)
	if err != nil {
		s.writeCampaignDomainError(w, err, http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authorize(w, r, ActionCampaignList)
	if !ok {
		return
	}
	query := r.URL.Query()
	req := normalize.QueryRequest{
		ClientID: query.Get("clientId"),
		Status:   query.Get("status"),
		From:     query.Get("from"),
		To:       query.Get("to"),
	}
	resp, err := s.campaigns.Handler.ListCampaignsHandler(r.Context(), userID, req)
	if err != nil {
		// Filter problems arrive via query string, not a body.
		s.writeCampaignDomainError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authorize(w, r, ActionCampaignGet)
	if !ok {
		return
	}
	resp, err := s.campaigns.Handler.GetCampaignHandler(r.Context(), userID, r.PathValue("campaign_id"))
	if err != nil {
		s.writeCampaignDomainError(w, err, http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authorize(w, r, ActionCampaignUpdate)
	if !ok {
		return
	}
	var req campaignhttp.UpdateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.campaigns.Handler.UpdateCampaignHandler(r.Context(), userID, r.PathValue("campaign_id"), req)
	if err != nil {
		s.writeCampaignDomainError(w, err, http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authorize(w, r, ActionCampaignDelete)
	if !ok {
		return
	}
	if err := s.campaigns.Handler.DeleteCampaignHandler(r.Context(), userID, r.PathValue("campaign_id")); err != nil {
		s.writeCampaignDomainError(w, err, http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, campaignhttp.SuccessResponse{Success: true})
}

func (s *Server) handleReorderCampaigns(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authorize(w, r, ActionCampaignReorder)
	if !ok {
		return
	}
	var req campaignhttp.ReorderCampaignsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if err := s.campaigns.Handler.ReorderCampaignsHandler(r.Context(), userID, req); err != nil {
		s.writeCampaignDomainError(w, err, http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, campaignhttp.SuccessResponse{Success: true})
}

func (s *Server) writeCampaignDomainError(w http.ResponseWriter, err error, validationStatus int) {
	var validation *normalize.ValidationError
	switch {
	case errors.As(err, &validation):
		writeError(w, validationStatus, validation.Message)
	case errors.Is(err, campaignerrors.ErrCampaignNotFound):
		writeError(w, http.StatusNotFound, "Campaign not found")
	case errors.Is(err, campaignerrors.ErrOwnerRequired):
		writeError(w, http.StatusUnauthorized, "X-User-Id header is required")
	default:
		s.logger.Error("campaign request failed",
			"event", "campaign_request_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeError(w, http.StatusInternalServerError, "Something went wrong, try again later")
	}
}

func (s *Server) writeClientDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, clienterrors.ErrClientNotFound):
		writeError(w, http.StatusNotFound, "Client not found")
	case errors.Is(err, clienterrors.ErrOwnerRequired):
		writeError(w, http.StatusUnauthorized, "X-User-Id header is required")
	case errors.Is(err, clienterrors.ErrInvalidName),
		errors.Is(err, clienterrors.ErrContactTooLong),
		errors.Is(err, clienterrors.ErrNotesTooLong),
		errors.Is(err, clienterrors.ErrNoFieldsToUpdate):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.Error("client request failed",
			"event", "client_request_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeError(w, http.StatusInternalServerError, "Something went wrong, try again later")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, campaignhttp.ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
