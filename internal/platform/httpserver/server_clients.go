package httpserver

import (
	"encoding/json"
	"net/http"

	clienthttp "socialdesk/contexts/agency/client-service/transport/http"
)

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authorize(w, r, ActionClientCreate)
	if !ok {
		return
	}
	var req clienthttp.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.clients.Handler.CreateClientHandler(r.Context(), userID, req)
	if err != nil {
		s.writeClientDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authorize(w, r, ActionClientList)
	if !ok {
		return
	}
	resp, err := s.clients.Handler.ListClientsHandler(r.Context(), userID)
	if err != nil {
		s.writeClientDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authorize(w, r, ActionClientGet)
	if !ok {
		return
	}
	resp, err := s.clients.Handler.GetClientHandler(r.Context(), userID, r.PathValue("client_id"))
	if err != nil {
		s.writeClientDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authorize(w, r, ActionClientUpdate)
	if !ok {
		return
	}
	var req clienthttp.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.clients.Handler.UpdateClientHandler(r.Context(), userID, r.PathValue("client_id"), req)
	if err != nil {
		s.writeClientDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authorize(w, r, ActionClientDelete)
	if !ok {
		return
	}
	if err := s.clients.Handler.DeleteClientHandler(r.Context(), userID, r.PathValue("client_id")); err != nil {
		s.writeClientDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clienthttp.SuccessResponse{Success: true})
}
