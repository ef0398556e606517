//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

// Package server exposes the workflow engine over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"trpc.group/trpc-go/trpc-flow-go/log"
	"trpc.group/trpc-go/trpc-flow-go/runner"
	"trpc.group/trpc-go/trpc-flow-go/workflow"
)

// userHeader carries the caller identity. Authentication happens upstream;
// the engine only needs the resolved user id.
const userHeader = "X-User-ID"

// Server routes workflow CRUD and execution requests.
type Server struct {
	workflows *workflow.Service
	runner    *runner.Runner
	router    *mux.Router
}

// New creates a Server over the given workflow service and runner.
func New(workflows *workflow.Service, r *runner.Runner) *Server {
	s := &Server{
		workflows: workflows,
		runner:    r,
		router:    mux.NewRouter(),
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
	})
	s.router.Use(c.Handler)
	s.registerRoutes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins serving on the given address and blocks.
func (s *Server) Start(addr string) error {
	log.Infof("flow server listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) registerRoutes() {
	s.router.HandleFunc("/api/v1/workflows", s.handleCreateWorkflow).Methods(http.MethodPost)
	s.router.HandleFunc("/api/v1/workflows", s.handleListWorkflows).Methods(http.MethodGet)
	s.router.HandleFunc("/api/v1/workflows/{id}", s.handleGetWorkflow).Methods(http.MethodGet)
	s.router.HandleFunc("/api/v1/workflows/{id}", s.handleUpdateWorkflow).Methods(http.MethodPut)
	s.router.HandleFunc("/api/v1/workflows/{id}", s.handleDeleteWorkflow).Methods(http.MethodDelete)
	s.router.HandleFunc("/api/v1/workflows/{id}/execute", s.handleExecuteWorkflow).Methods(http.MethodPost)
}

// ---- Handlers -----------------------------------------------------------

func (s *Server) handleCreateWorkflow(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var wf workflow.Workflow
	if err := json.NewDecoder(r.Body).Decode(&wf); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := s.workflows.Create(r.Context(), userID, &wf)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListWorkflows(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	workflows, err := s.workflows.List(r.Context(), userID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, workflows)
}

func (s *Server) handleGetWorkflow(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	wf, err := s.workflows.Get(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, wf)
}

func (s *Server) handleUpdateWorkflow(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var wf workflow.Workflow
	if err := json.NewDecoder(r.Body).Decode(&wf); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	wf.ID = mux.Vars(r)["id"]
	updated, err := s.workflows.Update(r.Context(), userID, &wf)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteWorkflow(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	if err := s.workflows.Delete(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExecuteWorkflow(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var req runner.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.WorkflowID = mux.Vars(r)["id"]
	req.UserID = userID

	response, err := s.runner.Run(r.Context(), &req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, response)
}

// ---- Helpers ------------------------------------------------------------

func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get(userHeader)
	if userID == "" {
		s.writeError(w, http.StatusUnauthorized, "missing "+userHeader+" header")
		return "", false
	}
	return userID, true
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, workflow.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, workflow.ErrPermissionDenied):
		s.writeError(w, http.StatusForbidden, err.Error())
	default:
		log.Errorf("request failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Errorf("encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
