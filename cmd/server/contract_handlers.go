package main

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Simplici0/steam.works/internal/contracts"
	"github.com/Simplici0/steam.works/internal/pricing"
	"github.com/Simplici0/steam.works/internal/report"
)

type contractsResponse struct {
	Query     string               `json:"query,omitempty"`
	Contracts []contracts.Contract `json:"contracts"`
}

func decodeDraft(w http.ResponseWriter, r *http.Request) (contracts.Draft, error) {
	d := contracts.Draft{Pricing: pricing.DefaultInput()}
	if err := decodeJSON(w, r, &d); err != nil {
		return d, err
	}
	return d, nil
}

func (s *server) handleContractsList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	list, err := s.contracts.List(r.Context(), query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, contractsResponse{Query: query, Contracts: list})
}

func (s *server) handleContractCreate(w http.ResponseWriter, r *http.Request) {
	d, err := decodeDraft(w, r)
	if err != nil {
		badRequest(w, err)
		return
	}

	c, err := s.contracts.Create(r.Context(), d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info("contract created", zap.Int64("id", c.ID), zap.String("reference", c.Reference))
	w.Header().Set("Location", "/api/contracts/"+strconv.FormatInt(c.ID, 10))
	writeJSON(w, http.StatusCreated, c)
}

func (s *server) handleContractGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		badRequest(w, err)
		return
	}

	c, err := s.contracts.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (s *server) handleContractUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		badRequest(w, err)
		return
	}

	d, err := decodeDraft(w, r)
	if err != nil {
		badRequest(w, err)
		return
	}

	c, err := s.contracts.Update(r.Context(), id, d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (s *server) handleContractDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		badRequest(w, err)
		return
	}

	if err := s.contracts.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info("contract deleted", zap.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}

// handleContractText renders the stored snapshot without recomputing it.
func (s *server) handleContractText(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		badRequest(w, err)
		return
	}

	c, err := s.contracts.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var b strings.Builder
	if err := report.WriteContract(&b, c); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeText(w, b.String())
}
