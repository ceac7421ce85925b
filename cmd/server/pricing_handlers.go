package main

import (
	"net/http"
	"strings"

	"github.com/Simplici0/steam.works/internal/finance"
	"github.com/Simplici0/steam.works/internal/pricing"
	"github.com/Simplici0/steam.works/internal/report"
)

type sensitivityRequest struct {
	Input     pricing.Input `json:"input"`
	Parameter string        `json:"parameter"`
	Values    []float64     `json:"values"`
}

type sensitivityResponse struct {
	Parameter pricing.Parameter `json:"parameter"`
	Current   pricing.Point     `json:"current"`
	Points    []pricing.Point   `json:"points"`
}

type priceResponse struct {
	Input  pricing.Input  `json:"input"`
	Result pricing.Result `json:"result"`
}

// decodePriceInput reads a pricing input, defaulting omitted fields.
func decodePriceInput(w http.ResponseWriter, r *http.Request) (pricing.Input, error) {
	in := pricing.DefaultInput()
	if err := decodeJSON(w, r, &in); err != nil {
		return in, err
	}
	return in, nil
}

func (s *server) handlePrice(w http.ResponseWriter, r *http.Request) {
	in, err := decodePriceInput(w, r)
	if err != nil {
		badRequest(w, err)
		return
	}

	result, err := pricing.Compute(in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, priceResponse{Input: in, Result: result})
}

func (s *server) handlePriceText(w http.ResponseWriter, r *http.Request) {
	in, err := decodePriceInput(w, r)
	if err != nil {
		badRequest(w, err)
		return
	}

	result, err := pricing.Compute(in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var b strings.Builder
	if err := report.WriteBreakdown(&b, in, result); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeText(w, b.String())
}

func (s *server) handleSensitivity(w http.ResponseWriter, r *http.Request) {
	req := sensitivityRequest{Input: pricing.DefaultInput(), Parameter: string(pricing.ParamNaturalGasPrice)}
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}

	param, err := pricing.ParseParameter(req.Parameter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	current, err := pricing.Compute(req.Input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	points, err := pricing.Sweep(param, req.Values, req.Input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sensitivityResponse{
		Parameter: param,
		Current:   pricing.Point{Value: param.Value(req.Input), NetPrice: current.NetPrice},
		Points:    points,
	})
}

func (s *server) handleRevenueSharing(w http.ResponseWriter, r *http.Request) {
	in := finance.DefaultPlanInput()
	if err := decodeJSON(w, r, &in); err != nil {
		badRequest(w, err)
		return
	}

	plan, err := finance.Plan(in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

func (s *server) handleRevenueSharingText(w http.ResponseWriter, r *http.Request) {
	in := finance.DefaultPlanInput()
	if err := decodeJSON(w, r, &in); err != nil {
		badRequest(w, err)
		return
	}

	plan, err := finance.Plan(in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var b strings.Builder
	if err := report.WritePlan(&b, plan); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeText(w, b.String())
}

func (s *server) handleSavingsSplit(w http.ResponseWriter, r *http.Request) {
	in := finance.DefaultSavingsInput()
	if err := decodeJSON(w, r, &in); err != nil {
		badRequest(w, err)
		return
	}

	result, err := finance.SavingsSplit(in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
