package main

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Simplici0/steam.works/internal/chat"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (s *server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}

	reply, err := s.chat.Reply(r.Context(), req.Message)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
	case errors.Is(err, chat.ErrDisabled), errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, chat.ErrMessageTooLong):
		s.writeError(w, r, err)
	default:
		s.logger.Warn("chat upstream failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "model request failed"})
	}
}
