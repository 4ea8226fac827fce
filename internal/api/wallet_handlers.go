package api

import (
	"encoding/json"
	"net/http"

	"github.com/techsaavy8784/face-recognization-wallet/internal/logger"
	apperrors "github.com/techsaavy8784/face-recognization-wallet/pkg/errors"
	"github.com/techsaavy8784/face-recognization-wallet/pkg/types"
)

// GetWalletRequest is the body of POST /get_wallet.
type GetWalletRequest struct {
	UID     int64  `json:"uid"`
	Address string `json:"address"`
}

// CreateWalletRequest is the body of POST /create_wallet.
type CreateWalletRequest struct {
	UID     int64         `json:"uid"`
	Feature types.Feature `json:"feature"`
}

// RecoverWalletRequest is the body of POST /recover_wallet.
type RecoverWalletRequest struct {
	UID        int64         `json:"uid"`
	Feature    types.Feature `json:"feature"`
	RecoverKey string        `json:"recover_key"`
}

// WalletEnvelope is the uniform response shape of every wallet endpoint.
// Logical failure is signaled through Result/Msg only; the transport status
// stays 200 either way. Clients depend on this.
type WalletEnvelope struct {
	Result        string        `json:"result"`
	Msg           string        `json:"msg"`
	WalletAddress string        `json:"wallet_address"`
	Mnemonic      string        `json:"mnemonic"`
	Token         string        `json:"token"`
	Feature       types.Feature `json:"feature"`
}

// handleGetWallet looks up an account by address and returns its stored
// mnemonic and feature with a fresh token.
func (s *Server) handleGetWallet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, apperrors.New(apperrors.ErrCodeBadRequest, "Method not allowed", http.StatusMethodNotAllowed))
		return
	}

	var req GetWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperrors.NewWithDetail(apperrors.ErrCodeBadRequest, "Invalid request body", err.Error(), http.StatusBadRequest))
		return
	}

	data, err := s.service.GetWallet(r.Context(), req.UID, req.Address)
	if err != nil {
		s.writeErrorEnvelope(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, WalletEnvelope{
		Result:        "Success",
		Msg:           "Got wallet successfully",
		WalletAddress: data.Address,
		Mnemonic:      data.Mnemonic,
		Token:         data.Token,
		Feature:       data.Feature,
	})
}

// handleCreateWallet provisions a new wallet. The mnemonic and the submitted
// feature are deliberately absent from the response.
func (s *Server) handleCreateWallet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, apperrors.New(apperrors.ErrCodeBadRequest, "Method not allowed", http.StatusMethodNotAllowed))
		return
	}

	var req CreateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperrors.NewWithDetail(apperrors.ErrCodeBadRequest, "Invalid request body", err.Error(), http.StatusBadRequest))
		return
	}

	data, err := s.service.CreateWallet(r.Context(), req.UID, req.Feature)
	if err != nil {
		s.writeErrorEnvelope(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, WalletEnvelope{
		Result:        "Success",
		Msg:           "Created wallet successfully",
		WalletAddress: data.Address,
		Token:         data.Token,
	})
}

// handleRecoverWallet looks up an account by the submitted recover key. On
// success the envelope carries the stored address, never the input key, and
// no mnemonic.
func (s *Server) handleRecoverWallet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, apperrors.New(apperrors.ErrCodeBadRequest, "Method not allowed", http.StatusMethodNotAllowed))
		return
	}

	var req RecoverWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperrors.NewWithDetail(apperrors.ErrCodeBadRequest, "Invalid request body", err.Error(), http.StatusBadRequest))
		return
	}

	data, err := s.service.RecoverWallet(r.Context(), req.UID, req.Feature, req.RecoverKey)
	if err != nil {
		s.writeErrorEnvelope(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, WalletEnvelope{
		Result:        "Success",
		Msg:           "Got wallet successfully",
		WalletAddress: data.Address,
		Token:         data.Token,
		Feature:       data.Feature,
	})
}

// writeErrorEnvelope converts a service failure into the uniform error
// envelope. No internal detail crosses the HTTP boundary.
func (s *Server) writeErrorEnvelope(w http.ResponseWriter, r *http.Request, err error) {
	msg := "Internal server error"
	if appErr, ok := apperrors.IsAppError(err); ok {
		msg = appErr.Message
		if appErr.Detail != "" {
			logger.Error(r.Context(), "wallet request failed", "code", appErr.Code, "detail", appErr.Detail)
		}
	} else {
		logger.Error(r.Context(), "wallet request failed", "error", err)
	}

	s.writeJSON(w, http.StatusOK, WalletEnvelope{
		Result: "Error",
		Msg:    msg,
	})
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with its transport status code. Used
// only for failures outside the wallet envelope contract (bad method,
// malformed JSON).
func (s *Server) writeError(w http.ResponseWriter, err *apperrors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	json.NewEncoder(w).Encode(err)
}
