package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/babylonlabs-io/vesting-engine/internal/db/model"
	"github.com/babylonlabs-io/vesting-engine/internal/derive"
	"github.com/babylonlabs-io/vesting-engine/internal/services"
	"github.com/babylonlabs-io/vesting-engine/internal/types"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const maxBodySize = 1 << 16

type handler struct {
	service *services.Service
}

type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

type CreatePoolRequest struct {
	Asset    string `json:"asset"`
	Name     string `json:"name"`
	Decimals uint8  `json:"decimals"`
}

type CreateGrantRequest struct {
	Beneficiary string `json:"beneficiary"`
	StartTime   int64  `json:"start_time"`
	EndTime     int64  `json:"end_time"`
	CliffTime   int64  `json:"cliff_time"`
	TotalAmount uint64 `json:"total_amount"`
}

type PoolResponse struct {
	ID           string `json:"id"`
	Owner        string `json:"owner"`
	Asset        string `json:"asset"`
	Decimals     uint8  `json:"decimals"`
	Treasury     string `json:"treasury"`
	Name         string `json:"name"`
	TreasuryBump uint8  `json:"treasury_bump"`
	Bump         uint8  `json:"bump"`
	CreatedAt    int64  `json:"created_at"`
}

type GrantResponse struct {
	ID             string `json:"id"`
	Beneficiary    string `json:"beneficiary"`
	PoolID         string `json:"pool_id"`
	StartTime      int64  `json:"start_time"`
	EndTime        int64  `json:"end_time"`
	CliffTime      int64  `json:"cliff_time"`
	TotalAmount    uint64 `json:"total_amount"`
	TotalWithdrawn uint64 `json:"total_withdrawn"`
	Bump           uint8  `json:"bump"`
	CreatedAt      int64  `json:"created_at"`
	UpdatedAt      int64  `json:"updated_at"`
}

type GrantStatusResponse struct {
	GrantResponse
	State     string `json:"state"`
	Vested    uint64 `json:"vested"`
	Claimable uint64 `json:"claimable"`
	Now       int64  `json:"now"`
}

type ClaimResponse struct {
	Amount uint64 `json:"amount"`
}

type IDResponse struct {
	ID   string `json:"id"`
	Bump uint8  `json:"bump"`
}

func poolResponse(p *model.PoolDocument) PoolResponse {
	return PoolResponse{
		ID:           p.ID,
		Owner:        p.Owner,
		Asset:        p.Asset,
		Decimals:     p.Decimals,
		Treasury:     p.Treasury,
		Name:         p.Name,
		TreasuryBump: p.TreasuryBump,
		Bump:         p.Bump,
		CreatedAt:    p.CreatedAt,
	}
}

func grantResponse(g *model.GrantDocument) GrantResponse {
	return GrantResponse{
		ID:             g.ID,
		Beneficiary:    g.Beneficiary,
		PoolID:         g.PoolID,
		StartTime:      g.StartTime,
		EndTime:        g.EndTime,
		CliffTime:      g.CliffTime,
		TotalAmount:    g.TotalAmount,
		TotalWithdrawn: g.TotalWithdrawn,
		Bump:           g.Bump,
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
	}
}

func (h *handler) healthcheck(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Ping(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) createPool(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req CreatePoolRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	pool, err := h.service.CreatePool(r.Context(), caller, req.Asset, req.Name, req.Decimals)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, poolResponse(pool))
}

func (h *handler) getPool(w http.ResponseWriter, r *http.Request) {
	pool, err := h.service.GetPool(r.Context(), chi.URLParam(r, "poolId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, poolResponse(pool))
}

func (h *handler) getPoolStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.PoolStats(r.Context(), chi.URLParam(r, "poolId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}

func (h *handler) createGrant(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req CreateGrantRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	grant, err := h.service.CreateGrant(r.Context(), caller, services.CreateGrantRequest{
		PoolID:      chi.URLParam(r, "poolId"),
		Beneficiary: req.Beneficiary,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		CliffTime:   req.CliffTime,
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, grantResponse(grant))
}

func (h *handler) listGrants(w http.ResponseWriter, r *http.Request) {
	grants, err := h.service.ListGrantsByPool(r.Context(), chi.URLParam(r, "poolId"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]GrantResponse, 0, len(grants))
	for _, g := range grants {
		resp = append(resp, grantResponse(g))
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (h *handler) grantStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.GrantStatus(r.Context(), chi.URLParam(r, "grantId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, GrantStatusResponse{
		GrantResponse: grantResponse(status.Grant),
		State:         status.State.String(),
		Vested:        status.Vested,
		Claimable:     status.Claimable,
		Now:           status.Now,
	})
}

func (h *handler) claim(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	amount, err := h.service.Claim(
		r.Context(), chi.URLParam(r, "poolId"), chi.URLParam(r, "grantId"), caller,
	)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, ClaimResponse{Amount: amount})
}

func (h *handler) derivePoolID(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if err := derive.ValidatePoolName(name); err != nil {
		writeError(w, r, types.NewError(http.StatusBadRequest, types.InvalidArgument, err))
		return
	}
	addr := derive.PoolAddress(name)
	writeJSON(w, r, http.StatusOK, IDResponse{ID: addr.ID, Bump: addr.Bump})
}

func (h *handler) deriveGrantID(w http.ResponseWriter, r *http.Request) {
	beneficiary := r.URL.Query().Get("beneficiary")
	poolID := r.URL.Query().Get("pool")
	if beneficiary == "" || poolID == "" {
		writeError(w, r, types.NewCodeError(types.InvalidArgument, "beneficiary and pool are required"))
		return
	}
	addr := derive.GrantAddress(beneficiary, poolID)
	writeJSON(w, r, http.StatusOK, IDResponse{ID: addr.ID, Bump: addr.Bump})
}

func callerID(r *http.Request) (string, *types.Error) {
	caller := r.Header.Get(callerHeader)
	if caller == "" {
		return "", types.NewCodeError(types.PermissionDenied, "missing %s header", callerHeader)
	}
	return caller, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) *types.Error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return types.NewError(http.StatusBadRequest, types.InvalidArgument, fmt.Errorf("invalid request body: %w", err))
	}
	return nil
}

func writeError(w http.ResponseWriter, r *http.Request, err *types.Error) {
	status := err.StatusCode
	if status == 0 {
		status = err.ErrorCode.StatusCode()
	}

	// internal details stay in the logs
	message := err.Error()
	if status >= http.StatusInternalServerError && err.ErrorCode != types.TransferFailed {
		log.Ctx(r.Context()).Error().Err(err).Str("error_code", err.ErrorCode.String()).Msg("Request failed")
		message = "internal error"
	}

	writeJSON(w, r, status, ErrorResponse{
		ErrorCode: err.ErrorCode.String(),
		Message:   message,
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write response")
	}
}
