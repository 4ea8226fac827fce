package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techsaavy8784/face-recognization-wallet/internal/app"
	"github.com/techsaavy8784/face-recognization-wallet/internal/config"
	"github.com/techsaavy8784/face-recognization-wallet/internal/middleware"
	apperrors "github.com/techsaavy8784/face-recognization-wallet/pkg/errors"
)

type fakeWalletService struct {
	GetWalletFn     func(ctx context.Context, uid int64, address string) (*app.WalletData, error)
	CreateWalletFn  func(ctx context.Context, uid int64, feature []byte) (*app.WalletData, error)
	RecoverWalletFn func(ctx context.Context, uid int64, feature []byte, recoverKey string) (*app.WalletData, error)
}

var errNotImplemented = errors.New("not implemented")

func (f *fakeWalletService) GetWallet(ctx context.Context, uid int64, address string) (*app.WalletData, error) {
	if f.GetWalletFn == nil {
		return nil, errNotImplemented
	}
	return f.GetWalletFn(ctx, uid, address)
}

func (f *fakeWalletService) CreateWallet(ctx context.Context, uid int64, feature []byte) (*app.WalletData, error) {
	if f.CreateWalletFn == nil {
		return nil, errNotImplemented
	}
	return f.CreateWalletFn(ctx, uid, feature)
}

func (f *fakeWalletService) RecoverWallet(ctx context.Context, uid int64, feature []byte, recoverKey string) (*app.WalletData, error) {
	if f.RecoverWalletFn == nil {
		return nil, errNotImplemented
	}
	return f.RecoverWalletFn(ctx, uid, feature, recoverKey)
}

func newTestServer(svc WalletService) http.Handler {
	cfg := &config.Config{Host: "127.0.0.1", Port: 8799}
	s := NewServer(cfg, svc, middleware.NewRateLimiter(100, 100, false))
	return s.Handler()
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) WalletEnvelope {
	t.Helper()
	var env WalletEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestHandleGetWallet_Success(t *testing.T) {
	handler := newTestServer(&fakeWalletService{
		GetWalletFn: func(ctx context.Context, uid int64, address string) (*app.WalletData, error) {
			assert.Equal(t, int64(1), uid)
			assert.Equal(t, "0xabc", address)
			return &app.WalletData{
				Address:  "0xabc",
				Mnemonic: "word word word",
				Token:    "jwt-1",
				Feature:  []byte{1, 2, 3},
			}, nil
		},
	})

	rec := postJSON(t, handler, "/get_wallet", `{"uid":1,"address":"0xabc"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Success", env.Result)
	assert.Equal(t, "Got wallet successfully", env.Msg)
	assert.Equal(t, "0xabc", env.WalletAddress)
	assert.Equal(t, "word word word", env.Mnemonic)
	assert.Equal(t, "jwt-1", env.Token)
	assert.Equal(t, []byte{1, 2, 3}, []byte(env.Feature))
}

func TestHandleGetWallet_NotFound(t *testing.T) {
	handler := newTestServer(&fakeWalletService{
		GetWalletFn: func(ctx context.Context, uid int64, address string) (*app.WalletData, error) {
			return nil, apperrors.ErrAccountNotFound
		},
	})

	rec := postJSON(t, handler, "/get_wallet", `{"uid":99,"address":"doesnotexist"}`)

	// Logical failure still travels over a 200.
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Error", env.Result)
	assert.Equal(t, "Can not find the account", env.Msg)
	assert.Empty(t, env.WalletAddress)
	assert.Empty(t, env.Mnemonic)
	assert.Empty(t, env.Token)
	assert.Empty(t, env.Feature)
}

func TestHandleGetWallet_UnexpectedError(t *testing.T) {
	handler := newTestServer(&fakeWalletService{
		GetWalletFn: func(ctx context.Context, uid int64, address string) (*app.WalletData, error) {
			return nil, errors.New("kaboom")
		},
	})

	rec := postJSON(t, handler, "/get_wallet", `{"uid":1,"address":"0xabc"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Error", env.Result)
	// Internal detail never crosses the boundary.
	assert.Equal(t, "Internal server error", env.Msg)
	assert.NotContains(t, rec.Body.String(), "kaboom")
}

func TestHandleGetWallet_BadJSON(t *testing.T) {
	handler := newTestServer(&fakeWalletService{})

	rec := postJSON(t, handler, "/get_wallet", `{"uid":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetWallet_MethodNotAllowed(t *testing.T) {
	handler := newTestServer(&fakeWalletService{})

	req := httptest.NewRequest(http.MethodGet, "/get_wallet", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleCreateWallet_Success(t *testing.T) {
	var gotFeature []byte
	handler := newTestServer(&fakeWalletService{
		CreateWalletFn: func(ctx context.Context, uid int64, feature []byte) (*app.WalletData, error) {
			gotFeature = feature
			return &app.WalletData{Address: "0xnew", Token: "jwt-new"}, nil
		},
	})

	rec := postJSON(t, handler, "/create_wallet", `{"uid":1,"feature":[1,2,3]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []byte{1, 2, 3}, gotFeature)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Success", env.Result)
	assert.Equal(t, "Created wallet successfully", env.Msg)
	assert.Equal(t, "0xnew", env.WalletAddress)
	assert.Equal(t, "jwt-new", env.Token)
	assert.Empty(t, env.Mnemonic)
	assert.Empty(t, env.Feature)
}

func TestHandleCreateWallet_ProvisioningFailure(t *testing.T) {
	handler := newTestServer(&fakeWalletService{
		CreateWalletFn: func(ctx context.Context, uid int64, feature []byte) (*app.WalletData, error) {
			return nil, apperrors.Provisioning("generate_mnemonic", errors.New("entropy"))
		},
	})

	rec := postJSON(t, handler, "/create_wallet", `{"uid":1,"feature":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Error", env.Result)
	assert.Equal(t, "Internal error on `generate_mnemonic`", env.Msg)
	assert.Empty(t, env.WalletAddress)
	assert.Empty(t, env.Token)
}

func TestHandleRecoverWallet_Success(t *testing.T) {
	handler := newTestServer(&fakeWalletService{
		RecoverWalletFn: func(ctx context.Context, uid int64, feature []byte, recoverKey string) (*app.WalletData, error) {
			assert.Equal(t, "recover-key-1", recoverKey)
			return &app.WalletData{Address: "0xStored", Token: "jwt-r", Feature: []byte{7}}, nil
		},
	})

	rec := postJSON(t, handler, "/recover_wallet", `{"uid":3,"feature":[7],"recover_key":"recover-key-1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Success", env.Result)
	assert.Equal(t, "0xStored", env.WalletAddress)
	assert.Empty(t, env.Mnemonic)
	assert.Equal(t, []byte{7}, []byte(env.Feature))
}

func TestHandleRecoverWallet_NotFound(t *testing.T) {
	handler := newTestServer(&fakeWalletService{
		RecoverWalletFn: func(ctx context.Context, uid int64, feature []byte, recoverKey string) (*app.WalletData, error) {
			return nil, apperrors.ErrAccountNotFound
		},
	})

	rec := postJSON(t, handler, "/recover_wallet", `{"uid":3,"feature":[],"recover_key":"missing"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Error", env.Result)
	assert.Equal(t, "Can not find the account", env.Msg)
}

func TestFeatureWireFormat(t *testing.T) {
	handler := newTestServer(&fakeWalletService{
		GetWalletFn: func(ctx context.Context, uid int64, address string) (*app.WalletData, error) {
			return &app.WalletData{Address: address, Token: "t", Feature: []byte{1, 2, 3}}, nil
		},
	})

	rec := postJSON(t, handler, "/get_wallet", `{"uid":1,"address":"0xabc"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// The blob is a JSON number array on the wire, not base64.
	assert.Contains(t, rec.Body.String(), `"feature":[1,2,3]`)
}

func TestPlainTextRoutes(t *testing.T) {
	handler := newTestServer(&fakeWalletService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, welcomeMessage, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/status", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Status: Running", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	handler := newTestServer(&fakeWalletService{})

	req := httptest.NewRequest(http.MethodOptions, "/create_wallet", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDHeader(t *testing.T) {
	handler := newTestServer(&fakeWalletService{})

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "upstream-id", rec.Header().Get("X-Request-ID"))
}

func TestOversizedBodyRejected(t *testing.T) {
	handler := newTestServer(&fakeWalletService{})

	body := bytes.Repeat([]byte("a"), middleware.MaxBodySize+1)
	req := httptest.NewRequest(http.MethodPost, "/get_wallet", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
