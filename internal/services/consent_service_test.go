// internal/services/consent_service_test.go
package services

import (
	"encoding/base64"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DBN92/solve-it-neat/internal/models"
	"github.com/DBN92/solve-it-neat/internal/store"
	"github.com/DBN92/solve-it-neat/internal/store/localstore"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := localstore.Open(filepath.Join(t.TempDir(), "test.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func validConsentRequest() *CreateConsentRequest {
	return &CreateConsentRequest{
		DataUser:     "Seguradora XYZ",
		DataUserType: "Seguradora",
		DataOwner:    "João Silva Santos",
		CPF:          "123.456.789-00",
		DataTypes:    []string{"CNH", "Multas"},
		Purpose:      "Cálculo de prêmio de seguro veicular",
		LegalBasis:   "Consentimento do titular",
		Deadline:     "2026-12-31",
		Controller:   "Seguradora XYZ Ltda.",
	}
}

func TestCreateStartsPendingWithAudit(t *testing.T) {
	svc := NewConsentService(newTestStore(t))

	rec, err := svc.Create(validConsentRequest())
	require.NoError(t, err)

	assert.Equal(t, models.ConsentStatusPending, rec.Status)
	assert.Nil(t, rec.ApprovedAt)
	assert.Empty(t, rec.Scopes)
	assert.Empty(t, rec.TokenID)
	require.Len(t, rec.ActionHistory, 1)
	assert.Equal(t, models.ActionCreated, rec.ActionHistory[0].Action)
	assert.Equal(t, models.PerformerSystem, rec.ActionHistory[0].PerformedBy)
}

func TestCreateValidation(t *testing.T) {
	svc := NewConsentService(newTestStore(t))

	req := validConsentRequest()
	req.CPF = "123"
	_, err := svc.Create(req)
	assert.Error(t, err)

	req = validConsentRequest()
	req.DataTypes = nil
	_, err = svc.Create(req)
	assert.Error(t, err)

	req = validConsentRequest()
	req.Deadline = "31/12/2026"
	_, err = svc.Create(req)
	assert.Error(t, err)
}

func TestApproveGrantsScopesAndToken(t *testing.T) {
	svc := NewConsentService(newTestStore(t))

	rec, err := svc.Create(validConsentRequest())
	require.NoError(t, err)

	approved, err := svc.Approve(rec.ID)
	require.NoError(t, err)

	assert.Equal(t, models.ConsentStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)
	assert.Equal(t, []string{"senatran:cnh:read", "senatran:multas:read"}, []string(approved.Scopes))
	assert.True(t, strings.HasPrefix(approved.TokenID, "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9."))
	require.Len(t, approved.ActionHistory, 2)
	assert.Equal(t, models.ActionApproved, approved.ActionHistory[1].Action)
}

func TestApproveRequiresPending(t *testing.T) {
	svc := NewConsentService(newTestStore(t))

	rec, err := svc.Create(validConsentRequest())
	require.NoError(t, err)
	_, err = svc.Approve(rec.ID)
	require.NoError(t, err)

	_, err = svc.Approve(rec.ID)
	assert.ErrorIs(t, err, ErrConsentNotPending)

	_, err = svc.Reject(rec.ID, "")
	assert.ErrorIs(t, err, ErrConsentNotPending)
}

func TestRejectIsTerminal(t *testing.T) {
	svc := NewConsentService(newTestStore(t))

	rec, err := svc.Create(validConsentRequest())
	require.NoError(t, err)

	rejected, err := svc.Reject(rec.ID, "Finalidade excessiva")
	require.NoError(t, err)
	assert.Equal(t, models.ConsentStatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectedAt)
	require.Len(t, rejected.ActionHistory, 2)
	assert.Equal(t, "Finalidade excessiva", rejected.ActionHistory[1].Reason)

	_, err = svc.Approve(rec.ID)
	assert.ErrorIs(t, err, ErrConsentNotPending)

	_, err = svc.Revoke(rec.ID, "")
	assert.ErrorIs(t, err, ErrConsentNotApproved)
}

func TestRevokeKeepsApprovedStatus(t *testing.T) {
	svc := NewConsentService(newTestStore(t))

	rec, err := svc.Create(validConsentRequest())
	require.NoError(t, err)
	_, err = svc.Approve(rec.ID)
	require.NoError(t, err)

	revoked, err := svc.Revoke(rec.ID, "")
	require.NoError(t, err)

	// Revocation is an overlay: the status column still reads approved
	// while the effective status reports revoked.
	assert.Equal(t, models.ConsentStatusApproved, revoked.Status)
	require.NotNil(t, revoked.RevokedAt)
	assert.Equal(t, "revoked", revoked.EffectiveStatus())
	assert.Empty(t, revoked.Scopes)
	assert.Empty(t, revoked.TokenID)
	require.Len(t, revoked.ActionHistory, 3)
	assert.Equal(t, models.ActionRevoked, revoked.ActionHistory[2].Action)
}

func TestRevokeOnlyOnce(t *testing.T) {
	svc := NewConsentService(newTestStore(t))

	rec, err := svc.Create(validConsentRequest())
	require.NoError(t, err)
	_, err = svc.Approve(rec.ID)
	require.NoError(t, err)
	_, err = svc.Revoke(rec.ID, "")
	require.NoError(t, err)

	_, err = svc.Revoke(rec.ID, "")
	assert.ErrorIs(t, err, ErrConsentAlreadyRevoked)
}

func TestRevokePendingRejected(t *testing.T) {
	svc := NewConsentService(newTestStore(t))

	rec, err := svc.Create(validConsentRequest())
	require.NoError(t, err)

	_, err = svc.Revoke(rec.ID, "")
	assert.ErrorIs(t, err, ErrConsentNotApproved)
}

func TestListByOwnerKeyNormalizesCPF(t *testing.T) {
	svc := NewConsentService(newTestStore(t))

	_, err := svc.Create(validConsentRequest())
	require.NoError(t, err)

	bare := validConsentRequest()
	bare.CPF = "12345678900"
	_, err = svc.Create(bare)
	require.NoError(t, err)

	other := validConsentRequest()
	other.CPF = "987.654.321-00"
	_, err = svc.Create(other)
	require.NoError(t, err)

	for _, key := range []string{"123.456.789-00", "12345678900"} {
		matched, err := svc.ListByOwnerKey(key)
		require.NoError(t, err)
		assert.Len(t, matched, 2, "key %q", key)
	}
}

func TestHistoryNotFound(t *testing.T) {
	svc := NewConsentService(newTestStore(t))

	_, err := svc.History(uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestScopesForDataTypes(t *testing.T) {
	scopes := ScopesForDataTypes([]string{"CNH", "Veículos", "Multas", "Pontuação"})
	assert.Equal(t, []string{
		"senatran:cnh:read",
		"senatran:veiculos:read",
		"senatran:multas:read",
		"senatran:pontuacao:read",
	}, scopes)

	// Unknown types get the lowercased fallback.
	assert.Equal(t, []string{"senatran:endereco:read"}, ScopesForDataTypes([]string{"Endereco"}))
}

func TestSynthesizeTokenPayload(t *testing.T) {
	token := SynthesizeToken("123.456.789-00", []string{"senatran:cnh:read"})

	parts := strings.SplitN(token, ".", 2)
	require.Len(t, parts, 2)
	assert.Equal(t, "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9", parts[0])

	payload, err := base64.RawStdEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var decoded struct {
		Sub    string   `json:"sub"`
		Scopes []string `json:"scopes"`
	}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "123.456.789-00", decoded.Sub)
	assert.Equal(t, []string{"senatran:cnh:read"}, decoded.Scopes)
}
