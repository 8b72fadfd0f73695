// internal/handlers/api_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/DBN92/solve-it-neat/internal/authz"
	"github.com/DBN92/solve-it-neat/internal/config"
	"github.com/DBN92/solve-it-neat/internal/middleware"
	"github.com/DBN92/solve-it-neat/internal/models"
	"github.com/DBN92/solve-it-neat/internal/services"
	"github.com/DBN92/solve-it-neat/internal/store/localstore"
	"github.com/DBN92/solve-it-neat/internal/utils"
)

type APITestSuite struct {
	suite.Suite
	router           *gin.Engine
	applicantService *services.ApplicantService
	adminToken       string
	userToken        string
}

func (suite *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret")

	st, err := localstore.Open(filepath.Join(suite.T().TempDir(), "api.db"), false)
	suite.Require().NoError(err)
	suite.T().Cleanup(func() { st.Close() })

	cfg := &config.Config{
		JWT: config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 1},
	}

	userService := services.NewUserService(st)
	admin, err := userService.Create(&services.CreateUserRequest{
		Name: "Admin", Email: "admin@email.com", Password: "Secret123!", Role: models.RoleSuperAdm,
	})
	suite.Require().NoError(err)
	support, err := userService.Create(&services.CreateUserRequest{
		Name: "Maria", Email: "maria@email.com", Password: "Secret123!", Role: models.RoleSuporte,
	})
	suite.Require().NoError(err)

	suite.adminToken, err = utils.GenerateJWT(admin.ID, admin.Name, string(admin.Role), 1)
	suite.Require().NoError(err)
	suite.userToken, err = utils.GenerateJWT(support.ID, support.Name, string(support.Role), 1)
	suite.Require().NoError(err)

	authHandler := NewAuthHandler(services.NewAuthService(st, cfg))
	consentService := services.NewConsentService(st)
	consentHandler := NewConsentHandler(consentService)
	dataOwnerHandler := NewDataOwnerHandler(consentService)
	userHandler := NewUserHandler(userService)

	suite.applicantService = services.NewApplicantService(st)
	applicantHandler := NewApplicantHandler(suite.applicantService)

	r := gin.New()
	r.POST("/auth/login", authHandler.Login)

	dataOwner := r.Group("/data-owner")
	{
		dataOwner.GET("/consents", dataOwnerHandler.Lookup)
		dataOwner.POST("/consents/:id/approve", consentHandler.Approve)
		dataOwner.POST("/consents/:id/revoke", consentHandler.Revoke)
	}

	protected := r.Group("")
	protected.Use(middleware.AuthRequired())
	{
		consents := protected.Group("/consents")
		consents.Use(middleware.SectionRequired(authz.SectionConsents))
		{
			consents.GET("", consentHandler.List)
			consents.GET("/:id", consentHandler.Get)
		}
		newRequest := protected.Group("")
		newRequest.Use(middleware.SectionRequired(authz.SectionNewRequest))
		{
			newRequest.POST("/consents", consentHandler.Create)
			newRequest.GET("/applicants/selectable", applicantHandler.Selectable)
		}
		applicants := protected.Group("/applicants")
		applicants.Use(middleware.SectionRequired(authz.SectionApplicant))
		{
			applicants.GET("", applicantHandler.List)
		}
		users := protected.Group("/users")
		users.Use(middleware.SectionRequired(authz.SectionUsers))
		{
			users.GET("", userHandler.List)
		}
	}

	suite.router = r
}

func (suite *APITestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *APITestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (suite *APITestSuite) TestLogin() {
	w := suite.request("POST", "/auth/login", "", map[string]interface{}{
		"email":    "admin@email.com",
		"password": "Secret123!",
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	resp := suite.decode(w)
	assert.True(suite.T(), resp["success"].(bool))
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(suite.T(), data["token"])
	assert.NotEmpty(suite.T(), data["sections"])
}

func (suite *APITestSuite) TestLoginBadPassword() {
	w := suite.request("POST", "/auth/login", "", map[string]interface{}{
		"email":    "admin@email.com",
		"password": "wrong",
	})
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *APITestSuite) TestAuthRequired() {
	w := suite.request("GET", "/consents", "", nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *APITestSuite) TestSectionEnforcement() {
	// suporte may open the consents section but not user management.
	w := suite.request("GET", "/consents", suite.userToken, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.request("GET", "/users", suite.userToken, nil)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.request("GET", "/users", suite.adminToken, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *APITestSuite) TestConsentLifecycleOverHTTP() {
	// Staff files the request.
	w := suite.request("POST", "/consents", suite.adminToken, map[string]interface{}{
		"data_user":      "Seguradora XYZ",
		"data_user_type": "Seguradora",
		"data_owner":     "João Silva Santos",
		"cpf":            "123.456.789-00",
		"data_types":     []string{"CNH", "Multas"},
		"purpose":        "Cálculo de prêmio",
		"legal_basis":    "Consentimento do titular",
		"deadline":       "2026-12-31",
		"controller":     "Seguradora XYZ Ltda.",
	})
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	data := suite.decode(w)["data"].(map[string]interface{})
	consent := data["consent"].(map[string]interface{})
	id := consent["id"].(string)
	assert.Equal(suite.T(), "pending", consent["effective_status"])

	// The titular finds it by CPF, in any formatting.
	w = suite.request("GET", "/data-owner/consents?cpf=12345678900", "", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	found := suite.decode(w)["data"].([]interface{})
	assert.Len(suite.T(), found, 1)

	// Approves it.
	w = suite.request("POST", "/data-owner/consents/"+id+"/approve", "", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	approved := suite.decode(w)["data"].(map[string]interface{})["consent"].(map[string]interface{})
	assert.Equal(suite.T(), "approved", approved["effective_status"])
	assert.NotEmpty(suite.T(), approved["token_id"])

	// Approving twice conflicts.
	w = suite.request("POST", "/data-owner/consents/"+id+"/approve", "", nil)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	// And later revokes it.
	w = suite.request("POST", "/data-owner/consents/"+id+"/revoke", "", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	revoked := suite.decode(w)["data"].(map[string]interface{})["consent"].(map[string]interface{})
	assert.Equal(suite.T(), "revoked", revoked["effective_status"])
	assert.Equal(suite.T(), "approved", revoked["status"])
}

func (suite *APITestSuite) TestRequesterSelectorReachableFromNewRequest() {
	active, err := suite.applicantService.Create(&services.ApplicantRequest{
		Name: "Seguradora XYZ", Type: "Seguradora", Email: "contato@xyz.com",
	})
	suite.Require().NoError(err)
	retired, err := suite.applicantService.Create(&services.ApplicantRequest{
		Name: "Locadora DEF", Type: "Locadora", Email: "contato@def.com",
	})
	suite.Require().NoError(err)
	_, err = suite.applicantService.Deactivate(retired.ID)
	suite.Require().NoError(err)

	// suporte holds new-request but not applicant management, yet the
	// new-request form still needs the requester selector.
	w := suite.request("GET", "/applicants/selectable", suite.userToken, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	selectable := suite.decode(w)["data"].([]interface{})
	assert.Len(suite.T(), selectable, 1)
	assert.Equal(suite.T(), active.Name, selectable[0].(map[string]interface{})["name"])

	w = suite.request("GET", "/applicants", suite.userToken, nil)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	// Management still sees the deactivated applicant.
	w = suite.request("GET", "/applicants", suite.adminToken, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Len(suite.T(), suite.decode(w)["data"].([]interface{}), 2)
}

func (suite *APITestSuite) TestDataOwnerLookupRejectsBadCPF() {
	w := suite.request("GET", "/data-owner/consents?cpf=123", "", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
