package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/campushq/sitebuilder/internal/database"
	"github.com/campushq/sitebuilder/internal/models"
	"github.com/campushq/sitebuilder/internal/server"
	"github.com/campushq/sitebuilder/internal/utils"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err, "Failed to create test database")

	err = db.AutoMigrate(
		&models.Tenant{},
		&models.Site{},
		&models.Theme{},
		&models.Page{},
		&models.Menu{},
		&models.Form{},
		&models.Funnel{},
		&models.Collection{},
		&models.CollectionField{},
		&models.CollectionItem{},
		&models.SiteTemplate{},
	)
	assert.NoError(t, err, "Failed to migrate test database")

	return db
}

func SetupTestApp(t *testing.T) *fiber.App {
	db := TestDB(t)
	database.DB = db

	app := server.New(db)
	return app
}

func CreateTestTenant(t *testing.T, db *gorm.DB, name, subdomain string) *models.Tenant {
	tenant := &models.Tenant{Name: name, Subdomain: subdomain}
	err := db.Create(tenant).Error
	assert.NoError(t, err, "Failed to create test tenant")
	return tenant
}

func CreateTestSite(t *testing.T, db *gorm.DB, tenantID uint, name string) *models.Site {
	s := &models.Site{TenantID: tenantID, Name: name}
	err := db.Create(s).Error
	assert.NoError(t, err, "Failed to create test site")
	return s
}

func GetAuthToken(t *testing.T, userID, tenantID uint, role string) string {
	token, err := utils.GenerateJWT(userID, tenantID, role)
	assert.NoError(t, err, "Failed to generate test token")
	return token
}

func MakeRequest(app *fiber.App, method, url string, body interface{}, token string) (*httptest.ResponseRecorder, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, url, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()

	resp, err := app.Test(req, -1)
	if err != nil {
		return rec, err
	}

	rec.Code = resp.StatusCode

	io.Copy(rec.Body, resp.Body)
	resp.Body.Close()

	return rec, nil
}

func ParseResponse(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	if resp.Body.Len() == 0 {
		t.Log("Warning: Response body is empty")
		return
	}

	err := json.NewDecoder(resp.Body).Decode(v)
	if err != nil && err != io.EOF {
		t.Logf("Response body: %s", resp.Body.String())
		assert.NoError(t, err, "Failed to parse response")
	}
}

type StandardResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    interface{}  `json:"data"`
	Error   *ErrorDetail `json:"error"`
	Meta    *Meta        `json:"meta"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

func AssertSuccess(t *testing.T, resp *httptest.ResponseRecorder) {
	var result StandardResponse
	ParseResponse(t, resp, &result)
	assert.True(t, result.Success, "Expected success response")
	assert.Empty(t, result.Error, "Expected no error")
}

func AssertError(t *testing.T, resp *httptest.ResponseRecorder, expectedCode string) {
	var result StandardResponse
	ParseResponse(t, resp, &result)
	assert.False(t, result.Success, "Expected error response")
	assert.NotNil(t, result.Error, "Expected error object")
	assert.Equal(t, expectedCode, result.Error.Code, "Error code mismatch")
}
