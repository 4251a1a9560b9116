package site_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/campushq/sitebuilder/internal/collection"
	"github.com/campushq/sitebuilder/internal/database"
	"github.com/campushq/sitebuilder/internal/models"
	"github.com/campushq/sitebuilder/internal/testutils"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestSiteEndpoints(t *testing.T) {
	app := testutils.SetupTestApp(t)
	tenant := testutils.CreateTestTenant(t, database.DB, "Hillcrest Academy", "hillcrest")
	adminToken := testutils.GetAuthToken(t, 1, tenant.ID, "TENANT_ADMIN")
	studentToken := testutils.GetAuthToken(t, 2, tenant.ID, "STUDENT")

	t.Run("request without token is unauthorized", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/site", map[string]string{"name": "X"}, "")
		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("student cannot opt in", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/site", map[string]string{"name": "X"}, studentToken)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.Code)
		testutils.AssertError(t, resp, "FORBIDDEN")
	})

	t.Run("admin opt-in creates the site", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/site", map[string]string{"name": "Hillcrest"}, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.Code)
		testutils.AssertSuccess(t, resp)
	})

	t.Run("student can still read", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/site", nil, studentToken)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.Code)
		testutils.AssertSuccess(t, resp)
	})

	t.Run("missing site is not found", func(t *testing.T) {
		other := testutils.CreateTestTenant(t, database.DB, "No Site Yet", "no-site")
		token := testutils.GetAuthToken(t, 3, other.ID, "TENANT_ADMIN")

		resp, err := testutils.MakeRequest(app, "GET", "/api/site", nil, token)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.Code)
		testutils.AssertError(t, resp, "NOT_FOUND")
	})
}

func TestPageEndpoints(t *testing.T) {
	app := testutils.SetupTestApp(t)
	tenant := testutils.CreateTestTenant(t, database.DB, "Hillcrest Academy", "hillcrest")
	testutils.CreateTestSite(t, database.DB, tenant.ID, "Hillcrest Academy")
	adminToken := testutils.GetAuthToken(t, 1, tenant.ID, "TENANT_ADMIN")
	studentToken := testutils.GetAuthToken(t, 2, tenant.ID, "STUDENT")

	t.Run("create page", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/site/pages", map[string]interface{}{
			"title":   "About Us",
			"content": []map[string]interface{}{{"type": "heading", "props": map[string]interface{}{"text": "About"}}},
		}, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.Code)
		testutils.AssertSuccess(t, resp)
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/site/pages", map[string]interface{}{
			"title": "About Us",
		}, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.Code)
		testutils.AssertError(t, resp, "CONFLICT")
	})

	t.Run("title is required", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/site/pages", map[string]interface{}{
			"slug": "untitled",
		}, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		testutils.AssertError(t, resp, "VALIDATION_ERROR")
	})

	t.Run("student cannot create pages", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/site/pages", map[string]interface{}{
			"title": "Hacked",
		}, studentToken)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("deleting a locked page fails", func(t *testing.T) {
		var s models.Site
		assert.NoError(t, database.DB.Where("tenant_id = ?", tenant.ID).First(&s).Error)
		locked := models.Page{SiteID: s.ID, Title: "Portal", Slug: "portal-login",
			Content: datatypes.JSON([]byte("[]")), Status: models.StatusPublished, IsLocked: true}
		assert.NoError(t, database.DB.Create(&locked).Error)

		resp, err := testutils.MakeRequest(app, "DELETE", "/api/site/pages/"+itoa(locked.ID), nil, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		testutils.AssertError(t, resp, "PRECONDITION_FAILED")
	})
}

func TestPublicServing(t *testing.T) {
	app := testutils.SetupTestApp(t)
	tenant := testutils.CreateTestTenant(t, database.DB, "Hillcrest Academy", "hillcrest")
	s := testutils.CreateTestSite(t, database.DB, tenant.ID, "Hillcrest Academy")
	adminToken := testutils.GetAuthToken(t, 1, tenant.ID, "TENANT_ADMIN")

	published := models.Page{
		SiteID: s.ID, Title: "Welcome", Slug: "welcome",
		Content: datatypes.JSON([]byte(`[{"type":"hero","props":{"title":"Hello Hillcrest"}}]`)),
		Status:  models.StatusPublished,
	}
	draft := models.Page{
		SiteID: s.ID, Title: "Secret", Slug: "secret",
		Content: datatypes.JSON([]byte(`[{"type":"heading","props":{"text":"Not yet"}}]`)),
		Status:  models.StatusDraft,
	}
	assert.NoError(t, database.DB.Create(&published).Error)
	assert.NoError(t, database.DB.Create(&draft).Error)

	t.Run("published page serves without auth", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/public/sites/"+itoa(s.ID)+"/pages/welcome", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "Hello Hillcrest")
	})

	t.Run("draft page is hidden from the public", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/public/sites/"+itoa(s.ID)+"/pages/secret", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("editor preview renders the draft", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/site/preview/secret", nil, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "Not yet")
	})

	t.Run("unknown page is not found", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/public/sites/"+itoa(s.ID)+"/pages/nope", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestPublicCollectionItems(t *testing.T) {
	app := testutils.SetupTestApp(t)
	tenant := testutils.CreateTestTenant(t, database.DB, "Hillcrest Academy", "hillcrest")
	s := testutils.CreateTestSite(t, database.DB, tenant.ID, "Hillcrest Academy")

	col, err := collection.CreateCollection(s.ID, "News", "", "")
	assert.NoError(t, err)
	item, err := collection.CreateItem(col.ID, map[string]interface{}{"title": "Open Day"}, "open-day", "")
	assert.NoError(t, err)
	_, err = collection.PublishItem(s.ID, item.ID)
	assert.NoError(t, err)
	_, err = collection.CreateItem(col.ID, map[string]interface{}{"title": "Hidden"}, "hidden", "")
	assert.NoError(t, err)

	t.Run("list serves published items only", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/public/sites/"+itoa(s.ID)+"/collections/news/items", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "open-day")
		assert.NotContains(t, resp.Body.String(), "hidden")
	})

	t.Run("single published item serves its snapshot", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/public/sites/"+itoa(s.ID)+"/collections/news/items/open-day", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "Open Day")
	})

	t.Run("draft item is not publicly readable", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/public/sites/"+itoa(s.ID)+"/collections/news/items/hidden", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
