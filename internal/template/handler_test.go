package template_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/campushq/sitebuilder/internal/database"
	"github.com/campushq/sitebuilder/internal/testutils"
	"github.com/stretchr/testify/assert"
)

func TestApplyTemplateEndpoint(t *testing.T) {
	app := testutils.SetupTestApp(t)
	tpl := seedTemplate(t)
	tplID := strconv.FormatUint(uint64(tpl.ID), 10)

	tenant := testutils.CreateTestTenant(t, database.DB, "Hillcrest Academy", "hillcrest")
	adminToken := testutils.GetAuthToken(t, 1, tenant.ID, "TENANT_ADMIN")

	t.Run("tenant without a site fails the precondition", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/templates/"+tplID+"/apply",
			map[string]string{"mode": "merge"}, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		testutils.AssertError(t, resp, "PRECONDITION_FAILED")
	})

	t.Run("apply succeeds once the site exists", func(t *testing.T) {
		testutils.CreateTestSite(t, database.DB, tenant.ID, "Hillcrest Academy")

		resp, err := testutils.MakeRequest(app, "POST", "/api/templates/"+tplID+"/apply",
			map[string]string{"mode": "merge"}, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.Code)
		testutils.AssertSuccess(t, resp)
	})

	t.Run("unknown template is not found", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/templates/99999/apply",
			map[string]string{"mode": "merge"}, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.Code)
		testutils.AssertError(t, resp, "NOT_FOUND")
	})
}
