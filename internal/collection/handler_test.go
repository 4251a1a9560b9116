package collection_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/campushq/sitebuilder/internal/collection"
	"github.com/campushq/sitebuilder/internal/database"
	"github.com/campushq/sitebuilder/internal/models"
	"github.com/campushq/sitebuilder/internal/testutils"
	"github.com/stretchr/testify/assert"
)

func TestItemEndpointsIsolateTenants(t *testing.T) {
	app := testutils.SetupTestApp(t)

	victim := testutils.CreateTestTenant(t, database.DB, "Hillcrest Academy", "hillcrest")
	victimSite := testutils.CreateTestSite(t, database.DB, victim.ID, "Hillcrest Academy")

	intruder := testutils.CreateTestTenant(t, database.DB, "Rival Prep", "rival-prep")
	testutils.CreateTestSite(t, database.DB, intruder.ID, "Rival Prep")
	intruderToken := testutils.GetAuthToken(t, 9, intruder.ID, "TENANT_ADMIN")

	col, err := collection.CreateCollection(victimSite.ID, "News", "", "")
	assert.NoError(t, err)
	field, err := collection.AddField(col.ID, collection.FieldInput{Label: "Title", Type: models.FieldString})
	assert.NoError(t, err)
	item, err := collection.CreateItem(col.ID, map[string]interface{}{"title": "Open Day"}, "open-day", "")
	assert.NoError(t, err)

	itemID := strconv.FormatUint(uint64(item.ID), 10)
	fieldID := strconv.FormatUint(uint64(field.ID), 10)

	t.Run("publish of a foreign item is not found", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/items/"+itemID+"/publish", nil, intruderToken)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.Code)
		testutils.AssertError(t, resp, "NOT_FOUND")

		reloaded, err := collection.GetItem(victimSite.ID, item.ID)
		assert.NoError(t, err)
		assert.False(t, reloaded.IsPublished(), "a foreign admin must not flip publish state")
	})

	t.Run("update of a foreign item is not found", func(t *testing.T) {
		body := map[string]interface{}{"field_data": map[string]interface{}{"title": "defaced"}}
		resp, err := testutils.MakeRequest(app, "PUT", "/api/items/"+itemID, body, intruderToken)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.Code)

		reloaded, err := collection.GetItem(victimSite.ID, item.ID)
		assert.NoError(t, err)
		assert.NotContains(t, string(reloaded.FieldData), "defaced")
	})

	t.Run("delete of a foreign item is not found", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "DELETE", "/api/items/"+itemID, nil, intruderToken)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.Code)

		_, err = collection.GetItem(victimSite.ID, item.ID)
		assert.NoError(t, err, "the item must survive")
	})

	t.Run("bulk publish skips foreign items", func(t *testing.T) {
		body := map[string]interface{}{"item_ids": []uint{item.ID}}
		resp, err := testutils.MakeRequest(app, "POST", "/api/items/bulk-publish", body, intruderToken)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.Code)

		reloaded, err := collection.GetItem(victimSite.ID, item.ID)
		assert.NoError(t, err)
		assert.False(t, reloaded.IsPublished())
	})

	t.Run("foreign field edits are not found", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "PUT", "/api/fields/"+fieldID, map[string]string{"label": "Hijacked"}, intruderToken)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.Code)

		resp, err = testutils.MakeRequest(app, "DELETE", "/api/fields/"+fieldID, nil, intruderToken)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}
