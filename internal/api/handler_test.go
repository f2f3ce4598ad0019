package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorlink/supplier-dashboard/internal/announcement"
	"github.com/vendorlink/supplier-dashboard/internal/dashboard"
	"github.com/vendorlink/supplier-dashboard/internal/localdata"
	"github.com/vendorlink/supplier-dashboard/internal/notice"
	"github.com/vendorlink/supplier-dashboard/internal/odata"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeEntityService serves canned OData responses per entity set and can be
// told to fail individual sets.
type fakeEntityService struct {
	failing map[string]bool
}

func (f *fakeEntityService) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entitySet := strings.TrimPrefix(r.URL.Path, "/")
		if f.failing[entitySet] {
			http.Error(w, "entity service down", http.StatusServiceUnavailable)
			return
		}

		var rows string
		switch entitySet {
		case odata.EntityBusinessValueTrend:
			rows = `[{"PoValue_Jan":"100","PoValue_Feb":"200","PoValue_Y2D":"1200","TotalAmountCurrency":"EUR"}]`
		case odata.EntityTopProducts:
			rows = `[` + strings.Repeat(`{"MaterialName":"Bearings","TotalAmount":"500"},`, 6) +
				`{"MaterialName":"Valves","TotalAmount":"400"}]`
		case odata.EntityTopOpenPurchaseOrders:
			rows = `[]`
		case odata.EntityBusinessCommitments:
			rows = `[{"PurchaseContract":"4600000001","DaysPendingToExpire":"45"}]`
		default:
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"d":{"results":` + rows + `}}`))
	}
}

func newTestRouter(t *testing.T, entityService *fakeEntityService, items []announcement.Item) (*gin.Engine, *notice.Center) {
	t.Helper()

	server := httptest.NewServer(entityService.handler())
	t.Cleanup(server.Close)

	logger := zap.NewNop()
	notices := notice.NewCenter(20, logger)
	client := odata.NewClient(odata.Config{BaseURL: server.URL, Timeout: 5 * time.Second}, notices, logger)
	engine := dashboard.NewEngineWithClock(func() time.Time {
		return time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	})
	aggregator := dashboard.NewAggregator(client, engine, notices, logger)
	service := dashboard.NewService(aggregator, logger)

	handler := NewHandler(
		service,
		announcement.NewStore(items),
		announcement.NewSelection(notices),
		localdata.Load(t.TempDir(), logger),
		notices,
		"100000",
		logger,
	)

	router := gin.New()
	handler.Register(router)
	return router, notices
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestGetDashboard(t *testing.T) {
	router, _ := newTestRouter(t, &fakeEntityService{}, nil)

	recorder := doRequest(router, http.MethodGet, "/api/v1/dashboard?vendor=100000", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decode(t, recorder)

	businessData := body["businessData"].(map[string]any)
	assert.Equal(t, float64(1200), businessData["totalPOValue"])
	assert.Equal(t, "EUR", businessData["currency"])
	assert.Equal(t, float64(200), businessData["currentMonthValue"], "February per the injected clock")
	assert.Len(t, businessData["monthlySpendTrend"].([]any), 12)

	assert.Len(t, body["products"].([]any), 5, "seven service rows truncate to five")
	assert.Empty(t, body["purchaseOrders"].([]any), "zero open orders is a success")
	assert.Len(t, body["contracts"].([]any), 1)
}

func TestGetDashboardAggregationFailure(t *testing.T) {
	entityService := &fakeEntityService{failing: map[string]bool{
		odata.EntityBusinessCommitments: true,
	}}
	router, notices := newTestRouter(t, entityService, nil)

	recorder := doRequest(router, http.MethodGet, "/api/v1/dashboard", "")
	require.Equal(t, http.StatusBadGateway, recorder.Code)

	body := decode(t, recorder)
	assert.Contains(t, body["error"], "Something went wrong")

	// Nothing was published.
	current := doRequest(router, http.MethodGet, "/api/v1/dashboard/current", "")
	assert.Equal(t, http.StatusNotFound, current.Code)

	// One transient notice for the failed entity set, one generic error.
	var levels []notice.Level
	for _, n := range notices.Recent() {
		levels = append(levels, n.Level)
	}
	assert.Contains(t, levels, notice.LevelTransient)
	assert.Contains(t, levels, notice.LevelError)
}

func TestGetCurrentDashboardAfterRefresh(t *testing.T) {
	router, _ := newTestRouter(t, &fakeEntityService{}, nil)

	require.Equal(t, http.StatusOK, doRequest(router, http.MethodGet, "/api/v1/dashboard", "").Code)

	recorder := doRequest(router, http.MethodGet, "/api/v1/dashboard/current", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	body := decode(t, recorder)
	assert.NotNil(t, body["businessData"])
}

func TestGetSettledDashboard(t *testing.T) {
	entityService := &fakeEntityService{failing: map[string]bool{
		odata.EntityTopProducts: true,
	}}
	router, _ := newTestRouter(t, entityService, nil)

	recorder := doRequest(router, http.MethodGet, "/api/v1/dashboard/settled", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decode(t, recorder)
	assert.Equal(t, false, body["complete"])
	assert.Len(t, body["statuses"].([]any), 4)
	assert.Empty(t, body["products"].([]any), "failed set keeps its empty shape")
	assert.Len(t, body["contracts"].([]any), 1, "successful sets still load")
}

func TestGetAnnouncements(t *testing.T) {
	items := []announcement.Item{
		{Category: "RFQ", Title: "RFQ for bearings"},
		{Category: "Urgent", Title: "Plant shutdown"},
		{Category: "RFQ", Title: "RFQ for valves"},
	}
	router, _ := newTestRouter(t, &fakeEntityService{}, items)

	recorder := doRequest(router, http.MethodGet, "/api/v1/announcements?category=RFQ", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decode(t, recorder)
	assert.Equal(t, "RFQ", body["selectedCategory"])
	views := body["items"].([]any)
	require.Len(t, views, 2)
	first := views[0].(map[string]any)
	assert.Equal(t, "RFQ for bearings", first["title"])
	assert.Equal(t, "sap-icon://message-information", first["icon"])
	assert.Equal(t, "Information", first["statusState"])

	// "All" after a narrower filter restores the full set.
	recorder = doRequest(router, http.MethodGet, "/api/v1/announcements?category=All", "")
	body = decode(t, recorder)
	assert.Len(t, body["items"].([]any), 3)
}

func TestPutSelection(t *testing.T) {
	router, notices := newTestRouter(t, &fakeEntityService{}, nil)

	recorder := doRequest(router, http.MethodPut, "/api/v1/selection", `{"keys":["Valves"]}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	// Deselecting everything is rejected and reverted.
	recorder = doRequest(router, http.MethodPut, "/api/v1/selection", `{"keys":[]}`)
	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	body := decode(t, recorder)
	for _, raw := range body["products"].([]any) {
		product := raw.(map[string]any)
		assert.Equal(t, product["key"] == "Valves", product["selected"])
	}

	var warnings int
	for _, n := range notices.Recent() {
		if n.Level == notice.LevelWarning {
			warnings++
		}
	}
	assert.Equal(t, 1, warnings)
}

func TestGetResourceNotFound(t *testing.T) {
	router, _ := newTestRouter(t, &fakeEntityService{}, nil)

	recorder := doRequest(router, http.MethodGet, "/api/v1/resources/ppmData", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetNoticesDrain(t *testing.T) {
	entityService := &fakeEntityService{failing: map[string]bool{
		odata.EntityBusinessValueTrend: true,
	}}
	router, _ := newTestRouter(t, entityService, nil)

	doRequest(router, http.MethodGet, "/api/v1/dashboard", "")

	recorder := doRequest(router, http.MethodGet, "/api/v1/notices?drain=true", "")
	body := decode(t, recorder)
	assert.NotEmpty(t, body["notices"])

	recorder = doRequest(router, http.MethodGet, "/api/v1/notices", "")
	body = decode(t, recorder)
	assert.Empty(t, body["notices"])
}
