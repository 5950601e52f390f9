package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"brewbooks/internal/logger"
	"brewbooks/internal/models"
	"brewbooks/internal/storage"
	"brewbooks/internal/testutil"
	"brewbooks/internal/validator"
)

// testApp holds the full application stack.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	store, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	return &testApp{DB: db, Router: New(NewServices(db, store, 1<<20))}
}

func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func data(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	d, ok := parseJSON(t, rec)["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object, got: %s", rec.Body.String())
	}
	return d
}

// expect fails the test unless rec carries status.
func expect(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
}

// registerUser registers a user and returns the access and refresh tokens.
func (app *testApp) registerUser(t *testing.T, email string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"name":"Owner","email":%q,"password":"password123"}`, email)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	expect(t, rec, http.StatusCreated)
	d := data(t, rec)
	return d["access_token"].(string), d["refresh_token"].(string)
}

// create posts body to path and returns the id of the created resource.
func (app *testApp) create(t *testing.T, path, body, token string) string {
	t.Helper()
	rec := app.request("POST", path, body, token)
	expect(t, rec, http.StatusCreated)
	return data(t, rec)["id"].(string)
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

func TestRouter_PublicEndpoints(t *testing.T) {
	app := setupApp(t)

	t.Run("health", func(t *testing.T) {
		rec := app.request("GET", "/api/health", "", "")
		expect(t, rec, http.StatusOK)
		if parseJSON(t, rec)["status"] != "ok" {
			t.Error("expected status ok")
		}
	})

	t.Run("unknown route renders error envelope", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/nope", "", "")
		expect(t, rec, http.StatusNotFound)
		if parseJSON(t, rec)["code"] != "NOT_FOUND" {
			t.Error("expected NOT_FOUND code")
		}
	})

	t.Run("protected route requires token", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/accounts", "", "")
		expect(t, rec, http.StatusUnauthorized)
		if parseJSON(t, rec)["message"] != "Unauthenticated." {
			t.Error("unexpected message")
		}
	})

	t.Run("preflight", func(t *testing.T) {
		rec := app.request("OPTIONS", "/api/v1/accounts", "", "")
		expect(t, rec, http.StatusNoContent)
		if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Error("expected CORS header")
		}
	})

	t.Run("request id is echoed", func(t *testing.T) {
		rec := app.request("GET", "/api/health", "", "")
		if rec.Header().Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}
	})
}

func TestRouter_AuthFlow(t *testing.T) {
	app := setupApp(t)
	access, refresh := app.registerUser(t, "Owner@Cafe.test")

	rec := app.request("GET", "/api/v1/auth/me", "", access)
	expect(t, rec, http.StatusOK)
	if data(t, rec)["email"] != "owner@cafe.test" {
		t.Errorf("expected normalized email, got %v", data(t, rec)["email"])
	}

	rec = app.request("POST", "/api/v1/auth/login", `{"email":"owner@cafe.test","password":"wrong-password"}`, "")
	expect(t, rec, http.StatusUnauthorized)

	rec = app.request("POST", "/api/v1/auth/login", `{"email":"owner@cafe.test","password":"password123"}`, "")
	expect(t, rec, http.StatusOK)
	refresh = data(t, rec)["refresh_token"].(string)

	rec = app.request("POST", "/api/v1/auth/refresh", fmt.Sprintf(`{"refresh_token":%q}`, refresh), "")
	expect(t, rec, http.StatusOK)
	rotated := data(t, rec)
	access = rotated["access_token"].(string)
	refresh = rotated["refresh_token"].(string)

	rec = app.request("POST", "/api/v1/auth/logout", "", access)
	expect(t, rec, http.StatusOK)

	rec = app.request("POST", "/api/v1/auth/refresh", fmt.Sprintf(`{"refresh_token":%q}`, refresh), "")
	expect(t, rec, http.StatusUnauthorized)

	rec = app.request("POST", "/api/v1/auth/register", `{"name":"Again","email":"owner@cafe.test","password":"password123"}`, "")
	expect(t, rec, http.StatusUnprocessableEntity)
}

func TestRouter_TransferScenario(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "transfer@cafe.test")

	accountA := app.create(t, "/api/v1/accounts", `{"name":"Till","type":"cash","starting_balance":"1000.50"}`, token)
	accountB := app.create(t, "/api/v1/accounts", `{"name":"Bank","type":"bank","starting_balance":0}`, token)

	rec := app.request("POST", "/api/v1/transactions/transfer",
		fmt.Sprintf(`{"from_account_id":%q,"to_account_id":%q,"amount":"100.00","date":%q}`, accountA, accountB, today()), token)
	expect(t, rec, http.StatusCreated)
	transfer := data(t, rec)
	group := transfer["transfer_group_id"].(string)
	from := transfer["from_transaction"].(map[string]interface{})
	to := transfer["to_transaction"].(map[string]interface{})

	if from["account_id"] != accountA || from["type"] != "expense" || from["amount"] != "100.00" {
		t.Errorf("unexpected from leg %v", from)
	}
	if to["account_id"] != accountB || to["type"] != "income" || to["amount"] != "100.00" {
		t.Errorf("unexpected to leg %v", to)
	}
	if from["transfer_group_id"] != group || to["transfer_group_id"] != group {
		t.Error("expected both legs to share the transfer group")
	}

	rec = app.request("GET", "/api/v1/transactions-statistics", "", token)
	expect(t, rec, http.StatusOK)
	stats := data(t, rec)
	if stats["total_income"] != "100.00" || stats["total_expense"] != "100.00" || stats["net_amount"] != "0.00" {
		t.Errorf("unexpected statistics %v", stats)
	}

	rec = app.request("GET", "/api/v1/accounts/"+accountA, "", token)
	expect(t, rec, http.StatusOK)
	if data(t, rec)["current_balance"] != "900.50" {
		t.Errorf("expected balance 900.50, got %v", data(t, rec)["current_balance"])
	}

	rec = app.request("PUT", "/api/v1/transactions/"+from["id"].(string), `{"amount":"5.00"}`, token)
	expect(t, rec, http.StatusUnprocessableEntity)

	rec = app.request("DELETE", "/api/v1/accounts/"+accountA, "", token)
	expect(t, rec, http.StatusUnprocessableEntity)
	if parseJSON(t, rec)["message"] != "Cannot delete account that has transactions" {
		t.Error("unexpected delete guard message")
	}

	rec = app.request("DELETE", "/api/v1/transactions/"+to["id"].(string), "", token)
	expect(t, rec, http.StatusOK)

	rec = app.request("GET", "/api/v1/transactions", "", token)
	expect(t, rec, http.StatusOK)
	if n := len(parseJSON(t, rec)["data"].([]interface{})); n != 0 {
		t.Errorf("expected both legs deleted, %d remain", n)
	}

	rec = app.request("DELETE", "/api/v1/accounts/"+accountA, "", token)
	expect(t, rec, http.StatusOK)
}

func TestRouter_CategoryMismatchScenario(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "groceries@cafe.test")

	account := app.create(t, "/api/v1/accounts", `{"name":"Till","type":"cash","starting_balance":"0"}`, token)
	category := app.create(t, "/api/v1/categories", `{"name":"Groceries","type":"expense"}`, token)

	rec := app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"account_id":%q,"category_id":%q,"type":"income","date":%q,"amount":"10"}`, account, category, today()), token)
	expect(t, rec, http.StatusUnprocessableEntity)
	errs := parseJSON(t, rec)["errors"].(map[string]interface{})
	if _, ok := errs["category_id"]; !ok {
		t.Errorf("expected category_id error, got %v", errs)
	}
}

func TestRouter_ListingAndOwnership(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "owner@cafe.test")
	other, _ := app.registerUser(t, "other@cafe.test")

	account := app.create(t, "/api/v1/accounts", `{"name":"Till","type":"cash","starting_balance":"0"}`, token)
	beans := app.create(t, "/api/v1/categories", `{"name":"Beans","type":"expense"}`, token)
	sales := app.create(t, "/api/v1/categories", `{"name":"Sales","type":"income"}`, token)

	entries := []struct {
		category, kind, amount, counterparty string
	}{
		{beans, "expense", "42.10", "Roastery"},
		{sales, "income", "120.00", "Walk-ins"},
		{sales, "income", "80.00", "Catering"},
	}
	var firstID string
	for i, e := range entries {
		id := app.create(t, "/api/v1/transactions",
			fmt.Sprintf(`{"account_id":%q,"category_id":%q,"type":%q,"date":%q,"amount":%q,"counterparty":%q}`,
				account, e.category, e.kind, today(), e.amount, e.counterparty), token)
		if i == 0 {
			firstID = id
		}
	}

	t.Run("paginates with envelope", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/transactions?per_page=2&sort_by=amount&sort_order=desc", "", token)
		expect(t, rec, http.StatusOK)
		result := parseJSON(t, rec)
		pag := result["pagination"].(map[string]interface{})
		if pag["total"] != float64(3) || pag["last_page"] != float64(2) || pag["per_page"] != float64(2) {
			t.Errorf("unexpected pagination %v", pag)
		}
		first := result["data"].([]interface{})[0].(map[string]interface{})
		if first["amount"] != "120.00" {
			t.Errorf("expected largest amount first, got %v", first["amount"])
		}
	})

	t.Run("filters by search and type", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/transactions?q=roast&type=expense", "", token)
		expect(t, rec, http.StatusOK)
		rows := parseJSON(t, rec)["data"].([]interface{})
		if len(rows) != 1 || rows[0].(map[string]interface{})["id"] != firstID {
			t.Errorf("expected only the roastery entry, got %v", rows)
		}
	})

	t.Run("statistics by category", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/transactions-statistics?category_id="+sales, "", token)
		expect(t, rec, http.StatusOK)
		stats := data(t, rec)
		if stats["total_income"] != "200.00" || stats["income_count"] != float64(2) || stats["expense_count"] != float64(0) {
			t.Errorf("unexpected statistics %v", stats)
		}
	})

	t.Run("account list meta", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/accounts?q=till&is_active=true", "", token)
		expect(t, rec, http.StatusOK)
		meta := parseJSON(t, rec)["meta"].(map[string]interface{})
		if meta["total"] != float64(1) {
			t.Errorf("unexpected meta %v", meta)
		}
	})

	t.Run("other user sees nothing", func(t *testing.T) {
		for _, path := range []string{
			"/api/v1/accounts/" + account,
			"/api/v1/categories/" + beans,
			"/api/v1/transactions/" + firstID,
		} {
			rec := app.request("GET", path, "", other)
			expect(t, rec, http.StatusNotFound)
		}

		rec := app.request("GET", "/api/v1/transactions", "", other)
		expect(t, rec, http.StatusOK)
		if len(parseJSON(t, rec)["data"].([]interface{})) != 0 {
			t.Error("expected empty listing for other user")
		}

		rec = app.request("DELETE", "/api/v1/transactions/"+firstID, "", other)
		expect(t, rec, http.StatusNotFound)
	})

	t.Run("category in use cannot be deleted", func(t *testing.T) {
		rec := app.request("DELETE", "/api/v1/categories/"+beans, "", token)
		expect(t, rec, http.StatusUnprocessableEntity)
		if parseJSON(t, rec)["code"] != "CATEGORY_HAS_TRANSACTIONS" {
			t.Error("expected CATEGORY_HAS_TRANSACTIONS")
		}
	})
}

func TestRouter_AttachmentsAndReports(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "receipts@cafe.test")

	account := app.create(t, "/api/v1/accounts", `{"name":"Till","type":"cash","starting_balance":"0"}`, token)
	category := app.create(t, "/api/v1/categories", `{"name":"Milk","type":"expense"}`, token)
	txID := app.create(t, "/api/v1/transactions",
		fmt.Sprintf(`{"account_id":%q,"category_id":%q,"type":"expense","date":%q,"amount":"9.99"}`, account, category, today()), token)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, _ := w.CreateFormFile("file", "milk.png")
	_, _ = part.Write([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00"))
	_ = w.Close()

	req := httptest.NewRequest("POST", "/api/v1/transactions/"+txID+"/attachments", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	expect(t, rec, http.StatusCreated)
	attachmentID := data(t, rec)["id"].(string)

	rec = app.request("GET", "/api/v1/attachments/"+attachmentID, "", token)
	expect(t, rec, http.StatusOK)
	if rec.Header().Get("Content-Type") != "image/png" {
		t.Errorf("unexpected content type %q", rec.Header().Get("Content-Type"))
	}

	rec = app.request("GET", "/api/v1/reports/transactions?format=xlsx", "", token)
	expect(t, rec, http.StatusOK)
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Error("expected an xlsx document")
	}

	rec = app.request("GET", "/api/v1/reports/transactions", "", token)
	expect(t, rec, http.StatusOK)
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("expected a pdf document")
	}

	rec = app.request("DELETE", "/api/v1/transactions/"+txID, "", token)
	expect(t, rec, http.StatusOK)

	var remaining int64
	app.DB.Model(&models.Attachment{}).Count(&remaining)
	if remaining != 0 {
		t.Errorf("expected attachments removed with the transaction, %d remain", remaining)
	}
	rec = app.request("GET", "/api/v1/attachments/"+attachmentID, "", token)
	expect(t, rec, http.StatusNotFound)
}
