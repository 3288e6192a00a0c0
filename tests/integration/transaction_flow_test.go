package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestTransactionFlow_InstallmentPurchase(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "installments@test.com", "password123")
	cardID := app.createCard(t, token, "Nubank", "4321")

	// A 300.00 purchase in 3 installments becomes 3 rows of 100.00
	body := fmt.Sprintf(`{
		"description": "Television",
		"amount": 300,
		"date": "2026-03-10",
		"type": "expense",
		"card_id": %.0f,
		"installments": 3
	}`, cardID)
	rec := app.request("POST", "/api/v1/transactions", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	created := result["transactions"].([]interface{})
	if len(created) != 3 {
		t.Fatalf("expected 3 installment rows, got %d", len(created))
	}
	expectedDates := []string{"2026-03-10", "2026-04-10", "2026-05-10"}
	for i, item := range created {
		tx := item.(map[string]interface{})
		if tx["amount"].(float64) != 100 {
			t.Errorf("row %d: expected amount 100, got %v", i, tx["amount"])
		}
		if tx["installment_total"].(float64) != 3 {
			t.Errorf("row %d: expected total 3, got %v", i, tx["installment_total"])
		}
		if tx["installment_current"].(float64) != float64(i+1) {
			t.Errorf("row %d: expected current %d, got %v", i, i+1, tx["installment_current"])
		}
		date := tx["date"].(string)
		if len(date) < 10 || date[:10] != expectedDates[i] {
			t.Errorf("row %d: expected date %s, got %v", i, expectedDates[i], date)
		}
	}

	// All 3 rows appear in the listing
	rec = app.request("GET", "/api/v1/transactions", "", token)
	result = parseJSON(t, rec)
	page := result["transactions"].(map[string]interface{})
	if page["total_items"].(float64) != 3 {
		t.Fatalf("expected 3 transactions listed, got %v", page["total_items"])
	}
}

func TestTransactionFlow_ConflictingReferences(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "conflict@test.com", "password123")
	cardID := app.createCard(t, token, "Nubank", "4321")

	// Income cannot reference a card
	body := fmt.Sprintf(`{
		"description": "Salary",
		"amount": 5000,
		"date": "2026-03-01",
		"type": "income",
		"card_id": %.0f
	}`, cardID)
	rec := app.request("POST", "/api/v1/transactions", body, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	errObj := result["error"].(map[string]interface{})
	if errObj["code"] != "CONFLICTING_REFERENCES" {
		t.Errorf("expected CONFLICTING_REFERENCES, got %v", errObj["code"])
	}
}

func TestTransactionFlow_UnownedReferenceRejected(t *testing.T) {
	app := setupApp(t)
	aliceToken, _, _ := app.registerUser(t, "txalice@test.com", "password123")
	bobToken, _, _ := app.registerUser(t, "txbob@test.com", "password123")

	aliceCardID := app.createCard(t, aliceToken, "Nubank", "4321")

	// Bob cannot attach a transaction to Alice's card
	body := fmt.Sprintf(`{
		"description": "Sneaky",
		"amount": 10,
		"date": "2026-03-10",
		"type": "expense",
		"card_id": %.0f
	}`, aliceCardID)
	rec := app.request("POST", "/api/v1/transactions", body, bobToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unowned card reference, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestTransactionFlow_FilterByTypeAndDate(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "txfilter@test.com", "password123")

	create := func(description string, amount float64, date, txType string) {
		body := fmt.Sprintf(`{"description":%q,"amount":%v,"date":%q,"type":%q}`,
			description, amount, date, txType)
		rec := app.request("POST", "/api/v1/transactions", body, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %s failed: %d %s", description, rec.Code, rec.Body.String())
		}
	}

	create("Salary", 5000, "2026-03-01", "income")
	create("Groceries", 200, "2026-03-05", "expense")
	create("Rent", 1500, "2026-04-01", "expense")

	// Only March expenses
	rec := app.request("GET", "/api/v1/transactions?type=expense&from=2026-03-01&to=2026-03-31", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	page := result["transactions"].(map[string]interface{})
	if page["total_items"].(float64) != 1 {
		t.Fatalf("expected 1 transaction, got %v", page["total_items"])
	}
	data := page["data"].([]interface{})
	tx := data[0].(map[string]interface{})
	if tx["description"] != "Groceries" {
		t.Errorf("expected Groceries, got %v", tx["description"])
	}
}

func TestTransactionFlow_UpdateAndDeleteSibling(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "txedit@test.com", "password123")

	body := `{
		"description": "Course",
		"amount": 600,
		"date": "2026-03-10",
		"type": "expense",
		"installments": 3
	}`
	rec := app.request("POST", "/api/v1/transactions", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	created := result["transactions"].([]interface{})
	first := created[0].(map[string]interface{})
	firstID := first["id"].(float64)

	// Edit one sibling without touching the others
	rec = app.request("PUT", fmt.Sprintf("/api/v1/transactions/%.0f", firstID),
		`{"amount":250.5}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}
	updateResult := parseJSON(t, rec)
	updated := updateResult["transaction"].(map[string]interface{})
	if updated["amount"].(float64) != 250.5 {
		t.Errorf("expected amount 250.5, got %v", updated["amount"])
	}

	// Delete one sibling; the remaining rows keep their descriptors
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/transactions/%.0f", firstID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/transactions", "", token)
	result = parseJSON(t, rec)
	page := result["transactions"].(map[string]interface{})
	if page["total_items"].(float64) != 2 {
		t.Fatalf("expected 2 remaining rows, got %v", page["total_items"])
	}
	for _, item := range page["data"].([]interface{}) {
		tx := item.(map[string]interface{})
		if tx["installment_total"].(float64) != 3 {
			t.Errorf("expected remaining rows to keep total 3, got %v", tx["installment_total"])
		}
	}
}

func TestTransactionFlow_Export(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "txexport@test.com", "password123")

	body := `{"description":"Groceries","amount":100,"date":"2026-03-10","type":"expense"}`
	rec := app.request("POST", "/api/v1/transactions", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/transactions/export", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("export failed: %d %s", rec.Code, rec.Body.String())
	}
	contentType := rec.Header().Get("Content-Type")
	if contentType != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type: %s", contentType)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected non-empty spreadsheet body")
	}
}
