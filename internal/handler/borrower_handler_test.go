package handler

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestRegisterBorrower_Success(t *testing.T) {
	f := newFixture()

	body := `{"branchId":1,"fullName":"Grace Auma","business":"Market stall","mobile":"+256700000001"}`
	c, rec := f.request(t, http.MethodPost, "/api/v1/borrowers", body)

	if err := f.borrower.RegisterBorrower(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp["fullName"] != "Grace Auma" {
		t.Errorf("Expected name in response, got %v", resp["fullName"])
	}
	if resp["branchId"] != float64(1) {
		t.Errorf("Expected branchId 1 in response, got %v", resp["branchId"])
	}
	if resp["business"] != "Market stall" {
		t.Errorf("Expected business in response, got %v", resp["business"])
	}
	if resp["mobile"] != "+256700000001" {
		t.Errorf("Expected mobile in response, got %v", resp["mobile"])
	}
	if resp["uniqueId"] == "" || resp["uniqueId"] == nil {
		t.Error("Expected a generated unique id")
	}
	if resp["status"] != "Active" {
		t.Errorf("Expected Active status, got %v", resp["status"])
	}
}

func TestRegisterBorrower_MissingBranch(t *testing.T) {
	f := newFixture()

	c, rec := f.request(t, http.MethodPost, "/api/v1/borrowers", `{"fullName":"Grace Auma"}`)

	if err := f.borrower.RegisterBorrower(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestRegisterBorrower_UnknownBranch(t *testing.T) {
	f := newFixture()

	c, rec := f.request(t, http.MethodPost, "/api/v1/borrowers", `{"branchId":9,"fullName":"Grace Auma"}`)

	if err := f.borrower.RegisterBorrower(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestRegisterBorrower_MissingName(t *testing.T) {
	f := newFixture()

	c, rec := f.request(t, http.MethodPost, "/api/v1/borrowers", `{}`)

	if err := f.borrower.RegisterBorrower(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestRegisterBorrower_DuplicateUniqueID(t *testing.T) {
	f := newFixture()

	body := `{"branchId":1,"fullName":"Grace Auma","uniqueId":"NIN-001"}`
	c, rec := f.request(t, http.MethodPost, "/api/v1/borrowers", body)
	if err := f.borrower.RegisterBorrower(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	c, rec = f.request(t, http.MethodPost, "/api/v1/borrowers", body)
	if err := f.borrower.RegisterBorrower(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}

func TestGetBorrower_NotFound(t *testing.T) {
	f := newFixture()

	c, rec := f.request(t, http.MethodGet, "/api/v1/borrowers/9", "")
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := f.borrower.GetBorrower(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestUpdateBorrowerStatus_Invalid(t *testing.T) {
	f := newFixture()

	c, rec := f.request(t, http.MethodPost, "/api/v1/borrowers", `{"branchId":1,"fullName":"Grace Auma"}`)
	if err := f.borrower.RegisterBorrower(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	c, rec = f.request(t, http.MethodPatch, "/api/v1/borrowers/1/status", `{"status":"Suspended"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := f.borrower.UpdateStatus(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
