package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Fantasim/seedcheck/internal/config"
	"github.com/Fantasim/seedcheck/internal/hdkey"
	"github.com/Fantasim/seedcheck/internal/search"
)

const testMnemonic = "rescue account rookie remember dose ice donor organ head eyebrow obvious seven"

func testConfig() *config.Config {
	return &config.Config{
		Port:       8080,
		Accounts:   2,
		AddressGap: 2,
		Workers:    2,
	}
}

// plantTarget returns the address at m/44'/0'/0'/0/1 for the test mnemonic.
func plantTarget(t *testing.T) string {
	t.Helper()

	master, err := hdkey.NewMaster(hdkey.SeedFromMnemonic(testMnemonic))
	if err != nil {
		t.Fatal(err)
	}
	node, err := master.DerivePath([]uint32{
		hdkey.HardenedKeyStart + 44, hdkey.HardenedKeyStart, hdkey.HardenedKeyStart, 0, 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	return node.Address().String()
}

func doSearch(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	Search(testConfig())(rec, req)
	return rec
}

func TestSearch_Found(t *testing.T) {
	target := plantTarget(t)

	body, _ := json.Marshal(map[string]string{
		"mnemonic": testMnemonic,
		"address":  target,
	})
	rec := doSearch(t, string(body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body)
	}

	var resp struct {
		Data struct {
			Found bool          `json:"found"`
			Match *search.Match `json:"match"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if !resp.Data.Found {
		t.Fatal("found = false, want true")
	}
	if resp.Data.Match == nil || resp.Data.Match.Path != "m/44'/0'/0'/0/1" {
		t.Errorf("match = %+v, want path m/44'/0'/0'/0/1", resp.Data.Match)
	}
	if resp.Data.Match.Address != target {
		t.Errorf("match address = %s, want %s", resp.Data.Match.Address, target)
	}
}

func TestSearch_NotFound(t *testing.T) {
	body, _ := json.Marshal(map[string]string{
		"mnemonic": testMnemonic,
		"address":  "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa",
	})
	rec := doSearch(t, string(body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Data struct {
			Found bool          `json:"found"`
			Match *search.Match `json:"match"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Found || resp.Data.Match != nil {
		t.Errorf("response = %+v, want not found with no match", resp.Data)
	}
}

func TestSearch_BadRequests(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"malformed json", "{", http.StatusBadRequest},
		{"missing mnemonic", `{"address":"1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"}`, http.StatusBadRequest},
		{"missing address", `{"mnemonic":"` + testMnemonic + `"}`, http.StatusBadRequest},
		{"invalid base58 address", `{"mnemonic":"` + testMnemonic + `","address":"0OIl"}`, http.StatusBadRequest},
		{"p2sh address", `{"mnemonic":"` + testMnemonic + `","address":"3J98t1WpEZ73CNmQviecrnyiWrnqRhWNLy"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doSearch(t, tt.body)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.wantCode, rec.Body)
			}
			if !strings.Contains(rec.Body.String(), "error") {
				t.Errorf("expected error envelope, got %s", rec.Body)
			}
		})
	}
}
