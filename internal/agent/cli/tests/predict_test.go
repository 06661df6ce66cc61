package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/IvanChernomyrdin/go-quakecast/internal/agent/cli"
	"github.com/IvanChernomyrdin/go-quakecast/internal/agent/config"
)

func TestNewPredictCmd_Success_PrintsModelResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/predict", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer token-1" {
			t.Errorf("expected Authorization Bearer token-1, got %q", auth)
		}

		var req struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Depth     float64 `json:"depth"`
			Stations  int     `json:"stations"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Latitude != 36.1 || req.Longitude != 28.4 || req.Depth != 10 || req.Stations != 42 {
			t.Errorf("unexpected request body: %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"id": "p1",
				"input": map[string]any{
					"latitude": 36.1, "longitude": 28.4, "depth": 10, "stations": 42,
				},
				"regression": map[string]float64{
					"random_forest":     5.12,
					"gradient_boosting": 5.3,
				},
				"classification": map[string]string{
					"random_forest": "moderate",
				},
			},
		})
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	tmpDir := t.TempDir()
	app := &cli.App{
		ServerURL: srv.URL,
		CredsPath: filepath.Join(tmpDir, "creds.json"),
		Creds:     &config.Credentials{Token: "token-1"},
	}

	cmd := cli.NewPredictCmd(app)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	cmd.SetArgs([]string{
		"--latitude", "36.1",
		"--longitude", "28.4",
		"--depth", "10",
		"--stations", "42",
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "prediction p1") {
		t.Fatalf("expected prediction id in output, got %q", got)
	}
	if !strings.Contains(got, "random_forest") || !strings.Contains(got, "5.1200") {
		t.Fatalf("expected regression results in output, got %q", got)
	}
	if !strings.Contains(got, "moderate") {
		t.Fatalf("expected classification results in output, got %q", got)
	}

	// модели выводятся в алфавитном порядке
	gb := strings.Index(got, "gradient_boosting")
	rf := strings.Index(got, "random_forest")
	if gb == -1 || rf == -1 || gb > rf {
		t.Fatalf("expected models sorted alphabetically, got %q", got)
	}
}

func TestNewPredictCmd_NoToken_ReturnsError(t *testing.T) {
	tmpDir := t.TempDir()
	app := &cli.App{
		ServerURL: "https://127.0.0.1:4000",
		CredsPath: filepath.Join(tmpDir, "creds.json"),
		Creds:     &config.Credentials{},
	}

	cmd := cli.NewPredictCmd(app)
	cmd.SetArgs([]string{
		"--latitude", "36.1",
		"--longitude", "28.4",
		"--depth", "10",
		"--stations", "42",
	})

	err := cmd.Execute()
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "no token") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewPredictCmd_MissingRequiredFlags_ReturnsError(t *testing.T) {
	tmpDir := t.TempDir()
	app := &cli.App{
		ServerURL: "https://127.0.0.1:4000",
		CredsPath: filepath.Join(tmpDir, "creds.json"),
		Creds:     &config.Credentials{Token: "token-1"},
	}

	cmd := cli.NewPredictCmd(app)
	cmd.SetArgs([]string{
		"--latitude", "36.1",
		// остальные флаги пропущены
	})

	err := cmd.Execute()
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewPredictCmd_ServerError_ReturnsServerMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/predict", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success": false, "message": "prediction service failed"}`))
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	tmpDir := t.TempDir()
	app := &cli.App{
		ServerURL: srv.URL,
		CredsPath: filepath.Join(tmpDir, "creds.json"),
		Creds:     &config.Credentials{Token: "token-1"},
	}

	cmd := cli.NewPredictCmd(app)
	cmd.SetArgs([]string{
		"--latitude", "36.1",
		"--longitude", "28.4",
		"--depth", "10",
		"--stations", "42",
	})

	err := cmd.Execute()
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "prediction service failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}
