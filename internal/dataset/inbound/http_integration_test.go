package inbound

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tranthaituong/DataAnalystAssistant/internal/dataset/event"
	"github.com/tranthaituong/DataAnalystAssistant/internal/dataset/store"
	"github.com/tranthaituong/DataAnalystAssistant/internal/dataset/usecase"
	"github.com/tranthaituong/DataAnalystAssistant/internal/pkg/pkgrouter"
	"github.com/tranthaituong/DataAnalystAssistant/internal/pkg/pkgroutine"
	"github.com/tranthaituong/DataAnalystAssistant/internal/pkg/pkguid"
)

type envelope[T any] struct {
	Message string         `json:"message"`
	Data    T              `json:"data"`
	Meta    map[string]any `json:"meta,omitempty"`
}

type testEnv struct {
	router  *pkgrouter.Router
	storage *store.TempStore
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	runner := pkgroutine.NewManager(4)
	storage, err := store.NewTempStore(context.Background(), store.TempConfig{
		Dir:    t.TempDir(),
		TTL:    time.Minute,
		Runner: runner,
	})
	if err != nil {
		t.Fatalf("new temp store: %v", err)
	}

	bus := event.NewBus(32)
	janitor := event.NewJanitor(bus, event.FileCleaner{Store: storage}, event.JanitorConfig{
		Workers:     2,
		MaxRetries:  2,
		BaseBackoff: time.Millisecond,
	})
	janitor.Start()

	runID, err := pkguid.NewSnowflake()
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	uc := usecase.New(usecase.Dependency{
		Store:  storage,
		Events: bus,
		UID:    pkguid.NewUUID(),
		RunID:  runID,
	})

	router := pkgrouter.NewRouter(pkguid.NewUUID())
	RegisterHTTPEndpoint(router, uc)

	t.Cleanup(func() {
		_ = janitor.Stop(context.Background())
		_ = storage.Close()
	})

	return testEnv{router: router, storage: storage}
}

func postMultipart(t *testing.T, router http.Handler, target, filename, content string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write content: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestValidationUploadFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := postMultipart(t, env.router, "/validations", "Report Final.csv", "a,b\n1,2\n3,4\n")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	var resp envelope[ValidationResponse]
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	data := resp.Data
	if data.FileName != "Report Final.csv" {
		t.Fatalf("file name = %q", data.FileName)
	}
	if data.Rows != 2 || data.Columns != 2 {
		t.Fatalf("unexpected shape %dx%d", data.Rows, data.Columns)
	}
	if len(data.ColumnNames) != 2 || data.ColumnNames[0] != "a" {
		t.Fatalf("unexpected column names: %v", data.ColumnNames)
	}
	if len(data.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", data.Warnings)
	}
	if data.FileSize != "12.00 B" || data.SizeBytes != 12 {
		t.Fatalf("unexpected size: %s (%d)", data.FileSize, data.SizeBytes)
	}
	if data.Encoding != "utf-8" || data.Format != "csv" {
		t.Fatalf("unexpected encoding %q format %q", data.Encoding, data.Format)
	}
	if resp.Meta["run_id"] == nil {
		t.Fatal("expected run_id in meta")
	}
	if resp.Meta["policy"] != "check" {
		t.Fatalf("unexpected policy meta: %v", resp.Meta["policy"])
	}

	// The janitor removes the upload once validation has finished.
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if env.storage.Len() == 0 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("temp file not cleaned up, len=%d", env.storage.Len())
}

func TestValidationDuplicatePolicies(t *testing.T) {
	env := newTestEnv(t)

	rec := postMultipart(t, env.router, "/validations?policy=check", "dup.csv", "a,a\n1,2\n")
	if rec.Code != http.StatusConflict {
		t.Fatalf("check: unexpected status %d body=%s", rec.Code, rec.Body.String())
	}

	var errResp struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Message != "Duplicate column names detected: a" {
		t.Fatalf("unexpected message: %s", errResp.Message)
	}

	rec = postMultipart(t, env.router, "/validations?policy=rename", "dup.csv", "a,a\n1,2\n")
	if rec.Code != http.StatusOK {
		t.Fatalf("rename: unexpected status %d body=%s", rec.Code, rec.Body.String())
	}

	var resp envelope[ValidationResponse]
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode rename response: %v", err)
	}
	if resp.Data.Columns != 2 || resp.Data.ColumnNames[1] != "a.1" {
		t.Fatalf("unexpected rename columns: %v", resp.Data.ColumnNames)
	}

	rec = postMultipart(t, env.router, "/validations?policy=bogus", "dup.csv", "a,a\n1,2\n")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bogus policy: unexpected status %d", rec.Code)
	}
}

func TestValidationRawBodyUpload(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/validations?filename=data.csv", strings.NewReader("a,b\n1,2\n"))
	req.Header.Set("Content-Type", "text/csv")

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	var resp envelope[ValidationResponse]
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.FileName != "data.csv" || resp.Data.Rows != 1 {
		t.Fatalf("unexpected response: %+v", resp.Data)
	}
}

func TestValidationRawBodyRequiresFilename(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/validations", strings.NewReader("a,b\n1,2\n"))
	req.Header.Set("Content-Type", "text/csv")

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestValidationUnsupportedUpload(t *testing.T) {
	env := newTestEnv(t)

	rec := postMultipart(t, env.router, "/validations", "notes.txt", "dummy")
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
}
