package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestAuditEmitsStructuredRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	app := fiber.New()
	app.Use(RequestID())
	app.Use(Audit(logger))
	app.Get("/visitors", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(fiber.MethodGet, "/visitors", nil)
	req.Header.Set(requestIDHeader, "req-123")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()

	var record struct {
		Msg       string `json:"msg"`
		Method    string `json:"method"`
		Path      string `json:"path"`
		Status    int    `json:"status"`
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode audit record: %v (raw: %s)", err, buf.String())
	}
	if record.Msg != "request completed" {
		t.Fatalf("expected request completed record, got %q", record.Msg)
	}
	if record.Method != fiber.MethodGet || record.Path != "/visitors" {
		t.Fatalf("unexpected request attributes: %+v", record)
	}
	if record.Status != fiber.StatusOK {
		t.Fatalf("expected status 200, got %d", record.Status)
	}
	if record.RequestID != "req-123" {
		t.Fatalf("expected propagated request id, got %q", record.RequestID)
	}
}

func TestAuditLogsHandlerError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	app := fiber.New()
	app.Use(Audit(logger))
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.ErrInternalServerError
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()

	var record struct {
		Level string `json:"level"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode audit record: %v (raw: %s)", err, buf.String())
	}
	if record.Level != "ERROR" {
		t.Fatalf("expected ERROR level, got %q", record.Level)
	}
	if record.Error == "" {
		t.Fatal("expected the handler error attached to the record")
	}
}
