package web

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalgo.org/vlanreg/internal/registry"
	"evalgo.org/vlanreg/models"
)

func renderString(t *testing.T, render func(ctx context.Context, buf *bytes.Buffer) error) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, render(context.Background(), &buf))
	return buf.String()
}

// TestHandlerCreation verifies we can create a web handler
func TestHandlerCreation(t *testing.T) {
	reg := registry.New()
	handler := NewHandler(reg)

	assert.NotNil(t, handler)
	assert.Same(t, reg, handler.registry)
}

func TestVLANTable_Empty(t *testing.T) {
	out := renderString(t, func(ctx context.Context, buf *bytes.Buffer) error {
		return VLANTable(nil, time.Now()).Render(ctx, buf)
	})

	assert.Contains(t, out, "No VLANs registered yet.")
	assert.NotContains(t, out, "<table>")
}

func TestVLANTable_EscapesNames(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	vlans := []models.VLAN{
		models.NewVLAN(10, "<script>alert(1)</script>", now.Add(-3*time.Minute)),
		models.NewVLAN(20, "", now),
	}

	out := renderString(t, func(ctx context.Context, buf *bytes.Buffer) error {
		return VLANTable(vlans, now).Render(ctx, buf)
	})

	assert.Contains(t, out, "<td>10</td>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "VLAN_20")
	assert.Contains(t, out, "3 minutes ago")
}

func TestHealthCards(t *testing.T) {
	out := renderString(t, func(ctx context.Context, buf *bytes.Buffer) error {
		return HealthCards(registry.Health{
			Status:     "healthy",
			TotalVLANs: 3,
			Memory:     registry.MemorySample{HeapAllocBytes: 2 * 1024 * 1024, Goroutines: 7},
			Uptime:     "1m0s",
		}).Render(ctx, buf)
	})

	assert.Contains(t, out, "healthy")
	assert.Contains(t, out, "2.0 MiB")
	assert.Contains(t, out, "1m0s")
}

func TestDashboardHandler(t *testing.T) {
	reg := registry.New()
	_, _, err := reg.Create(registry.CreateRequest{ID: 100, Name: "provisioning"})
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/ui", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, NewHandler(reg).Dashboard(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "<title>VLAN Registry</title>")
	assert.Contains(t, body, "Accepted IDs: 2&ndash;4094")
	assert.Contains(t, body, "provisioning")
	assert.Contains(t, body, "/ws/events")
}
