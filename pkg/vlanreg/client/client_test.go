package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)

	c, err := New("http://localhost:5000/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", c.baseURL)

	hc := &http.Client{}
	c, err = New("http://localhost:5000", WithHTTPClient(hc))
	require.NoError(t, err)
	assert.Same(t, hc, c.httpClient)
}

func TestClient_Create(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/vlans", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"id":100}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"VLAN created successfully","vlan":{"id":100,"name":"VLAN_100","status":"active","created_at":"2026-10-19T12:00:00Z"},"total_vlans":1}`))
	}))
	defer ts.Close()

	c, err := New(ts.URL)
	require.NoError(t, err)

	resp, err := c.Create(context.Background(), CreateRequest{ID: 100})
	require.NoError(t, err)
	assert.Equal(t, 100, resp.VLAN.ID)
	assert.Equal(t, "VLAN_100", resp.VLAN.Name)
	assert.Equal(t, 1, resp.TotalVLANs)
}

func TestClient_ErrorBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"VLAN ID out of range","details":"VLAN ID must be between 2 and 4094","min":2,"max":4094}`))
	}))
	defer ts.Close()

	c, err := New(ts.URL)
	require.NoError(t, err)

	_, err = c.Create(context.Background(), CreateRequest{ID: 5000})
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "VLAN ID out of range", apiErr.Message)
	assert.Equal(t, "VLAN ID must be between 2 and 4094", apiErr.Details)
	assert.Equal(t, json.RawMessage("4094"), apiErr.Fields["max"])
	assert.Contains(t, apiErr.Error(), "HTTP 400")
}

func TestClient_ErrorWithoutJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway down", http.StatusBadGateway)
	}))
	defer ts.Close()

	c, err := New(ts.URL)
	require.NoError(t, err)

	_, err = c.Get(context.Background(), 10)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestClient_ListAndHealth(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/vlans":
			_, _ = w.Write([]byte(`{"total_vlans":2,"count":2,"vlans":[{"id":10,"name":"a","status":"active"},{"id":20,"name":"b","status":"active"}]}`))
		case "/health":
			_, _ = w.Write([]byte(`{"status":"healthy","service":"vlanreg","total_vlans":2,"memory":{"heap_alloc_bytes":1024,"goroutines":4},"uptime":"5s"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	c, err := New(ts.URL)
	require.NoError(t, err)

	list, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, list.TotalVLANs)
	require.Len(t, list.VLANs, 2)
	assert.Equal(t, 20, list.VLANs[1].ID)

	health, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, uint64(1024), health.Memory.HeapAllocBytes)
	assert.Equal(t, 4, health.Memory.Goroutines)
}
