package api

import (
	"time"

	"evalgo.org/vlanreg/internal/registry"
	"evalgo.org/vlanreg/models"
)

// CreateVLANResponse is returned by POST /vlans.
type CreateVLANResponse struct {
	Message    string      `json:"message"`
	VLAN       models.VLAN `json:"vlan"`
	TotalVLANs int         `json:"total_vlans"`
}

// VLANsResponse is returned by GET /vlans. Count mirrors TotalVLANs for
// clients of the earlier list format.
type VLANsResponse struct {
	TotalVLANs int           `json:"total_vlans"`
	Count      int           `json:"count"`
	VLANs      []models.VLAN `json:"vlans"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	registry.Health
	Service string `json:"service"`
	Version string `json:"version"`
}

// IndexResponse is the endpoint directory served on GET /.
type IndexResponse struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	VLANRange VLANRange         `json:"vlan_range"`
	Endpoints map[string]string `json:"endpoints"`
	Timestamp time.Time         `json:"timestamp"`
}

// VLANRange describes the accepted VLAN IDs.
type VLANRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}
