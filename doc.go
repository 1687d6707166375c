// Package vlanreg is an in-memory registry of 802.1Q VLAN IDs served over HTTP.
//
// # Overview
//
// vlanreg records which VLAN IDs are in use. IDs 0, 1 and 4095 are reserved
// by the standard, so only 2 through 4094 can be registered. Each record
// carries a name (VLAN_<id> when none is given), a status and a creation
// time. Records live in process memory and are lost on restart.
//
// The service consists of:
//   - Registry: the concurrency-safe map of VLAN records
//   - API Server: Echo-based JSON API, dashboard, metrics and event feed
//   - CLI: cobra commands to run the server and drive it remotely
//
// # Architecture
//
//	┌─────────────────┐   ┌─────────────────┐
//	│   vlanreg CLI   │   │  Dashboard /ui  │
//	│  (pkg/client)   │   │  (templ + WS)   │
//	└────────┬────────┘   └────────┬────────┘
//	         │                     │
//	┌────────▼─────────────────────▼────────┐
//	│           API Server (Echo)           │
//	│  /vlans  /health  /metrics  /ws/events│
//	└───────────────────┬───────────────────┘
//	                    │
//	┌───────────────────▼───────────────────┐
//	│        Registry (in memory)           │
//	└───────────────────────────────────────┘
//
// # Usage
//
// Start the API server:
//
//	vlanreg server --config configs/config.yaml
//
// Register and look up VLANs:
//
//	vlanreg vlan create 100
//	vlanreg vlan create 200 --name voice
//	vlanreg vlan list -o yaml
//	vlanreg vlan get 100
//
// # Configuration
//
// Configuration can be provided via:
//   - YAML file (configs/config.yaml)
//   - Environment variables (VR_ prefix)
//   - .env file
//
// Example configuration:
//
//	server:
//	  host: 0.0.0.0
//	  port: 5000
//	registry:
//	  min_id: 2
//	  max_id: 4094
//	logging:
//	  level: info
//	  format: json
//
// # API Endpoints
//
//   - GET  /            - Endpoint directory
//   - GET  /health      - Liveness, VLAN count and memory usage
//   - GET  /vlans       - List VLANs ordered by ID
//   - GET  /vlans/:id   - Get a VLAN
//   - POST /vlans       - Register a VLAN: {"id": 100, "name": "optional"}
//   - GET  /ui          - HTML dashboard
//   - GET  /metrics     - Prometheus metrics
//   - GET  /ws/events   - WebSocket feed of vlan_created events
//   - GET  /docs/*      - Swagger UI and OpenAPI document
//
// Errors are JSON objects with an "error" message, optional "details" and
// context keys such as min/max or the conflicting vlan:
//
//	415  body is not a JSON object
//	400  id missing, not an integer, or out of range
//	409  id already registered
//	404  id not registered
//
// # Development
//
// Run tests:
//
//	go test ./...
//
// Build the binary:
//
//	go build -o vlanreg ./cmd/vlanreg
//
// # Technology Stack
//
//   - Echo v4 (Web framework)
//   - Cobra/Viper (CLI and configuration)
//   - Zap (Structured logging)
//   - Templ (Dashboard rendering)
//   - Prometheus client (Metrics)
//   - Gorilla WebSocket (Event feed)
//   - Swaggo (API documentation)
package vlanreg
