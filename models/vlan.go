// Package models defines the records stored and served by vlanreg.
package models

import (
	"fmt"
	"time"
)

// IEEE 802.1Q bounds accepted by the registry. 0, 1 and 4095 are reserved.
const (
	MinVLANID = 2
	MaxVLANID = 4094
)

// StatusActive is the only status a VLAN record can have.
const StatusActive = "active"

// VLAN represents one registered VLAN identifier.
//
// Example JSON representation:
//
//	{
//	  "id": 100,
//	  "name": "VLAN_100",
//	  "status": "active",
//	  "created_at": "2026-10-19T12:00:00Z"
//	}
type VLAN struct {
	// ID is the 802.1Q VLAN identifier (2..4094)
	ID int `json:"id" yaml:"id"`

	// Name is a human-readable label, VLAN_<id> when not supplied
	Name string `json:"name" yaml:"name"`

	// Status is always "active"
	Status string `json:"status" yaml:"status"`

	// CreatedAt is set once at registration
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// DefaultName returns the label used when a VLAN is registered without a name.
func DefaultName(id int) string {
	return fmt.Sprintf("VLAN_%d", id)
}

// NewVLAN builds an active record for id, falling back to DefaultName.
func NewVLAN(id int, name string, now time.Time) VLAN {
	if name == "" {
		name = DefaultName(id)
	}
	return VLAN{
		ID:        id,
		Name:      name,
		Status:    StatusActive,
		CreatedAt: now.UTC(),
	}
}
