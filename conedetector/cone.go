// Package conedetector segments a laser scan into circular arcs
// geometrically consistent with a traffic cone, fits a center and
// radius, and tracks surviving detections across scans.
package conedetector

import (
	"time"

	"github.com/golang/geo/r3"
	"github.com/google/uuid"
)

// Cone is one tracked cone detection: a stable identity, its last
// known world-frame position, and when it was last seen.
type Cone struct {
	ID       uuid.UUID
	Point    r3.Vector
	LastSeen time.Time
}
