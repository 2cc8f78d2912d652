package component

import "github.com/jakecoffman/cp"

// ContactMarker is a short-lived ring drawn where two balls met.
type ContactMarker struct {
	Pos    cp.Vector
	Radius float64
}

var ContactMarkerComponent = NewComponent[ContactMarker]()
