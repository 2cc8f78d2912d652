package component

// ReloadRequest is a marker component used to signal the scene system to
// rebuild the simulation. Scene names the scene to load; empty keeps the
// current one.
type ReloadRequest struct {
	Scene string
}

var ReloadRequestComponent = NewComponent[ReloadRequest]()

// SnapshotRequest asks the scene system to export the current body state.
type SnapshotRequest struct{}

var SnapshotRequestComponent = NewComponent[SnapshotRequest]()
