package domain

// DropLocation is one end of a drag gesture: the column it started in or landed on.
type DropLocation struct {
	ColumnID string
	Index    int
}

// DropResult describes a completed drag gesture.
// Destination is nil when the gesture was cancelled or released outside any column.
type DropResult struct {
	DraggableID string
	Source      *DropLocation
	Destination *DropLocation
}

// MoveIntent is the mutation a drop resolves to.
type MoveIntent struct {
	TaskID string
	Column Column
}

// ResolveDrop maps a finished gesture to the task move it requests.
// It returns false when the drop should be ignored: no destination, no task,
// or an endpoint that is not a board column. Dropping back onto the source
// column still resolves to a move; the update is idempotent.
func ResolveDrop(result DropResult) (MoveIntent, bool) {
	if result.DraggableID == "" || result.Destination == nil {
		return MoveIntent{}, false
	}
	if result.Source == nil || !Column(result.Source.ColumnID).IsValid() {
		return MoveIntent{}, false
	}
	destination := Column(result.Destination.ColumnID)
	if !destination.IsValid() {
		return MoveIntent{}, false
	}
	return MoveIntent{TaskID: result.DraggableID, Column: destination}, true
}
