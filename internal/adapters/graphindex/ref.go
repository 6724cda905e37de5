package graphindex

import (
	"encoding/json"
	"fmt"
	"strings"

	"locus/internal/domain"
)

const (
	refSchema = "locus.edge.v1"
	refExt    = ".json"
)

// refFile is the on-disk form of one adjacency reference. ParentID is only
// written in the item namespace.
type refFile struct {
	Schema   string `json:"schema"`
	ParentID string `json:"parentId,omitempty"`
	ChildID  string `json:"childId"`
	Rank     string `json:"rank"`
}

// CorruptRefError reports a reference file that exists but cannot be trusted
type CorruptRefError struct {
	Path   string
	Reason string
	Err    error
}

func (e *CorruptRefError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("corrupt index entry %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("corrupt index entry %s: %s", e.Path, e.Reason)
}

func (e *CorruptRefError) Unwrap() error { return e.Err }

func (e *CorruptRefError) Is(target error) bool {
	return target == domain.ErrIndexCorrupt
}

func encodeRef(at domain.Placement, ref domain.EdgeRef) ([]byte, error) {
	rf := refFile{
		Schema:  refSchema,
		ChildID: ref.ItemID.String(),
		Rank:    ref.Rank.String(),
	}
	if h, ok := at.Head().(domain.ItemHead); ok {
		rf.ParentID = h.ID.String()
	}
	data, err := json.Marshal(rf)
	if err != nil {
		return nil, fmt.Errorf("failed to encode index entry: %w", err)
	}
	return append(data, '\n'), nil
}

// decodeRef parses and validates a reference file read from dir at. name is
// the file's base name, which must match the child ID it carries.
func decodeRef(path, name string, at domain.Placement, data []byte) (domain.EdgeRef, error) {
	var rf refFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return domain.EdgeRef{}, &CorruptRefError{Path: path, Reason: "unparsable JSON", Err: err}
	}
	if rf.Schema != refSchema {
		return domain.EdgeRef{}, &CorruptRefError{Path: path, Reason: fmt.Sprintf("unknown schema %q", rf.Schema)}
	}

	id, err := domain.ParseItemID(rf.ChildID)
	if err != nil {
		return domain.EdgeRef{}, &CorruptRefError{Path: path, Reason: "invalid child ID", Err: err}
	}
	if strings.TrimSuffix(name, refExt) != id.String() {
		return domain.EdgeRef{}, &CorruptRefError{Path: path, Reason: fmt.Sprintf("file name does not match child ID %s", id)}
	}

	if h, ok := at.Head().(domain.ItemHead); ok && rf.ParentID != h.ID.String() {
		return domain.EdgeRef{}, &CorruptRefError{Path: path, Reason: fmt.Sprintf("parent ID %q does not match directory", rf.ParentID)}
	}

	rank, err := domain.ParseRank(rf.Rank)
	if err != nil {
		return domain.EdgeRef{}, &CorruptRefError{Path: path, Reason: "invalid rank", Err: err}
	}
	return domain.EdgeRef{ItemID: id, Rank: rank}, nil
}
