package bridge

import "github.com/joeydtaylor/quill/pkg/internal/types"

// GetComponentMetadata returns metadata (ID, Name, Type).
func (s *Server) GetComponentMetadata() types.ComponentMetadata {
	return s.componentMetadata
}

// SetComponentMetadata sets Name and ID.
func (s *Server) SetComponentMetadata(name string, id string) {
	s.requireNotFrozen("SetComponentMetadata")
	s.componentMetadata.Name = name
	s.componentMetadata.ID = id
}
