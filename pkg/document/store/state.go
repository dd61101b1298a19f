package store

import (
	"github.com/stateful/emailbuilder/pkg/document"
)

type SidebarTab string

const (
	StylesTab             SidebarTab = "styles"
	BlockConfigurationTab SidebarTab = "block-configuration"
)

type MainTab string

const (
	EditorTab  MainTab = "editor"
	PreviewTab MainTab = "preview"
	JSONTab    MainTab = "json"
	HTMLTab    MainTab = "html"
)

type ScreenSize string

const (
	DesktopScreen ScreenSize = "desktop"
	MobileScreen  ScreenSize = "mobile"
)

// Selection is the UI state kept next to the document.
type Selection struct {
	BlockID             document.BlockID
	SidebarTab          SidebarTab
	MainTab             MainTab
	ScreenSize          ScreenSize
	InspectorDrawerOpen bool
	SamplesDrawerOpen   bool
}

func defaultSelection() Selection {
	return Selection{
		SidebarTab:          StylesTab,
		MainTab:             EditorTab,
		ScreenSize:          DesktopScreen,
		InspectorDrawerOpen: true,
		SamplesDrawerOpen:   true,
	}
}

// State is an immutable snapshot. A new State is allocated on every
// commit; neither the snapshot nor its Document may be modified.
type State struct {
	Document document.Document
	// Revision increases every time the document changes.
	Revision  uint64
	Selection Selection
}

// Block returns the block stored under id.
func (s *State) Block(id document.BlockID) (document.Block, bool) {
	block, ok := s.Document[id]
	return block, ok
}

// Common projections.

func DocumentRevision(s *State) uint64 { return s.Revision }

func SelectedBlockID(s *State) document.BlockID { return s.Selection.BlockID }

func CurrentSelection(s *State) Selection { return s.Selection }
