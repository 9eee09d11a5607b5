package loader

import (
	"fmt"
)

// State is the progress of a load.
//
//	Uninitialized → ConfigLoaded → Authenticated → WorkbookOpen → DataLoaded
//
// A failure at any step ends in Failed.
type State int

const (
	Uninitialized State = iota
	ConfigLoaded
	Authenticated
	WorkbookOpen
	DataLoaded
	Failed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case ConfigLoaded:
		return "config-loaded"
	case Authenticated:
		return "authenticated"
	case WorkbookOpen:
		return "workbook-open"
	case DataLoaded:
		return "data-loaded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}
