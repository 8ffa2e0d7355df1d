package controller

import (
	"slices"

	"github.com/s0up4200/citadel/rickmorty"
)

// Mode selects which endpoint the item list comes from
type Mode int

const (
	// ModeBrowse is the unfiltered, paginated listing
	ModeBrowse Mode = iota
	// ModeSearch is a name-filtered result set
	ModeSearch
)

// String returns the string representation of a Mode
func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	default:
		return "browse"
	}
}

// Status is the loading state of the controller
type Status int

const (
	StatusIdle Status = iota
	StatusLoadingInitial
	StatusLoadingMore
	StatusSearching
	StatusError
	StatusReady
)

// String returns the string representation of a Status
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoadingInitial:
		return "loading"
	case StatusLoadingMore:
		return "loading_more"
	case StatusSearching:
		return "searching"
	case StatusError:
		return "error"
	case StatusReady:
		return "ready"
	default:
		return "unknown"
	}
}

// IsLoading reports whether a fetch is running for this status
func (s Status) IsLoading() bool {
	return s == StatusLoadingInitial || s == StatusLoadingMore || s == StatusSearching
}

// State is a snapshot of everything the presentation layer renders.
// An empty Cursor means the current mode has no further pages.
type State struct {
	Items        []rickmorty.Character
	Cursor       string
	Mode         Mode
	Query        string
	Status       Status
	ErrorMessage string
	ErrorKind    ErrorKind
	// Blocking is set when the error should replace the list rather than
	// show as a banner above it.
	Blocking bool
}

// HasMore reports whether LoadMore can fetch another page
func (s State) HasMore() bool {
	return s.Cursor != "" && s.Mode == ModeBrowse
}

// clone returns a copy that shares nothing mutable with s
func (s State) clone() State {
	s.Items = slices.Clone(s.Items)
	return s
}
