package models

import (
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
)

type Mode int

const (
	ModeChat Mode = iota
	ModePicker
)

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	State       Snapshot // Last state pushed by core
	Status      string   // Status bar text
	LoadingDots int      // Animation counter for loading placeholders
	Width       int      // Terminal width
	Height      int      // Terminal height
	Mode        Mode
	ExportPath  string

	Input    textarea.Model
	Viewport viewport.Model
	Spinner  spinner.Model
	Picker   filepicker.Model
	Help     help.Model
}
