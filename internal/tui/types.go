package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/glamour"
)

// represents the current state of the TUI
type AppState int

const (
	StateLogin AppState = iota
	StateLoading
	StatePicker
	StateEditor
)

// main TUI application model
type Model struct {
	state  AppState
	width  int
	height int
	err    error
	client *Client
	user   *UserData
	login  *LoginModel
	picker *PickerModel
	editor *EditorModel
}

// sent when an error occurs
type ErrorMsg struct {
	err error
}

// sent when sign-in or a claims refresh succeeds
type SignedInMsg struct {
	user *UserData
}

// sent when sign-in fails; the session stays anonymous
type AuthFailedMsg struct {
	message string
}

// sent when the agent catalog arrives
type BotsLoadedMsg struct {
	bots []BotData
}

// sent when the caller's note for an agent arrives (nil when none saved)
type NoteLoadedMsg struct {
	botID string
	note  *NoteData
}

// sent when an auto-save round trip completes
type NoteSavedMsg struct {
	note *NoteData
}

// sent when a share snapshot is created
type NoteSharedMsg struct {
	noteID string
}

// drives the auto-save debounce clock
type saveTickMsg time.Time

// login screen model
type LoginModel struct {
	email    textinput.Model
	password textinput.Model
	focused  int
	message  string
	busy     bool
	spinner  spinner.Model
}

// agent picker model
type PickerModel struct {
	bots   []BotData
	cursor int
}

// notes editor model
type EditorModel struct {
	bot             BotData
	textarea        textarea.Model
	spinner         spinner.Model
	glamourRenderer *glamour.TermRenderer
	width           int
	height          int
	dirty           bool
	saving          bool
	lastEdit        time.Time
	lastSaved       time.Time
	preview         bool
	previewText     string
	shareID         string
	status          string
}
