package tui

import "github.com/rgehrsitz/ukpaye/internal/payrun"

// Scene represents different screens in the TUI
type Scene int

const (
	SceneRun Scene = iota
	ScenePayslip
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneRun:
		return "Pay run"
	case ScenePayslip:
		return "Payslip"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// PayRunCalculatedMsg carries a freshly computed pay run
type PayRunCalculatedMsg struct {
	Result *payrun.Result
}
