package tui

import "github.com/rgehrsitz/ukpaye/internal/tui/tuistyles"

// Re-export styles from tuistyles to avoid import cycles
var (
	AppStyle       = tuistyles.AppStyle
	TitleStyle     = tuistyles.TitleStyle
	SubtitleStyle  = tuistyles.SubtitleStyle
	StatusBarStyle = tuistyles.StatusBarStyle
	ErrorStyle     = tuistyles.ErrorStyle
	WarningStyle   = tuistyles.WarningStyle
)
