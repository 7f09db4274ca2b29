package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.runModel.SetSize(msg.Width, msg.Height)
		m.payslipModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case PayRunCalculatedMsg:
		m.loading = false
		m.err = nil
		m.result = msg.Result
		m.runModel.SetResult(msg.Result)
		m.payslipModel.SetPayslip(nil)
		m.currentScene = SceneRun
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		if m.currentScene == SceneHelp {
			return m, navigate(m.previousScene)
		}
		return m, navigate(SceneHelp)

	case key.Matches(msg, keys.Back):
		if m.currentScene != SceneRun {
			return m, navigate(SceneRun)
		}
		return m, nil

	case key.Matches(msg, keys.Reload):
		m.loading = true
		m.loadingMessage = "Recalculating pay run..."
		return m, calculatePayRunCmd(m.runner, m.opts)

	case key.Matches(msg, keys.Open) && m.currentScene == SceneRun:
		if selected := m.runModel.Selected(); selected != nil {
			m.payslipModel.SetPayslip(selected)
			return m, navigate(ScenePayslip)
		}
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates to the active scene
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneRun:
		m.runModel, cmd = m.runModel.Update(msg)
	case ScenePayslip:
		m.payslipModel, cmd = m.payslipModel.Update(msg)
	}
	return m, cmd
}

func navigate(s Scene) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Scene: s} }
}
