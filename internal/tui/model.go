package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/ukpaye/internal/config"
	"github.com/rgehrsitz/ukpaye/internal/payrun"
	"github.com/rgehrsitz/ukpaye/internal/tui/scenes"
)

// Options selects the pay run and tax year the browser calculates
type Options struct {
	PayRunPath string
	// TaxYearConfig is a configuration file; it wins over TaxYear
	TaxYearConfig string
	// TaxYear is a built-in year label; empty means the run's own year or the default
	TaxYear string
}

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	opts   Options
	runner *payrun.Runner
	result *payrun.Result

	runModel     *scenes.RunModel
	payslipModel *scenes.PayslipModel
	help         help.Model

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	h := help.New()
	h.ShowAll = false
	return Model{
		currentScene:   SceneRun,
		opts:           opts,
		runner:         payrun.NewRunner(nil),
		runModel:       scenes.NewRunModel(),
		payslipModel:   scenes.NewPayslipModel(),
		help:           h,
		width:          80,
		height:         24,
		loading:        true,
		loadingMessage: "Calculating pay run...",
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return calculatePayRunCmd(m.runner, m.opts)
}

// calculatePayRunCmd returns a command that loads the pay run and computes it
func calculatePayRunCmd(runner *payrun.Runner, opts Options) tea.Cmd {
	return func() tea.Msg {
		run, err := config.NewInputParser().LoadPayRun(opts.PayRunPath)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		label := opts.TaxYear
		if label == "" {
			label = run.TaxYear
		}
		cfg, err := config.ResolveTaxYear(opts.TaxYearConfig, label)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		result, err := runner.Run(context.Background(), cfg, *run)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return PayRunCalculatedMsg{Result: result}
	}
}
