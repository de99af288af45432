// Package tui is the interactive terminal front end of the simulator.
package tui

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/holdi/holdi/internal/calculation"
	"github.com/holdi/holdi/internal/catalog"
	"github.com/holdi/holdi/internal/compare"
	"github.com/holdi/holdi/internal/config"
	"github.com/holdi/holdi/internal/domain"
	"github.com/holdi/holdi/internal/tui/scenes"
	"github.com/holdi/holdi/internal/tui/tuimsg"
)

// DefaultPlanFile is where a plan opened without a file is saved.
const DefaultPlanFile = "holdi-plan.yaml"

// Options configures a new Model
type Options struct {
	Plan     *domain.Plan // nil starts from config.DefaultPlan
	Catalog  domain.Catalog
	PlanPath string
	Engine   *calculation.CalculationEngine // nil uses a quiet engine
	Logger   calculation.Logger
}

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Plan being edited and what it resolves to
	plan     *domain.Plan
	planPath string
	catalog  domain.Catalog
	params   domain.SimulationParameters
	report   *domain.ProjectionReport

	parser        *config.InputParser
	calcEngine    *calculation.CalculationEngine
	compareEngine *compare.CompareEngine
	logger        calculation.Logger

	// seq numbers projection requests; only the latest result is kept
	seq          int
	compareSeq   int
	compareStale bool

	homeModel       *scenes.HomeModel
	parametersModel *scenes.ParametersModel
	allocationModel *scenes.AllocationModel
	resultsModel    *scenes.ResultsModel
	compareModel    *scenes.CompareModel

	keys keyMap
	help help.Model

	status string
	err    error
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	plan := opts.Plan
	if plan == nil {
		plan = config.DefaultPlan()
	}
	engine := opts.Engine
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	logger := opts.Logger
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	cat := opts.Catalog
	if len(cat.Rows) == 0 {
		cat = catalog.Default()
	}

	m := Model{
		currentScene:    SceneHome,
		width:           80,
		height:          24,
		plan:            plan,
		planPath:        opts.PlanPath,
		catalog:         cat,
		parser:          config.NewInputParser(),
		calcEngine:      engine,
		compareEngine:   compare.NewCompareEngine(engine),
		logger:          logger,
		compareStale:    true,
		homeModel:       scenes.NewHomeModel(),
		parametersModel: scenes.NewParametersModel(),
		allocationModel: scenes.NewAllocationModel(),
		resultsModel:    scenes.NewResultsModel(),
		compareModel:    scenes.NewCompareModel(),
		keys:            defaultKeyMap(),
		help:            help.New(),
	}
	m.homeModel.SetPlan(plan, opts.PlanPath)

	params, err := m.parser.ResolveParameters(plan)
	if err != nil {
		m.err = err
		return m
	}
	m.params = params
	m.parametersModel.SetPlan(plan, params)
	return m
}

// Init starts the first projection (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.err != nil {
		return nil
	}
	return projectCmd(m.calcEngine, m.seq, m.input())
}

// recalculate resolves the plan again and starts a new projection
func (m *Model) recalculate() tea.Cmd {
	params, err := m.parser.ResolveParameters(m.plan)
	if err != nil {
		m.err = err
		return nil
	}
	m.params = params
	m.parametersModel.SetPlan(m.plan, params)
	m.seq++
	m.compareStale = true
	return projectCmd(m.calcEngine, m.seq, m.input())
}

// input snapshots the plan so a running command never sees later edits
func (m *Model) input() calculation.ProjectionInput {
	in := calculation.InputFromPlan(m.plan, m.catalog, m.params)
	in.CustomAllocation = m.plan.CustomAllocation.Clone()
	return in
}

// projectCmd returns a command that runs one projection
func projectCmd(engine *calculation.CalculationEngine, seq int, in calculation.ProjectionInput) tea.Cmd {
	return func() tea.Msg {
		report, err := engine.Project(context.Background(), in)
		return tuimsg.ProjectionCompleteMsg{Seq: seq, Report: report, Err: err}
	}
}

// compareCmd returns a command that runs the plan under every profile
func compareCmd(engine *compare.CompareEngine, seq int, in calculation.ProjectionInput, planPath string) tea.Cmd {
	return func() tea.Msg {
		set, err := engine.Compare(context.Background(), in, compare.CompareOptions{ConfigPath: planPath})
		return tuimsg.ComparisonCompleteMsg{Seq: seq, Set: set, Err: err}
	}
}

// savePlanCmd returns a command that writes the plan as YAML
func savePlanCmd(parser *config.InputParser, plan domain.Plan, path string) tea.Cmd {
	return func() tea.Msg {
		data, err := parser.Marshal(&plan)
		if err != nil {
			return tuimsg.SaveCompleteMsg{Filename: path, Err: err}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return tuimsg.SaveCompleteMsg{Filename: path, Err: fmt.Errorf("failed to write %s: %w", path, err)}
		}
		return tuimsg.SaveCompleteMsg{Filename: path}
	}
}

// Plan returns the plan being edited
func (m Model) Plan() *domain.Plan {
	return m.plan
}

// Report returns the latest projection, or nil
func (m Model) Report() *domain.ProjectionReport {
	return m.report
}

// CurrentScene returns the scene on screen
func (m Model) CurrentScene() Scene {
	return m.currentScene
}

// Run starts the full-screen program and blocks until the user quits
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
