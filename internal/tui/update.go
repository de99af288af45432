package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/holdi/holdi/internal/tui/tuimsg"
)

// chromeHeight is the room taken by the title and status bars.
const chromeHeight = 4

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// Standard tea.Msg types
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		contentHeight := max(0, msg.Height-chromeHeight)
		m.homeModel.SetSize(msg.Width, contentHeight)
		m.parametersModel.SetSize(msg.Width, contentHeight)
		m.allocationModel.SetSize(msg.Width, contentHeight)
		m.resultsModel.SetSize(msg.Width, contentHeight)
		m.compareModel.SetSize(msg.Width, contentHeight)
		return m, nil

	// Custom messages
	case NavigateMsg:
		return m.navigate(msg.Scene)

	case QuitMsg:
		return m, tea.Quit

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		return m, nil

	case tuimsg.PlanChangedMsg:
		m.status = ""
		if msg.InvestorChanged {
			m.logger.Debugf("investor details changed, deriving parameters again")
		}
		cmd := m.recalculate()
		return m, cmd

	case tuimsg.AllocationChangedMsg:
		m.status = ""
		if len(msg.Allocation) == 0 {
			m.plan.CustomAllocation = nil
		} else {
			m.plan.CustomAllocation = msg.Allocation.Clone()
		}
		cmd := m.recalculate()
		return m, cmd

	case tuimsg.ProjectionCompleteMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		if msg.Err != nil {
			m.logger.Errorf("projection failed: %v", msg.Err)
			m.resultsModel.SetReport(nil, msg.Err)
			m.status = msg.Err.Error()
			return m, nil
		}
		m.report = msg.Report
		m.resultsModel.SetReport(msg.Report, nil)
		m.homeModel.SetReport(msg.Report)
		if !m.allocationModel.Editing() {
			m.allocationModel.SetAllocation(m.catalog, msg.Report.Allocation, msg.Report.CustomAllocation)
		}
		if m.currentScene == SceneCompare && m.compareStale {
			cmd := m.startComparison()
			return m, cmd
		}
		return m, nil

	case tuimsg.ComparisonRequestedMsg:
		cmd := m.startComparison()
		return m, cmd

	case tuimsg.ComparisonCompleteMsg:
		if msg.Seq != m.compareSeq {
			return m, nil
		}
		if msg.Err != nil {
			m.logger.Errorf("comparison failed: %v", msg.Err)
		}
		m.compareModel.SetResults(msg.Set, msg.Err)
		return m, nil

	case tuimsg.SavePlanMsg:
		cmd := m.save()
		return m, cmd

	case tuimsg.SaveCompleteMsg:
		if msg.Err != nil {
			m.status = "Save failed: " + msg.Err.Error()
			return m, nil
		}
		m.planPath = msg.Filename
		m.homeModel.SetPlan(m.plan, m.planPath)
		m.status = "Saved to " + msg.Filename
		return m, nil
	}

	// Delegate to scene-specific update handlers
	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// The exact-value input owns the keyboard while it is open
	if m.currentScene == SceneAllocation && m.allocationModel.Editing() {
		return m.updateCurrentScene(msg)
	}

	// Any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		return m.navigate(SceneHelp)
	case key.Matches(msg, m.keys.Back):
		if m.currentScene == SceneHome {
			return m, nil
		}
		if m.previousScene != SceneHome && m.previousScene != m.currentScene {
			return m.navigate(m.previousScene)
		}
		return m.navigate(SceneHome)
	case key.Matches(msg, m.keys.Home):
		return m.navigate(SceneHome)
	case key.Matches(msg, m.keys.Parameters):
		return m.navigate(SceneParameters)
	case key.Matches(msg, m.keys.Allocation):
		return m.navigate(SceneAllocation)
	case key.Matches(msg, m.keys.Results):
		return m.navigate(SceneResults)
	case key.Matches(msg, m.keys.Compare):
		return m.navigate(SceneCompare)
	case key.Matches(msg, m.keys.Reset):
		m.plan.Parameters = nil
		m.plan.CustomAllocation = nil
		m.status = "Plan reset to derived values"
		cmd := m.recalculate()
		return m, cmd
	case key.Matches(msg, m.keys.Save):
		cmd := m.save()
		return m, cmd
	}

	// Let the current scene handle other keys
	return m.updateCurrentScene(msg)
}

// navigate switches scenes; entering Compare refreshes an outdated comparison
func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	if scene == m.currentScene {
		return m, nil
	}
	m.previousScene = m.currentScene
	m.currentScene = scene
	if scene == SceneCompare && m.compareStale && m.err == nil {
		cmd := m.startComparison()
		return m, cmd
	}
	return m, nil
}

func (m *Model) startComparison() tea.Cmd {
	m.compareStale = false
	m.compareSeq++
	m.compareModel.SetComparing()
	return compareCmd(m.compareEngine, m.compareSeq, m.input(), m.planPath)
}

func (m *Model) save() tea.Cmd {
	path := m.planPath
	if path == "" {
		path = DefaultPlanFile
	}
	plan := m.plan.Clone()
	m.status = "Saving..."
	return savePlanCmd(m.parser, plan, path)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneHome:
		m.homeModel, cmd = m.homeModel.Update(msg)
	case SceneParameters:
		m.parametersModel, cmd = m.parametersModel.Update(msg)
	case SceneAllocation:
		m.allocationModel, cmd = m.allocationModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	}
	return m, cmd
}
