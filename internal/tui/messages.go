package tui

// Scene identifies one screen of the application.
type Scene int

const (
	SceneHome Scene = iota
	SceneParameters
	SceneAllocation
	SceneResults
	SceneCompare
	SceneHelp
)

var sceneNames = [...]string{"Home", "Parameters", "Allocation", "Results", "Compare", "Help"}

func (s Scene) String() string {
	if s < 0 || int(s) >= len(sceneNames) {
		return "Unknown"
	}
	return sceneNames[s]
}

// NavigateMsg switches to a different scene.
type NavigateMsg struct {
	Scene Scene
}

// QuitMsg asks the program to exit.
type QuitMsg struct{}
