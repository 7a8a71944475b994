package component

type SceneRequestKind int

const (
	RequestSwitch SceneRequestKind = iota
	RequestRestart
)

// SceneRequest is a one-shot request emitted by gameplay systems to ask the
// scene host to switch or restart scenes. Systems only emit data; the scene
// manager owns teardown and construction.
type SceneRequest struct {
	Kind   SceneRequestKind
	Target string
}

var SceneRequestComponent = NewComponent[SceneRequest]()
