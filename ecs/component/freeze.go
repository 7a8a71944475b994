package component

// Freeze halts physics and animation playback while any entity carries it.
type Freeze struct{}

var FreezeComponent = NewComponent[Freeze]()
