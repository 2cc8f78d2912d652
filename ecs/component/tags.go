package component

type BallTag struct{}

var BallTagComponent = NewComponent[BallTag]()

type MarkerTag struct{}

var MarkerTagComponent = NewComponent[MarkerTag]()
