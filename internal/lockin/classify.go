package lockin

// Stage is the development phase implied by a score
type Stage string

const (
	StageEarlyResearch          Stage = "Early Research"
	StageEarlyCommercialization Stage = "Early Commercialization"
	StageScaling                Stage = "Scaling"
	StageInfrastructureBuilding Stage = "Infrastructure Building"
	StageLockIn                 Stage = "Lock-in/Regulatory Capture"
)

// InterventionWindow is how soon corrective action should happen
type InterventionWindow string

const (
	WindowMonitor InterventionWindow = "Monitor"
	WindowActSoon InterventionWindow = "Act Soon"
	WindowActNow  InterventionWindow = "Act Now"
)

// threshold is a band with an inclusive upper bound
type threshold[T any] struct {
	max   int
	label T
}

var stageBands = []threshold[Stage]{
	{max: 25, label: StageEarlyResearch},
	{max: 45, label: StageEarlyCommercialization},
	{max: 70, label: StageScaling},
	{max: 85, label: StageInfrastructureBuilding},
}

var windowBands = []threshold[InterventionWindow]{
	{max: 45, label: WindowMonitor},
	{max: 65, label: WindowActSoon},
}

// classify returns the first band whose bound covers score, else ceiling
func classify[T any](score int, bands []threshold[T], ceiling T) T {
	for _, b := range bands {
		if score <= b.max {
			return b.label
		}
	}
	return ceiling
}

func ClassifyStage(score int) Stage {
	return classify(score, stageBands, StageLockIn)
}

func ClassifyWindow(score int) InterventionWindow {
	return classify(score, windowBands, WindowActNow)
}
