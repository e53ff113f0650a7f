package services

import "fmt"

// Stage is one of the six sequential production steps a project moves
// through after the quote is accepted.
type Stage string

const (
	StageScheduling   Stage = "scheduling"
	StageFieldCapture Stage = "field_capture"
	StageRegistration Stage = "registration"
	StageModeling     Stage = "modeling"
	StageQA           Stage = "qa"
	StageDelivery     Stage = "delivery"
)

// StageOrder lists the lifecycle in production order.
var StageOrder = []Stage{
	StageScheduling,
	StageFieldCapture,
	StageRegistration,
	StageModeling,
	StageQA,
	StageDelivery,
}

// stageIndex maps a stage to its position in StageOrder.
var stageIndex = func() map[Stage]int {
	m := make(map[Stage]int, len(StageOrder))
	for i, s := range StageOrder {
		m[s] = i
	}
	return m
}()

// ValidStage reports whether s names a lifecycle stage.
func ValidStage(s Stage) bool {
	_, ok := stageIndex[s]
	return ok
}

// NextStage returns the stage after s, or an error at the end of the
// lifecycle.
func NextStage(s Stage) (Stage, error) {
	i, ok := stageIndex[s]
	if !ok {
		return "", fmt.Errorf("unknown stage %q", s)
	}
	if i == len(StageOrder)-1 {
		return "", fmt.Errorf("%s is the final stage", s)
	}
	return StageOrder[i+1], nil
}

// StageData holds the recorded field bag per stage. It is append-only from
// the engine's point of view: cascades read prior stages but never write
// them.
type StageData map[Stage]map[string]any

// priorStages returns the stages at or before limit that have recorded
// data, newest first. Chain resolution walks this order so the most recent
// value wins.
func (d StageData) priorStages(limit Stage) []Stage {
	last, ok := stageIndex[limit]
	if !ok {
		return nil
	}
	var out []Stage
	for i := last; i >= 0; i-- {
		s := StageOrder[i]
		if len(d[s]) > 0 {
			out = append(out, s)
		}
	}
	return out
}
