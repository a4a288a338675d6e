package constants

type TaskStage string

const (
	StageTodo       TaskStage = "todo"
	StageInProgress TaskStage = "in_progress"
	StageDone       TaskStage = "done"
)

func (s TaskStage) Valid() bool {
	switch s {
	case StageTodo, StageInProgress, StageDone:
		return true
	}
	return false
}

type StatusMode string

const (
	// StatusModeReferenced leaves a task's stage alone when it changes column.
	StatusModeReferenced StatusMode = "referenced"
	// StatusModeColumn derives the stage from the destination column name.
	StatusModeColumn StatusMode = "column"
)
