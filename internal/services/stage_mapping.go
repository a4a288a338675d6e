package services

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	config "kanban-board.com/kanban-board/internal/configs"
	"kanban-board.com/kanban-board/internal/constants"
)

// StageMapping resolves the stage implied by a column name. Names match after
// trimming, Unicode case folding and NFC normalization, so "TERMINÉ" and
// "terminé" (in either composed or decomposed form) are the same column.
type StageMapping struct {
	byName map[string]constants.TaskStage
}

func NewStageMapping(entries []config.ColumnStage) *StageMapping {
	m := &StageMapping{byName: make(map[string]constants.TaskStage, len(entries))}
	for _, e := range entries {
		m.byName[foldName(e.ColumnName)] = e.Stage
	}
	return m
}

func (m *StageMapping) StageFor(columnName string) (constants.TaskStage, bool) {
	stage, ok := m.byName[foldName(columnName)]
	return stage, ok
}

// foldName builds a fresh Caser per call; a Caser must not be shared.
func foldName(name string) string {
	return norm.NFC.String(cases.Fold().String(norm.NFC.String(strings.TrimSpace(name))))
}
