package services

import (
	"context"

	model "kanban-board.com/kanban-board/internal/models"
	repository "kanban-board.com/kanban-board/internal/repositories"
)

// Board is everything one user owns, ready for a client's first render.
type Board struct {
	Workspaces []model.Workspace `json:"workspaces"`
}

type UserService struct {
	workspaces *repository.WorkspaceRepository
}

func NewUserService(workspaces *repository.WorkspaceRepository) *UserService {
	return &UserService{workspaces: workspaces}
}

func (s *UserService) Board(ctx context.Context, userID string) (*Board, error) {
	workspaces, err := s.workspaces.ListBoards(ctx, userID)
	if err != nil {
		return nil, err
	}
	if workspaces == nil {
		workspaces = []model.Workspace{}
	}
	return &Board{Workspaces: workspaces}, nil
}
