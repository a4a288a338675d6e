package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"kanban-board.com/kanban-board/internal/constants"
	"kanban-board.com/kanban-board/internal/services"
)

type seedColumn struct {
	name   string
	status string
	color  constants.StatusColor
}

var defaultColumns = []seedColumn{
	{name: "À faire", status: "To do", color: constants.ColorBlue},
	{name: "En cours", status: "In progress", color: constants.ColorOrange},
	{name: "Terminé", status: "Done", color: constants.ColorGreen},
}

const seedTasksPerColumn = 3

var (
	seedUser       string
	seedWorkspaces int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create demo workspaces for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedUser == "" {
			return fmt.Errorf("--user is required")
		}
		if seedWorkspaces <= 0 {
			return fmt.Errorf("--workspaces must be greater than 0")
		}

		cfg, logger, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer closeDB(db, logger)

		// No listeners exist during a seed; a nil publisher drops events.
		svc := newServices(cfg, db, nil)
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		// Workspace names are unique per owner; continue numbering on re-runs.
		existing, err := svc.Workspaces.List(ctx, seedUser)
		if err != nil {
			return err
		}
		offset := len(existing)

		for i := 1; i <= seedWorkspaces; i++ {
			ws, err := svc.Workspaces.Create(ctx, seedUser, services.CreateWorkspaceInput{
				Name: fmt.Sprintf("Demo workspace %d", i+offset),
			})
			if err != nil {
				return err
			}

			for _, sc := range defaultColumns {
				column, err := svc.Columns.Create(ctx, seedUser, services.CreateColumnInput{
					Name:        sc.name,
					WorkspaceID: ws.ID,
				})
				if err != nil {
					return err
				}
				status, err := svc.Statuses.Create(ctx, seedUser, services.CreateStatusInput{
					Name:        sc.status,
					Color:       sc.color,
					WorkspaceID: ws.ID,
				})
				if err != nil {
					return err
				}

				for n := 1; n <= seedTasksPerColumn; n++ {
					_, err := svc.Tasks.Create(ctx, seedUser, services.CreateTaskInput{
						Title:       fmt.Sprintf("%s #%d (%s)", sc.name, n, ws.ID[:8]),
						Description: fmt.Sprintf("Demo task %d of %s", n, sc.name),
						ColumnID:    column.ID,
						StatusID:    &status.ID,
					})
					if err != nil {
						return err
					}
				}
			}

			logger.WithField("workspace_id", ws.ID).Info("seeded workspace")
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedUser, "user", "", "owner user id")
	seedCmd.Flags().IntVar(&seedWorkspaces, "workspaces", 1, "number of demo workspaces")
	rootCmd.AddCommand(seedCmd)
}
