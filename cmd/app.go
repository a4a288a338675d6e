package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	config "kanban-board.com/kanban-board/internal/configs"
	"kanban-board.com/kanban-board/internal/events"
	httpapi "kanban-board.com/kanban-board/internal/http"
	repository "kanban-board.com/kanban-board/internal/repositories"
	"kanban-board.com/kanban-board/internal/services"
)

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg != nil {
		logger.SetLevel(cfg.LogLevel)
	}
	return logger
}

// bootstrap loads configuration and opens a migrated store.
func bootstrap() (config.Config, *logrus.Logger, *gorm.DB, error) {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	logger := newLogger(&cfg)
	if envErr != nil {
		logger.Info(".env file not found, using environment variables")
	}

	db, err := config.NewDatabaseClient(cfg)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	if err := config.Migrate(db); err != nil {
		return config.Config{}, nil, nil, err
	}

	logger.WithField("driver", cfg.DatabaseDriver).Info("database ready")
	return cfg, logger, db, nil
}

func newServices(cfg config.Config, db *gorm.DB, publisher *events.Publisher) httpapi.Services {
	tx := repository.NewTransactor(db, cfg.DatabaseDriver == config.DriverPostgres)

	workspaceRepo := repository.NewWorkspaceRepository(db)
	columnRepo := repository.NewBoardColumnRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	return httpapi.Services{
		Workspaces: services.NewWorkspaceService(workspaceRepo, tx, publisher),
		Columns:    services.NewBoardColumnService(columnRepo, workspaceRepo, tx, publisher),
		Statuses:   services.NewStatusService(statusRepo, workspaceRepo, tx, publisher),
		Tasks: services.NewTaskService(taskRepo, columnRepo, statusRepo, tx, publisher,
			cfg.StatusMode, services.NewStageMapping(cfg.ColumnStages)),
		Users:  services.NewUserService(workspaceRepo),
		Health: services.NewHealthService(db),
	}
}

func closeDB(db *gorm.DB, logger logrus.FieldLogger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.WithError(err).Warn("database close failed")
	}
}
