package cmd

import (
	"fmt"

	"skillforge_backend/pkg/database"
	"skillforge_backend/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "只执行数据库迁移，完成后退出",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg.ForceMigrate = true

		logger.InitLogger(cfg)
		defer logger.Log.Sync()

		db, err := database.InitDB(cfg)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Log.Info("数据库迁移完成", zap.String("driver", cfg.Database.Driver))
		return nil
	},
}
