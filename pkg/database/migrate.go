package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations 将嵌入的 SQL 迁移应用到最新版本。
// dirty 状态说明上次迁移中途失败，拒绝继续以免叠加半套 schema
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("加载迁移文件失败: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("创建迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("初始化迁移实例失败: %w", err)
	}

	if _, dirty, verr := m.Version(); verr == nil && dirty {
		return errors.New("数据库迁移处于 dirty 状态，需人工修复后重试")
	}

	before, _, _ := m.Version()

	switch err := m.Up(); {
	case err == nil:
		after, _, _ := m.Version()
		logger.Info("数据库迁移完成",
			zap.Uint("from", before),
			zap.Uint("to", after))
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("数据库迁移无变更", zap.Uint("version", before))
	default:
		return fmt.Errorf("执行迁移失败: %w", err)
	}

	return nil
}
