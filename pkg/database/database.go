package database

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"skillforge_backend/internal/config"
	"skillforge_backend/internal/model"
	"skillforge_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	// 纯 Go 的 SQLite 驱动（无需 CGO），注册名为 "sqlite"
	_ "modernc.org/sqlite"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info
	}
	gormCfg := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Database.Driver {
	case config.DriverMySQL:
		db, err = gorm.Open(mysql.Open(MySQLDSN(&cfg.Database)), gormCfg)
	case config.DriverSQLite:
		db, err = OpenSQLite(SQLiteDSN(&cfg.Database), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Database.Driver, err)
	}

	logger.Log.Info("Database connection established", zap.String("driver", cfg.Database.Driver))
	return db, nil
}

// OpenSQLite 通过 modernc 驱动打开 SQLite。单连接，保证内存库在连接间共享且写入串行。
func OpenSQLite(dsn string, gormCfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.New(sqlite.Config{
		DriverName: "sqlite",
		DSN:        dsn,
	}), gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Migrate 建表，sessions.skill_id 带 ON DELETE CASCADE 外键
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Skill{}, &model.Session{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	logger.Log.Info("Database migration completed")
	return nil
}

func MySQLDSN(cfg *config.DatabaseConfig) string {
	if cfg.URL != "" {
		return strings.TrimPrefix(cfg.URL, "mysql://")
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=UTC",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)
}

// SQLiteDSN 生成带 pragma 的 DSN，外键约束必须开启
func SQLiteDSN(cfg *config.DatabaseConfig) string {
	dsn := cfg.URL
	if dsn == "" {
		if dir := filepath.Dir(cfg.Path); dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		dsn = "file:" + cfg.Path
	}
	return WithPragmas(sqliteURLToDSN(dsn))
}

// sqliteURLToDSN 兼容 DATABASE_URL 的 URL 写法：sqlite:///rel.db 为相对路径，sqlite:////abs.db 为绝对路径
func sqliteURLToDSN(dsn string) string {
	switch {
	case strings.HasPrefix(dsn, "sqlite:////"):
		return "file:/" + strings.TrimPrefix(dsn, "sqlite:////")
	case strings.HasPrefix(dsn, "sqlite:///"):
		return "file:" + strings.TrimPrefix(dsn, "sqlite:///")
	case strings.HasPrefix(dsn, "sqlite://"):
		return "file:" + strings.TrimPrefix(dsn, "sqlite://")
	}
	return dsn
}

func WithPragmas(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	pragmas := url.Values{}
	pragmas.Add("_pragma", "foreign_keys(1)")
	pragmas.Add("_pragma", "busy_timeout(5000)")
	pragmas.Add("_time_format", "sqlite")
	return dsn + sep + pragmas.Encode()
}

// OpenMemory 打开并迁移一个命名的内存库，主要用于测试
func OpenMemory(name string) (*gorm.DB, error) {
	name = strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(name)
	db, err := OpenSQLite(WithPragmas("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
