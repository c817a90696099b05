package soma

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ahoin001/soma/internal/app"
	"github.com/ahoin001/soma/internal/catalog"
	"github.com/ahoin001/soma/internal/db"
	"github.com/ahoin001/soma/internal/service"
)

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	return app.DefaultDBPath()
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// newClient builds the catalog client from locally stored config.
func newClient(sqldb *sql.DB) (*catalog.Client, error) {
	baseURL, _, err := service.GetConfig(sqldb, service.ConfigAPIBaseURL)
	if err != nil {
		return nil, err
	}
	token, _, err := service.GetConfig(sqldb, service.ConfigAPITokenHint)
	if err != nil {
		return nil, err
	}
	return &catalog.Client{
		BaseURL: baseURL,
		Token:   strings.TrimSpace(token),
		Logger:  newLogger(),
	}, nil
}

func parseDateOrToday(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now().Format("2006-01-02"), nil
	}
	if _, err := time.ParseInLocation("2006-01-02", value, time.Local); err != nil {
		return "", fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", value)
	}
	return value, nil
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}
