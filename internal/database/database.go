package database

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/packline/packtrace/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	embeddedDataPath = "./db_data"
	embeddedPort     = 5433
)

// ErrUnreachable is returned by Alive when the connection is dead and
// the single reconnect attempt also failed. Callers match with errors.Is.
var ErrUnreachable = errors.New("database unreachable")

// DB wraps gorm.DB and includes a reference to an embedded process if active.
// It serves the synchronous request path; background jobs open their own
// connection via OpenJob and never share this one.
type DB struct {
	*gorm.DB
	embedded *embeddedpostgres.EmbeddedPostgres

	mu     sync.Mutex
	onLost func()
}

// Connect establishes a connection to a PostgreSQL database (external or embedded)
func Connect(cfg config.DatabaseConfig) (*DB, error) {
	var embedded *embeddedpostgres.EmbeddedPostgres

	// Embedded mode: localhost and no password
	isEmbedded := cfg.Host == "localhost" && cfg.Password == ""

	password := cfg.Password
	if isEmbedded {
		log.Println("📦 Mode: [Embedded PostgreSQL] - Initializing internal database...")

		embeddedCfg := embeddedpostgres.DefaultConfig().
			DataPath(embeddedDataPath).
			Port(uint32(embeddedPort)).
			Database(cfg.Database).
			Username(cfg.Username).
			Password("postgres")

		embedded = embeddedpostgres.NewDatabase(embeddedCfg)

		if err := embedded.Start(); err != nil {
			return nil, fmt.Errorf("failed to start embedded database: %w", err)
		}

		cfg.Port = strconv.Itoa(embeddedPort)
		password = "postgres"
		log.Printf("✅ Embedded PostgreSQL process started on port %d", embeddedPort)
	} else {
		log.Printf("🌐 Mode: [External PostgreSQL] - Connecting to %s:%s\n", cfg.Host, cfg.Port)
	}

	db, err := open(cfg, password)
	if err != nil {
		if embedded != nil {
			_ = embedded.Stop()
		}
		return nil, err
	}

	log.Println("✅ Database connection established")

	return &DB{
		DB:       db,
		embedded: embedded,
	}, nil
}

// OpenJob opens a dedicated connection for a background job. Jobs never
// share the synchronous connection and do not attempt reconnection: if
// this fails, the job fails.
func OpenJob(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := open(cfg, cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to open job connection: %w", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// CloseJob releases a job connection opened with OpenJob
func CloseJob(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

func open(cfg config.DatabaseConfig, password string) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable connect_timeout=10",
		cfg.Host,
		cfg.Port,
		cfg.Username,
		password,
		cfg.Database,
	)

	logLevel := logger.Warn
	if cfg.Alter {
		logLevel = logger.Silent
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return db, nil
}

// OnConnectionLost registers a callback fired when a synchronous call
// finds the connection dead and the single reconnect attempt also fails
func (db *DB) OnConnectionLost(fn func()) {
	db.mu.Lock()
	db.onLost = fn
	db.mu.Unlock()
}

// Alive pings the synchronous connection. On failure it makes exactly one
// retry before reporting the connection lost.
func (db *DB) Alive() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Ping(); err == nil {
		return nil
	}
	// one reconnect attempt; database/sql re-dials on ping
	if err := sqlDB.Ping(); err != nil {
		db.mu.Lock()
		fn := db.onLost
		db.mu.Unlock()
		if fn != nil {
			fn()
		}
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return nil
}

// Close ensures the database connection and embedded process are shut down
func (db *DB) Close() error {
	if db.embedded != nil {
		log.Println("🛑 Stopping Embedded PostgreSQL process...")
		_ = db.embedded.Stop()
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate triggers GORM schema synchronization
func (db *DB) AutoMigrate(models ...interface{}) error {
	return db.DB.AutoMigrate(models...)
}
