package database

import (
	"database/sql"
	stdlog "log"

	"github.com/username/depotfolio/backend/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	if logger.L != nil {
		logger.L.Info("Checking database migrations", "databasePath", databasePath)
	} else {
		stdlog.Println("Checking database migrations for:", databasePath)
	}
	migrateActivityTable()

	// Monetary columns are TEXT: decimal values round-trip through
	// shopspring/decimal without floating point drift.
	createTableStatement := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		auth_provider TEXT DEFAULT 'local',
		is_email_verified BOOLEAN DEFAULT FALSE,
		email_verification_token TEXT,
		email_verification_token_expires_at TIMESTAMP,
		password_reset_token TEXT,
		password_reset_token_expires_at TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		token TEXT NOT NULL,
		refresh_token TEXT NOT NULL,
		user_agent TEXT,
		client_ip TEXT,
		is_blocked BOOLEAN DEFAULT FALSE,
		expires_at TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS activities (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		broker TEXT NOT NULL,
		activity_type TEXT NOT NULL,
		isin TEXT NOT NULL,
		wkn TEXT,
		company TEXT NOT NULL,
		shares TEXT NOT NULL,
		price TEXT NOT NULL,
		amount TEXT NOT NULL,
		fee TEXT NOT NULL,
		tax TEXT NOT NULL,
		activity_date TEXT NOT NULL,
		activity_datetime TIMESTAMP NOT NULL,
		foreign_currency TEXT,
		fx_rate TEXT,
		country_code TEXT,
		hash_id TEXT NOT NULL,
		imported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id),
		UNIQUE(user_id, hash_id)
	);

	CREATE TABLE IF NOT EXISTS fx_rate_cache (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		currency TEXT NOT NULL,
		rate_date TEXT NOT NULL,
		rate TEXT NOT NULL,
		fetched_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(currency, rate_date)
	);
	`

	_, err = DB.Exec(createTableStatement)
	if err != nil {
		if logger.L != nil {
			logger.L.Error("failed to create tables", "error", err)
		}
		stdlog.Fatalf("failed to create tables: %v", err)
	}
	if logger.L != nil {
		logger.L.Info("Database tables ensured/created.")
	} else {
		stdlog.Println("Database tables ensured/created.")
	}
}

func migrateActivityTable() {
	var tableName string
	err := DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='activities'").Scan(&tableName)
	if err != nil {
		if err == sql.ErrNoRows {
			if logger.L != nil {
				logger.L.Info("'activities' table does not exist, no migration needed as table will be created.")
			} else {
				stdlog.Println("'activities' table does not exist, no migration needed as table will be created.")
			}
			return
		}
		if logger.L != nil {
			logger.L.Error("Error checking for 'activities' table", "error", err)
		} else {
			stdlog.Printf("Error checking for 'activities' table: %v", err)
		}
		return
	}

	rows, err := DB.Query("PRAGMA table_info(activities)")
	if err != nil {
		if logger.L != nil {
			logger.L.Error("Error querying table schema for 'activities'", "error", err)
		} else {
			stdlog.Printf("Error querying table schema for 'activities': %v", err)
		}
		return
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, pk int
		var name, dataType string
		var notnullVal int
		var dfltValue interface{}

		if err := rows.Scan(&cid, &name, &dataType, &notnullVal, &dfltValue, &pk); err != nil {
			if logger.L != nil {
				logger.L.Error("Error scanning column info for 'activities'", "error", err)
			} else {
				stdlog.Printf("Error scanning column info for 'activities': %v", err)
			}
			return
		}
		columnExists[name] = true
	}
	if err = rows.Err(); err != nil {
		if logger.L != nil {
			logger.L.Error("Error iterating over column info for 'activities'", "error", err)
		} else {
			stdlog.Printf("Error iterating over column info for 'activities': %v", err)
		}
		return
	}

	if _, ok := columnExists["wkn"]; !ok {
		_, err := DB.Exec("ALTER TABLE activities ADD COLUMN wkn TEXT")
		if err != nil {
			logger.L.Error("Error adding 'wkn' column to 'activities' table", "error", err)
		} else {
			logger.L.Info("Added 'wkn' column to 'activities' table")
		}
	}

	if _, ok := columnExists["country_code"]; !ok {
		_, err := DB.Exec("ALTER TABLE activities ADD COLUMN country_code TEXT")
		if err != nil {
			logger.L.Error("Error adding 'country_code' column to 'activities' table", "error", err)
		} else {
			logger.L.Info("Added 'country_code' column to 'activities' table")
		}
	}

	if _, ok := columnExists["foreign_currency"]; !ok {
		_, err := DB.Exec("ALTER TABLE activities ADD COLUMN foreign_currency TEXT")
		if err != nil {
			logger.L.Error("Error adding 'foreign_currency' column to 'activities' table", "error", err)
		} else {
			logger.L.Info("Added 'foreign_currency' column to 'activities' table")
		}
	}
	if _, ok := columnExists["fx_rate"]; !ok {
		_, err := DB.Exec("ALTER TABLE activities ADD COLUMN fx_rate TEXT")
		if err != nil {
			logger.L.Error("Error adding 'fx_rate' column to 'activities' table", "error", err)
		} else {
			logger.L.Info("Added 'fx_rate' column to 'activities' table")
		}
	}

	if _, ok := columnExists["imported_at"]; !ok {
		_, err := DB.Exec("ALTER TABLE activities ADD COLUMN imported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP")
		if err != nil {
			logger.L.Error("Error adding 'imported_at' column to 'activities' table", "error", err)
		} else {
			logger.L.Info("Added 'imported_at' column to 'activities' table")
		}
	}
}
