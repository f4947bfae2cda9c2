package storage

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	financeModel "github.com/Egor603/curswork1/internal/finance"
	"github.com/Egor603/curswork1/logging"
	_ "github.com/go-sql-driver/mysql"
)

// Init connects to MySQL using the DB_* env variables (or FULL_DSN) and
// makes sure the transactions table exists.
func Init() (*sql.DB, error) {
	username := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASS")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	dbname := os.Getenv("DB_NAME")
	fullDsn := os.Getenv("FULL_DSN")

	if dbname == "" {
		dbname = "curswork"
	}

	var dsn string
	if fullDsn != "" {
		dsn = fullDsn
	} else {
		if username == "" || password == "" || host == "" || port == "" {
			return nil, fmt.Errorf("missing required DB environment variables")
		}
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", username, password, host, port, dbname)
	}

	logging.Logger.Info("Connecting to database...")
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database handle: %v", err)
	}

	connected := false
	for i := 0; i < 15; i++ {
		if err := db.Ping(); err == nil {
			connected = true
			break
		}
		logging.Logger.Warnf("Database not ready, retrying... (%d/15)", i+1)
		time.Sleep(3 * time.Second)
	}
	if !connected {
		return nil, fmt.Errorf("database unreachable after multiple attempts")
	}

	createTableSql := `CREATE TABLE IF NOT EXISTS transactions (
		id VARCHAR(36) PRIMARY KEY,
		description TEXT NOT NULL,
		category VARCHAR(255) NOT NULL,
		operation_date CHAR(10) NOT NULL,
		amount DOUBLE NOT NULL
	) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;`
	if _, err := db.Exec(createTableSql); err != nil {
		return nil, fmt.Errorf("failed to create transactions table: %v", err)
	}

	logging.Logger.Info("Connected to database successfully")
	return db, nil
}

type MySQLStorage struct {
	db *sql.DB
}

func NewMySQLStorage(db *sql.DB) *MySQLStorage {
	return &MySQLStorage{db: db}
}

func (s *MySQLStorage) GetStorageType() string {
	return "MySQL"
}

func (s *MySQLStorage) GetTransactions() ([]financeModel.Transaction, error) {
	query := "SELECT description, category, operation_date, amount FROM transactions ORDER BY operation_date"
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []financeModel.Transaction
	for rows.Next() {
		var t financeModel.Transaction
		if err := rows.Scan(&t.Description, &t.Category, &t.Date, &t.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transaction rows: %w", err)
	}
	return transactions, nil
}
