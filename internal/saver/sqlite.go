package saver

import (
	"database/sql"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"ms2csv/internal/model"
)

// SQLiteSaver writes each symbol into its own database file: one quotes
// table, filled inside a single transaction.
type SQLiteSaver struct{}

func (SQLiteSaver) Extension() string { return "db" }

const quotesSchema = `CREATE TABLE quotes (
	symbol TEXT NOT NULL,
	date INTEGER NOT NULL,
	time INTEGER,
	open REAL,
	high REAL,
	low REAL,
	close REAL,
	volume INTEGER,
	oi INTEGER
)`

const quotesInsert = `INSERT INTO quotes
	(symbol, date, time, open, high, low, close, volume, oi)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (SQLiteSaver) Create(path string) (RowWriter, error) {
	// The driver appends to an existing database; conversion overwrites.
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(quotesSchema); err != nil {
		db.Close()
		return nil, err
	}
	tx, err := db.Begin()
	if err != nil {
		db.Close()
		return nil, err
	}
	stmt, err := tx.Prepare(quotesInsert)
	if err != nil {
		tx.Rollback()
		db.Close()
		return nil, err
	}
	return &sqliteWriter{db: db, tx: tx, stmt: stmt}, nil
}

type sqliteWriter struct {
	db     *sql.DB
	tx     *sql.Tx
	stmt   *sql.Stmt
	symbol string
}

func (sw *sqliteWriter) Begin(s model.Series) error {
	sw.symbol = s.Symbol
	return nil
}

func (sw *sqliteWriter) Write(r model.Row) error {
	q := r.Quote
	_, err := sw.stmt.Exec(sw.symbol, q.Date, q.Time, q.Open, q.High, q.Low, q.Close, q.Volume, q.OI)
	return err
}

func (sw *sqliteWriter) Close() error {
	defer sw.db.Close()
	sw.stmt.Close()
	return sw.tx.Commit()
}
