// Package store reads and writes the MacDive SQLite database. MacDive
// is a Core Data application: entity ids live in Z_PRIMARYKEY, primary
// keys are allocated by bumping Z_MAX, and timestamps count seconds
// from the Core Data epoch (2001-01-01 UTC).
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// coreDataEpoch is 2001-01-01T00:00:00Z as a unix timestamp.
const coreDataEpoch = 978307200

// ErrNotMacDive means the database has no DiveSite entity registered,
// so it is not a MacDive database at all.
var ErrNotMacDive = errors.New("not a MacDive database")

// Candidate is a Shearwater dive with raw DC memory but no GPS on its
// dive site.
type Candidate struct {
	PK         int64
	DiveNumber int64
	RawData    []byte
	Notes      string
	SiteFK     sql.NullInt64
	Opt        int64
}

// Label names the dive for logs, preferring the user-visible number.
func (c Candidate) Label() string {
	if c.DiveNumber != 0 {
		return fmt.Sprintf("dive %d", c.DiveNumber)
	}
	return fmt.Sprintf("dive (PK=%d)", c.PK)
}

// SitePlace is what reverse geocoding contributes to a new dive site.
type SitePlace struct {
	Country  string
	Location string
	Water    string
}

type DB struct {
	conn *sql.DB
}

// Open opens the MacDive database. The file must already exist; this
// tool never creates databases.
func Open(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database not found: %w", err)
	}
	conn, err := openFile(path)
	if err != nil {
		return nil, err
	}
	return &DB{conn: conn}, nil
}

func openFile(path string) (*sql.DB, error) {
	return sql.Open("sqlite3", path)
}

func (d *DB) Close() error {
	return d.conn.Close()
}

// DiveSiteEntity returns the Core Data Z_ENT for the DiveSite entity.
func (d *DB) DiveSiteEntity() (int64, error) {
	var ent int64
	err := d.conn.QueryRow(
		"SELECT Z_ENT FROM Z_PRIMARYKEY WHERE Z_NAME = 'DiveSite'",
	).Scan(&ent)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotMacDive
	}
	if err != nil {
		return 0, err
	}
	return ent, nil
}

// Candidates returns Shearwater dives that carry raw DC memory but
// whose dive site is missing or has no GPS, in dive-number order.
func (d *DB) Candidates() ([]Candidate, error) {
	rows, err := d.conn.Query(`
		SELECT d.Z_PK, COALESCE(d.ZDIVENUMBER, 0), d.ZRAWDATA,
		       COALESCE(d.ZNOTES, ''), d.ZRELATIONSHIPDIVESITE, d.Z_OPT
		FROM ZDIVE d
		LEFT JOIN ZDIVESITE s ON d.ZRELATIONSHIPDIVESITE = s.Z_PK
		WHERE d.ZRAWDATA IS NOT NULL
		  AND d.ZPARSERTYPE LIKE 'shearwater%'
		  AND (d.ZRELATIONSHIPDIVESITE IS NULL
		       OR s.ZGPSLAT IS NULL OR s.ZGPSLAT = 0.0)
		ORDER BY d.ZDIVENUMBER`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(&c.PK, &c.DiveNumber, &c.RawData, &c.Notes, &c.SiteFK, &c.Opt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ApplyGPS creates a dive site at the entry coordinates and links the
// dive to it, appending newNotes. One transaction per dive: either the
// site, the Z_MAX bump and the dive update all land, or none do.
func (d *DB) ApplyGPS(c Candidate, siteEnt int64, lat, lon float64, place SitePlace, newNotes string) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var sitePK int64
	if err := tx.QueryRow(
		"SELECT Z_MAX FROM Z_PRIMARYKEY WHERE Z_NAME = 'DiveSite'",
	).Scan(&sitePK); err != nil {
		return err
	}
	sitePK++

	now := float64(time.Now().Unix() - coreDataEpoch)
	if _, err := tx.Exec(`
		INSERT INTO ZDIVESITE
			(Z_PK, Z_ENT, Z_OPT, ZGPSLAT, ZGPSLON,
			 ZCOUNTRY, ZLOCATION, ZBODYOFWATER, ZMODIFIED)
		VALUES (?, ?, 1, ?, ?, ?, ?, ?, ?)`,
		sitePK, siteEnt, lat, lon,
		nullable(place.Country), nullable(place.Location), nullable(place.Water),
		now); err != nil {
		return fmt.Errorf("insert dive site: %w", err)
	}

	if _, err := tx.Exec(
		"UPDATE Z_PRIMARYKEY SET Z_MAX = ? WHERE Z_NAME = 'DiveSite'", sitePK,
	); err != nil {
		return fmt.Errorf("bump site pk: %w", err)
	}

	if _, err := tx.Exec(`
		UPDATE ZDIVE
		SET ZRELATIONSHIPDIVESITE = ?, ZNOTES = ?, Z_OPT = ?
		WHERE Z_PK = ?`,
		sitePK, newNotes, c.Opt+1, c.PK); err != nil {
		return fmt.Errorf("link dive %d: %w", c.PK, err)
	}

	return tx.Commit()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
