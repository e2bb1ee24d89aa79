package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDB creates a minimal MacDive-shaped database on disk. Only the
// columns this tool touches are modeled.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "MacDive.sqlite")

	// Open() refuses missing files, so create the schema first through
	// a throwaway handle.
	d := &DB{}
	conn, err := openFile(path)
	require.NoError(t, err)
	d.conn = conn

	_, err = d.conn.Exec(`
		CREATE TABLE Z_PRIMARYKEY (Z_ENT INTEGER, Z_NAME TEXT, Z_SUPER INTEGER, Z_MAX INTEGER);
		CREATE TABLE ZDIVE (
			Z_PK INTEGER PRIMARY KEY, Z_ENT INTEGER, Z_OPT INTEGER,
			ZDIVENUMBER INTEGER, ZRAWDATA BLOB, ZNOTES TEXT,
			ZPARSERTYPE TEXT, ZRELATIONSHIPDIVESITE INTEGER
		);
		CREATE TABLE ZDIVESITE (
			Z_PK INTEGER PRIMARY KEY, Z_ENT INTEGER, Z_OPT INTEGER,
			ZGPSLAT REAL, ZGPSLON REAL,
			ZCOUNTRY TEXT, ZLOCATION TEXT, ZBODYOFWATER TEXT, ZMODIFIED REAL
		);
		INSERT INTO Z_PRIMARYKEY VALUES (3, 'DiveSite', 0, 10);
	`)
	require.NoError(t, err)

	t.Cleanup(func() { d.Close() })
	return d
}

func TestDiveSiteEntity(t *testing.T) {
	d := newTestDB(t)
	ent, err := d.DiveSiteEntity()
	require.NoError(t, err)
	assert.Equal(t, int64(3), ent)
}

func TestDiveSiteEntity_NotMacDive(t *testing.T) {
	d := newTestDB(t)
	_, err := d.conn.Exec("DELETE FROM Z_PRIMARYKEY")
	require.NoError(t, err)

	_, err = d.DiveSiteEntity()
	assert.ErrorIs(t, err, ErrNotMacDive)
}

func TestCandidates_Filtering(t *testing.T) {
	d := newTestDB(t)
	_, err := d.conn.Exec(`
		INSERT INTO ZDIVESITE (Z_PK, ZGPSLAT, ZGPSLON) VALUES (1, -17.8527, 177.1814);
		INSERT INTO ZDIVESITE (Z_PK, ZGPSLAT, ZGPSLON) VALUES (2, 0.0, 0.0);
		-- no site at all: candidate
		INSERT INTO ZDIVE VALUES (10, 1, 1, 42, x'0102', 'notes', 'shearwaterpetrel', NULL);
		-- site with GPS: not a candidate
		INSERT INTO ZDIVE VALUES (11, 1, 1, 43, x'0102', '', 'shearwaterpetrel', 1);
		-- site with zero GPS: candidate
		INSERT INTO ZDIVE VALUES (12, 1, 1, 44, x'0102', NULL, 'shearwater', 2);
		-- wrong parser: not a candidate
		INSERT INTO ZDIVE VALUES (13, 1, 1, 45, x'0102', '', 'suunto', NULL);
		-- no raw data: not a candidate
		INSERT INTO ZDIVE VALUES (14, 1, 1, 46, NULL, '', 'shearwaterpetrel', NULL);
	`)
	require.NoError(t, err)

	cands, err := d.Candidates()
	require.NoError(t, err)
	require.Len(t, cands, 2)

	assert.Equal(t, int64(10), cands[0].PK)
	assert.Equal(t, int64(42), cands[0].DiveNumber)
	assert.Equal(t, []byte{0x01, 0x02}, cands[0].RawData)
	assert.Equal(t, "notes", cands[0].Notes)
	assert.False(t, cands[0].SiteFK.Valid)

	assert.Equal(t, int64(12), cands[1].PK)
	assert.Equal(t, "", cands[1].Notes)
	assert.True(t, cands[1].SiteFK.Valid)
}

func TestApplyGPS(t *testing.T) {
	d := newTestDB(t)
	_, err := d.conn.Exec(
		`INSERT INTO ZDIVE VALUES (10, 1, 2, 42, x'0102', 'old', 'shearwaterpetrel', NULL)`)
	require.NoError(t, err)

	c := Candidate{PK: 10, DiveNumber: 42, Notes: "old", Opt: 2}
	place := SitePlace{Country: "Fiji", Location: "Nadi", Water: "Nadi Bay"}
	err = d.ApplyGPS(c, 3, -17.8527, 177.18138, place, "old\n\n[Swift AI GPS] ...")
	require.NoError(t, err)

	// Site allocated at Z_MAX+1 and Z_MAX bumped.
	var max int64
	require.NoError(t, d.conn.QueryRow(
		"SELECT Z_MAX FROM Z_PRIMARYKEY WHERE Z_NAME = 'DiveSite'").Scan(&max))
	assert.Equal(t, int64(11), max)

	var lat, lon float64
	var country, location, water string
	var ent, opt int64
	require.NoError(t, d.conn.QueryRow(`
		SELECT Z_ENT, Z_OPT, ZGPSLAT, ZGPSLON, ZCOUNTRY, ZLOCATION, ZBODYOFWATER
		FROM ZDIVESITE WHERE Z_PK = 11`).
		Scan(&ent, &opt, &lat, &lon, &country, &location, &water))
	assert.Equal(t, int64(3), ent)
	assert.Equal(t, int64(1), opt)
	assert.InDelta(t, -17.8527, lat, 1e-9)
	assert.InDelta(t, 177.18138, lon, 1e-9)
	assert.Equal(t, "Fiji", country)
	assert.Equal(t, "Nadi", location)
	assert.Equal(t, "Nadi Bay", water)

	var siteFK, diveOpt int64
	var notes string
	require.NoError(t, d.conn.QueryRow(
		"SELECT ZRELATIONSHIPDIVESITE, Z_OPT, ZNOTES FROM ZDIVE WHERE Z_PK = 10").
		Scan(&siteFK, &diveOpt, &notes))
	assert.Equal(t, int64(11), siteFK)
	assert.Equal(t, int64(3), diveOpt, "Z_OPT must be incremented")
	assert.Equal(t, "old\n\n[Swift AI GPS] ...", notes)
}

func TestApplyGPS_NullPlaceColumns(t *testing.T) {
	d := newTestDB(t)
	_, err := d.conn.Exec(
		`INSERT INTO ZDIVE VALUES (10, 1, 1, 42, x'0102', '', 'shearwaterpetrel', NULL)`)
	require.NoError(t, err)

	err = d.ApplyGPS(Candidate{PK: 10, Opt: 1}, 3, 1.0, 2.0, SitePlace{}, "n")
	require.NoError(t, err)

	var country any
	require.NoError(t, d.conn.QueryRow(
		"SELECT ZCOUNTRY FROM ZDIVESITE WHERE Z_PK = 11").Scan(&country))
	assert.Nil(t, country, "empty place fields are stored as NULL")
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.sqlite"))
	assert.Error(t, err)
}

func TestCandidateLabel(t *testing.T) {
	assert.Equal(t, "dive 42", Candidate{PK: 9, DiveNumber: 42}.Label())
	assert.Equal(t, "dive (PK=9)", Candidate{PK: 9}.Label())
}
