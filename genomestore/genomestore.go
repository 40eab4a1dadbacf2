// Package genomestore persists a parsed genome in a SQLite file so that large
// exports only need to be parsed once.
package genomestore

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/carbocation/dnatraits/genome"
	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE metadata (
	orientation INTEGER NOT NULL,
	ethnicity TEXT NOT NULL,
	year_of_birth INTEGER NOT NULL
);
CREATE TABLE snp (
	rsid INTEGER PRIMARY KEY,
	chromosome TEXT NOT NULL,
	position INTEGER NOT NULL,
	genotype TEXT NOT NULL,
	phased INTEGER NOT NULL
);
`

type metadataRow struct {
	Orientation int64  `db:"orientation"`
	Ethnicity   string `db:"ethnicity"`
	YearOfBirth int64  `db:"year_of_birth"`
}

type snpRow struct {
	RSID       int64  `db:"rsid"`
	Chromosome string `db:"chromosome"`
	Position   int64  `db:"position"`
	Genotype   string `db:"genotype"`
	Phased     bool   `db:"phased"`
}

// URI filenames have to begin with 'file:'; see
// https://www.sqlite.org/c3ref/open.html
func uri(path string, mode string) string {
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	return path + "?mode=" + mode
}

// Save writes g to path, replacing any existing file.
func Save(ctx context.Context, g *genome.Genome, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return pfx.Err(err)
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite3", uri(path, "rwc"))
	if err != nil {
		return pfx.Err(err)
	}
	defer db.Close()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return pfx.Err(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return pfx.Err(err)
	}

	config := g.Config()
	meta := metadataRow{
		Orientation: int64(config.Orientation),
		Ethnicity:   config.Ethnicity,
		YearOfBirth: int64(config.YearOfBirth),
	}
	if _, err := tx.NamedExecContext(ctx, "INSERT INTO metadata (orientation, ethnicity, year_of_birth) VALUES (:orientation, :ethnicity, :year_of_birth)", meta); err != nil {
		return pfx.Err(err)
	}

	stmt, err := tx.PrepareNamedContext(ctx, "INSERT INTO snp (rsid, chromosome, position, genotype, phased) VALUES (:rsid, :chromosome, :position, :genotype, :phased)")
	if err != nil {
		return pfx.Err(err)
	}
	defer stmt.Close()

	for _, rsid := range g.RSIDs() {
		rec, _ := g.Record(rsid)
		row := snpRow{
			RSID:       int64(rsid),
			Chromosome: rec.Chromosome,
			Position:   int64(rec.Position),
			Genotype:   rec.Genotype,
			Phased:     rec.Phased,
		}
		if _, err := stmt.ExecContext(ctx, row); err != nil {
			return pfx.Err(fmt.Errorf("%s: %w", rsid, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// Load reads a genome written by Save.
func Load(ctx context.Context, path string) (*genome.Genome, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, pfx.Err(err)
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite3", uri(path, "ro"))
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer db.Close()

	var meta metadataRow
	if err := db.GetContext(ctx, &meta, "SELECT orientation, ethnicity, year_of_birth FROM metadata LIMIT 1"); err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: metadata: %w", path, err))
	}

	var rows []snpRow
	if err := db.SelectContext(ctx, &rows, "SELECT rsid, chromosome, position, genotype, phased FROM snp"); err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: snp: %w", path, err))
	}

	table := make(genome.Table, len(rows))
	for _, row := range rows {
		rsid, err := genome.RSIDFromInt(row.RSID)
		if err != nil {
			return nil, pfx.Err(err)
		}
		table[rsid] = genome.Record{
			Chromosome: row.Chromosome,
			Position:   uint32(row.Position),
			Genotype:   row.Genotype,
			Phased:     row.Phased,
		}
	}

	return genome.New(table, genome.Config{
		Orientation: genome.Orientation(meta.Orientation),
		Ethnicity:   meta.Ethnicity,
		YearOfBirth: int(meta.YearOfBirth),
	})
}
