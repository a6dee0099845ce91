// Package sqlite provides SQLite persistence for lipid annotation
// results.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mzkit/lipidmatch/pkg/lipid"
)

// Writer handles writing matched lipids to a SQLite database file.
type Writer struct {
	db           *sql.DB
	outputPath   string
	matchStmt    *sql.Stmt
	fragmentStmt *sql.Stmt
	matchID      int
}

// NewWriter creates a new SQLite writer.
func NewWriter(outputPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:         db,
		outputPath: outputPath,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	if err := w.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	return w, nil
}

// createTables creates the required database schema.
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS LipidAnnotationTable (
		AnnotationId INTEGER PRIMARY KEY,
		SourceFile TEXT,
		ScanNumber INTEGER,
		Name TEXT,
		LipidClass TEXT,
		AnnotationLevel TEXT,
		Formula TEXT,
		PrecursorMZ DOUBLE,
		IonizationMode TEXT,
		ExplainedScore DOUBLE
	);

	CREATE TABLE IF NOT EXISTS FragmentTable (
		FragmentId INTEGER PRIMARY KEY,
		AnnotationId INTEGER REFERENCES LipidAnnotationTable(AnnotationId),
		RuleKind TEXT,
		AnnotationLevel TEXT,
		PredictedMZ DOUBLE,
		ObservedMZ DOUBLE,
		Intensity DOUBLE,
		ChainType TEXT,
		ChainLength INTEGER,
		DoubleBonds INTEGER
	);
	`

	if _, err := w.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// prepareStatements prepares the insert statements.
func (w *Writer) prepareStatements() error {
	var err error

	w.matchStmt, err = w.db.Prepare(`
		INSERT INTO LipidAnnotationTable
		(AnnotationId, SourceFile, ScanNumber, Name, LipidClass, AnnotationLevel,
		 Formula, PrecursorMZ, IonizationMode, ExplainedScore)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare annotation statement: %w", err)
	}

	w.fragmentStmt, err = w.db.Prepare(`
		INSERT INTO FragmentTable
		(AnnotationId, RuleKind, AnnotationLevel, PredictedMZ, ObservedMZ,
		 Intensity, ChainType, ChainLength, DoubleBonds)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare fragment statement: %w", err)
	}

	return nil
}

// WriteMatch writes one matched lipid and its fragment evidence.
func (w *Writer) WriteMatch(sourceFile string, m lipid.MatchedLipid) error {
	return w.writeMatch(w.matchStmt, w.fragmentStmt, sourceFile, m)
}

func (w *Writer) writeMatch(matchStmt, fragmentStmt *sql.Stmt, sourceFile string, m lipid.MatchedLipid) error {
	w.matchID++

	scanNumber := 0
	if len(m.Fragments) > 0 {
		scanNumber = m.Fragments[0].Scan.Number
	}

	_, err := matchStmt.Exec(
		w.matchID,
		sourceFile,
		scanNumber,
		m.Annotation.Name(),
		m.Annotation.LipidClass().Abbr,
		m.Annotation.Level().String(),
		m.Annotation.Formula().String(),
		m.AccurateMZ,
		m.Ionization.String(),
		m.Score,
	)
	if err != nil {
		return fmt.Errorf("failed to insert annotation: %w", err)
	}

	for _, frag := range m.Fragments {
		chainType := ""
		if frag.ChainType != lipid.ChainTypeNone {
			chainType = frag.ChainType.String()
		}
		_, err := fragmentStmt.Exec(
			w.matchID,
			frag.RuleKind.String(),
			frag.Level.String(),
			frag.PredictedMZ,
			frag.Peak.MZ,
			frag.Peak.Intensity,
			chainType,
			frag.ChainLength,
			frag.DoubleBonds,
		)
		if err != nil {
			return fmt.Errorf("failed to insert fragment: %w", err)
		}
	}

	return nil
}

// WriteAll writes a batch of matches inside a single transaction.
func (w *Writer) WriteAll(sourceFile string, matches []lipid.MatchedLipid) error {
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	matchStmt := tx.Stmt(w.matchStmt)
	fragmentStmt := tx.Stmt(w.fragmentStmt)
	for _, m := range matches {
		if err := w.writeMatch(matchStmt, fragmentStmt, sourceFile, m); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Close releases prepared statements and the database handle.
func (w *Writer) Close() error {
	if w.matchStmt != nil {
		w.matchStmt.Close()
	}
	if w.fragmentStmt != nil {
		w.fragmentStmt.Close()
	}
	return w.db.Close()
}
