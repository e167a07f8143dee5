package consultation

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is the part of *pgxpool.Pool the recorder needs.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const createTableSQL = `CREATE TABLE IF NOT EXISTS consultations (
	id          BIGSERIAL PRIMARY KEY,
	nom         TEXT NOT NULL,
	prenom      TEXT NOT NULL,
	adresse     TEXT NOT NULL,
	telephone   TEXT NOT NULL,
	age         INTEGER NOT NULL,
	sexe        TEXT NOT NULL,
	cp          INTEGER NOT NULL,
	trestbps    INTEGER NOT NULL,
	chol        INTEGER NOT NULL,
	fps         TEXT NOT NULL,
	restech     INTEGER NOT NULL,
	thalach     INTEGER NOT NULL,
	exang       TEXT NOT NULL,
	oldpeak     DOUBLE PRECISION NOT NULL,
	slope       INTEGER NOT NULL,
	ca          INTEGER NOT NULL,
	thal        INTEGER NOT NULL,
	resultat    TEXT NOT NULL,
	consulted_at TIMESTAMP NOT NULL
)`

const insertSQL = `INSERT INTO consultations (
	nom, prenom, adresse, telephone, age, sexe, cp, trestbps, chol, fps,
	restech, thalach, exang, oldpeak, slope, ca, thal, resultat, consulted_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

// PostgresRecorder mirrors the flat log into a consultations table.
type PostgresRecorder struct {
	db Execer
}

func NewPostgresRecorder(db Execer) *PostgresRecorder {
	return &PostgresRecorder{db: db}
}

// EnsureSchema creates the table when it does not exist yet.
func (r *PostgresRecorder) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create consultations table: %w", err)
	}
	return nil
}

func (r *PostgresRecorder) Record(ctx context.Context, e Entry) error {
	v := e.Vector
	_, err := r.db.Exec(ctx, insertSQL,
		e.Patient.Name, e.Patient.Surname, e.Patient.Address, e.Patient.Telephone,
		v.Age, v.Sex.String(), int(v.CP), v.TrestBPS, v.Chol, v.FPS.String(),
		int(v.RestECG), v.Thalach, v.Exang.String(), v.Oldpeak, int(v.Slope), v.CA, int(v.Thal),
		e.Result.String(), e.RecordAt,
	)
	if err != nil {
		return fmt.Errorf("insert consultation: %w", err)
	}
	return nil
}
