package consultation

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Skufu/GoCardio/internal/clinical"
	"github.com/Skufu/GoCardio/internal/prediction"
)

var fixedTime = time.Date(2024, 5, 17, 9, 30, 5, 0, time.Local)

func sampleEntry() Entry {
	return Entry{
		Patient: clinical.Patient{Name: "Diallo", Surname: "Awa", Address: "Parcelles, Dakar", Telephone: "+221 77 000 00 00"},
		Vector: clinical.FeatureVector{
			Age: 63, Sex: clinical.Male, CP: 3, TrestBPS: 145, Chol: 233,
			FPS: clinical.Yes, RestECG: 0, Thalach: 150, Exang: clinical.No,
			Oldpeak: 2.3, Slope: 3, CA: 0, Thal: 1,
		},
		Result:   prediction.DiseasePresent,
		RecordAt: fixedTime,
	}
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestEntryRow(t *testing.T) {
	row := sampleEntry().Row()
	require.Len(t, row, len(Columns))
	assert.Len(t, Columns, 19)
	assert.Equal(t, []string{
		"Diallo", "Awa", "Parcelles, Dakar", "+221 77 000 00 00",
		"63", "Homme", "3", "145", "233", "Oui", "0", "150", "Non", "2.3", "3", "0", "1",
		"Maladie cardiaque", "2024-05-17 09:30:05",
	}, row)
}

func TestEntryRowFlagsReencoded(t *testing.T) {
	e := sampleEntry()
	e.Vector.Sex = clinical.Female
	e.Vector.FPS = clinical.No
	e.Vector.Exang = clinical.Yes
	e.Vector.Oldpeak = 1
	e.Result = prediction.DiseaseAbsent

	row := e.Row()
	assert.Equal(t, "Femme", row[5])
	assert.Equal(t, "Non", row[9])
	assert.Equal(t, "Oui", row[12])
	assert.Equal(t, "1.0", row[13])
	assert.Equal(t, "Pas de maladie cardiaque", row[17])
}

func TestCSVRecorderAppendsWithoutHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "consultations.csv")
	rec := NewCSVRecorder(path)

	require.NoError(t, rec.Record(context.Background(), sampleEntry()))

	empty := sampleEntry()
	empty.Patient = clinical.Patient{}
	require.NoError(t, rec.Record(context.Background(), empty))

	rows := readRows(t, path)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Len(t, r, 19)
		assert.NotEqual(t, "Nom", r[0])
	}
	assert.Equal(t, "Parcelles, Dakar", rows[0][2])
	assert.Equal(t, "", rows[1][0])
}

func TestCSVRecorderKeepsExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "consultations.csv")
	header := "Nom,Prénom\n"
	require.NoError(t, os.WriteFile(path, []byte(header), 0o644))

	require.NoError(t, NewCSVRecorder(path).Record(context.Background(), sampleEntry()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, header, string(raw[:len(header)]))
}

func TestCSVRecorderConcurrentWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "consultations.csv")
	rec := NewCSVRecorder(path)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, rec.Record(context.Background(), sampleEntry()))
		}()
	}
	wg.Wait()

	rows := readRows(t, path)
	assert.Len(t, rows, 20)
}

func TestCSVRecorderOpenError(t *testing.T) {
	rec := NewCSVRecorder(filepath.Join(t.TempDir(), "missing", "consultations.csv"))
	assert.Error(t, rec.Record(context.Background(), sampleEntry()))
}

type fakeExec struct {
	sql  []string
	args [][]any
	err  error
}

func (f *fakeExec) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sql = append(f.sql, sql)
	f.args = append(f.args, args)
	return pgconn.NewCommandTag("INSERT 0 1"), f.err
}

func TestPostgresRecorder(t *testing.T) {
	db := &fakeExec{}
	rec := NewPostgresRecorder(db)
	require.NoError(t, rec.EnsureSchema(context.Background()))
	require.NoError(t, rec.Record(context.Background(), sampleEntry()))

	require.Len(t, db.sql, 2)
	assert.Contains(t, db.sql[0], "CREATE TABLE IF NOT EXISTS consultations")
	assert.Contains(t, db.sql[1], "INSERT INTO consultations")
	args := db.args[1]
	require.Len(t, args, 19)
	assert.Equal(t, "Homme", args[5])
	assert.Equal(t, 2.3, args[13])
	assert.Equal(t, "Maladie cardiaque", args[17])
	assert.Equal(t, fixedTime, args[18])
}

func TestPostgresRecorderError(t *testing.T) {
	rec := NewPostgresRecorder(&fakeExec{err: errors.New("conn refused")})
	assert.Error(t, rec.Record(context.Background(), sampleEntry()))
	assert.Error(t, rec.EnsureSchema(context.Background()))
}

type recorderFunc func(context.Context, Entry) error

func (f recorderFunc) Record(ctx context.Context, e Entry) error { return f(ctx, e) }

func TestServiceSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "consultations.csv")
	var mirrored []Entry
	mirror := recorderFunc(func(_ context.Context, e Entry) error {
		mirrored = append(mirrored, e)
		return errors.New("mirror down")
	})

	svc := NewService(zap.NewNop(), NewCSVRecorder(path), mirror).WithClock(func() time.Time { return fixedTime })
	s := sampleEntry()
	e, err := svc.Save(context.Background(), s.Patient, s.Vector, s.Result)
	require.NoError(t, err)
	assert.Equal(t, fixedTime, e.RecordAt)
	assert.Len(t, mirrored, 1)

	rows := readRows(t, path)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-05-17 09:30:05", rows[0][18])
}

func TestServiceSavePrimaryFailure(t *testing.T) {
	called := false
	mirror := recorderFunc(func(context.Context, Entry) error { called = true; return nil })
	primary := recorderFunc(func(context.Context, Entry) error { return errors.New("disk full") })

	svc := NewService(zap.NewNop(), primary, mirror)
	s := sampleEntry()
	_, err := svc.Save(context.Background(), s.Patient, s.Vector, s.Result)
	assert.Error(t, err)
	assert.False(t, called)
}
