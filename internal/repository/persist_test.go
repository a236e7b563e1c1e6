package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"vet-clinic-server/internal/models"
)

var errStubQuery = errors.New("stub connection only executes statements")

// stubConn answers every Exec with a fixed affected-row count.
type stubConn struct {
	rowsAffected int64
	err          error
	execs        []string
}

func (c *stubConn) ExecContext(_ context.Context, query string, _ ...interface{}) (sql.Result, error) {
	c.execs = append(c.execs, query)
	if c.err != nil {
		return nil, c.err
	}
	return driver.RowsAffected(c.rowsAffected), nil
}

func (c *stubConn) PrepareContext(context.Context, string) (*sql.Stmt, error) {
	return nil, errStubQuery
}

func (c *stubConn) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errStubQuery
}

func (c *stubConn) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func newStubAppointments(t *testing.T, conn *stubConn) *Appointments {
	t.Helper()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)

	return NewAppointments(db)
}

func stubAppointment() *models.Appointment {
	appt := &models.Appointment{Status: models.StatusConfirmed, Version: 2}
	appt.ID = "appt-1"
	return appt
}

func TestPersistStaleRow(t *testing.T) {
	t.Parallel()

	conn := &stubConn{rowsAffected: 0}
	appt := stubAppointment()

	err := newStubAppointments(t, conn).Persist(context.Background(), appt)
	require.ErrorIs(t, err, ErrStaleAppointment)
	assert.Equal(t, 2, appt.Version)
	require.Len(t, conn.execs, 1)
	assert.Contains(t, conn.execs[0], "AND version = ?")
}

func TestPersistBumpsVersion(t *testing.T) {
	t.Parallel()

	conn := &stubConn{rowsAffected: 1}
	appt := stubAppointment()

	require.NoError(t, newStubAppointments(t, conn).Persist(context.Background(), appt))
	assert.Equal(t, 3, appt.Version)
}

func TestPersistDatabaseError(t *testing.T) {
	t.Parallel()

	errGone := errors.New("connection reset")
	conn := &stubConn{err: errGone}
	appt := stubAppointment()

	err := newStubAppointments(t, conn).Persist(context.Background(), appt)
	require.ErrorIs(t, err, errGone)
	assert.NotErrorIs(t, err, ErrStaleAppointment)
	assert.Equal(t, 2, appt.Version)
}
