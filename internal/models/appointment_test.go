package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentIsParticipant(t *testing.T) {
	t.Parallel()

	appt := &Appointment{OwnerID: "owner-1", VeterinarianID: "vet-1"}
	assert.True(t, appt.IsParticipant("owner-1"))
	assert.True(t, appt.IsParticipant("vet-1"))
	assert.False(t, appt.IsParticipant("vet-2"))
	assert.False(t, (&Appointment{}).IsParticipant(""))
}

func TestDatabaseConfigDialector(t *testing.T) {
	t.Parallel()

	for _, driver := range []string{"", "mysql", "postgres"} {
		d, err := DatabaseConfig{Driver: driver, DSN: "dsn"}.Dialector()
		require.NoError(t, err, driver)
		want := driver
		if want == "" {
			want = "mysql"
		}
		assert.Equal(t, want, d.Name())
	}

	_, err := DatabaseConfig{Driver: "sqlite"}.Dialector()
	assert.Error(t, err)
}

func TestUserPassword(t *testing.T) {
	t.Parallel()

	u := &User{}
	require.NoError(t, u.SetPassword("correct-horse"))
	assert.NotEqual(t, "correct-horse", u.Password)
	assert.True(t, u.CheckPassword("correct-horse"))
	assert.False(t, u.CheckPassword("battery-staple"))
	assert.Equal(t, u.Email, u.Sanitize().Email)
}
