package report

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RathijitAich/Appointmenet-Scheduler/internal/models"
)

func sample() []models.Appointment {
	return []models.Appointment{
		{ID: 1, BookedBy: "alice", WithWhom: "bob", Status: models.StatusApproved, Priority: models.PriorityMedium},
		{ID: 2, BookedBy: "alice", WithWhom: "bob", Status: models.StatusPending, Priority: models.PriorityHigh},
		{ID: 3, BookedBy: "carol", WithWhom: "bob", Status: models.StatusRejected, Priority: models.PriorityMedium},
		{ID: 4, BookedBy: "alice", WithWhom: "carol", Status: models.StatusCancelled, Priority: models.PriorityLow},
	}
}

func TestBuild(t *testing.T) {
	s := Build(sample())

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.ByStatus[models.StatusApproved])
	assert.Equal(t, 1, s.ByStatus[models.StatusPending])
	assert.Equal(t, 1, s.ByStatus[models.StatusRejected])
	assert.Equal(t, 1, s.ByStatus[models.StatusCancelled])
	assert.Equal(t, 2, s.ByPriority[models.PriorityMedium])
	assert.Equal(t, 3, s.ByUser["alice"])
	assert.Equal(t, 3, s.ByUser["bob"])
	assert.Equal(t, 2, s.ByUser["carol"])
}

func TestBuild_Empty(t *testing.T) {
	s := Build(nil)
	assert.Equal(t, 0, s.Total)
	assert.Empty(t, s.ByUser)
}

func TestSummary_BusiestUsers(t *testing.T) {
	s := Build(sample())
	// alice and bob tie on 3; usernames break the tie.
	assert.Equal(t, []string{"alice", "bob", "carol"}, s.BusiestUsers())
}

type fakeWriter struct {
	sheets []string
	rows   int
	saved  string
}

func (f *fakeWriter) AddSheet(name string) error {
	f.sheets = append(f.sheets, name)
	return nil
}
func (f *fakeWriter) WriteHeader([]string) error { return nil }
func (f *fakeWriter) WriteRow([]interface{}) error {
	f.rows++
	return nil
}
func (f *fakeWriter) SaveToFile(path string) error {
	f.saved = path
	return nil
}
func (f *fakeWriter) Close() error { return nil }

func TestExporter_Export(t *testing.T) {
	logger := zerolog.Nop()
	fw := &fakeWriter{}
	e := NewExporterWithWriter(func() ExcelWriter { return fw }, &logger)

	require.NoError(t, e.Export("out.xlsx", sample()))

	assert.Equal(t, []string{"Appointments", "Summary"}, fw.sheets)
	assert.Equal(t, "out.xlsx", fw.saved)
	// 4 appointment rows + total + 4 statuses + 3 priorities + 3 users.
	assert.Equal(t, 15, fw.rows)
}
