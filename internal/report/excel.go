package report

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/RathijitAich/Appointmenet-Scheduler/internal/models"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/storage"
)

// ExcelWriter abstracts workbook writing so the exporter can be tested
// without touching disk.
type ExcelWriter interface {
	AddSheet(name string) error
	WriteHeader(columns []string) error
	WriteRow(row []interface{}) error
	SaveToFile(path string) error
	Close() error
}

// ExcelizeWriter implements ExcelWriter using the excelize library.
type ExcelizeWriter struct {
	file         *excelize.File
	currentSheet string
	currentRow   int
}

// NewExcelizeWriter creates a new Excel writer.
func NewExcelizeWriter() ExcelWriter {
	return &ExcelizeWriter{
		file: excelize.NewFile(),
	}
}

// AddSheet adds a new sheet with the given name.
func (w *ExcelizeWriter) AddSheet(name string) error {
	// Truncate sheet name to 31 chars (Excel limit)
	if len(name) > 31 {
		name = name[:31]
	}

	if w.currentSheet == "" {
		// Rename default sheet
		w.file.SetSheetName("Sheet1", name)
	} else {
		_, err := w.file.NewSheet(name)
		if err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	w.currentSheet = name
	w.currentRow = 1
	return nil
}

// WriteHeader writes column headers to the current sheet in bold.
func (w *ExcelizeWriter) WriteHeader(columns []string) error {
	if w.currentSheet == "" {
		return fmt.Errorf("no active sheet")
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, w.currentRow)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.currentSheet, cell, col); err != nil {
			return err
		}
	}

	style, err := w.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, w.currentRow)
		endCell, _ := excelize.CoordinatesToCellName(len(columns), w.currentRow)
		_ = w.file.SetCellStyle(w.currentSheet, startCell, endCell, style)
	}

	w.currentRow++
	return nil
}

// WriteRow writes a data row to the current sheet.
func (w *ExcelizeWriter) WriteRow(row []interface{}) error {
	if w.currentSheet == "" {
		return fmt.Errorf("no active sheet")
	}

	for i, val := range row {
		cell, err := excelize.CoordinatesToCellName(i+1, w.currentRow)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.currentSheet, cell, val); err != nil {
			return err
		}
	}

	w.currentRow++
	return nil
}

// SaveToFile writes the workbook to disk.
func (w *ExcelizeWriter) SaveToFile(path string) error {
	return w.file.SaveAs(path)
}

// Close releases resources.
func (w *ExcelizeWriter) Close() error {
	return w.file.Close()
}

// Exporter writes the appointment history and its summary into a workbook.
type Exporter struct {
	writer func() ExcelWriter
	logger *zerolog.Logger
}

// NewExporter creates an exporter with the default excelize writer.
func NewExporter(logger *zerolog.Logger) *Exporter {
	return &Exporter{writer: NewExcelizeWriter, logger: logger}
}

// NewExporterWithWriter creates an exporter with a custom writer factory.
func NewExporterWithWriter(writer func() ExcelWriter, logger *zerolog.Logger) *Exporter {
	return &Exporter{writer: writer, logger: logger}
}

// Export writes one workbook with an Appointments sheet and a Summary sheet.
// Each run gets an id so its log lines can be correlated.
func (e *Exporter) Export(path string, appts []models.Appointment) error {
	runID := uuid.New().String()
	e.logger.Info().Str("run_id", runID).Int("records", len(appts)).Str("path", path).Msg("exporting report")

	w := e.writer()
	defer w.Close()

	if err := e.writeAppointments(w, appts); err != nil {
		return fmt.Errorf("write appointments sheet: %w", err)
	}
	if err := e.writeSummary(w, Build(appts)); err != nil {
		return fmt.Errorf("write summary sheet: %w", err)
	}

	if err := w.SaveToFile(path); err != nil {
		e.logger.Error().Str("run_id", runID).Err(err).Msg("report export failed")
		return err
	}

	e.logger.Info().Str("run_id", runID).Msg("report export complete")
	return nil
}

func (e *Exporter) writeAppointments(w ExcelWriter, appts []models.Appointment) error {
	if err := w.AddSheet("Appointments"); err != nil {
		return err
	}
	if err := w.WriteHeader([]string{
		"ID", "Booked By", "Date", "Time", "With", "Client Name", "Reason",
		"Status", "Duration (min)", "Priority", "Location", "Notes", "Created",
	}); err != nil {
		return err
	}

	for _, a := range appts {
		if err := w.WriteRow([]interface{}{
			a.ID, a.BookedBy, a.Date, a.Time, a.WithWhom, a.ClientName, a.Reason,
			string(a.Status), a.DurationMinutes, string(a.Priority), a.Location, a.Notes,
			a.CreatedAt.Format(storage.CreatedDateLayout),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writeSummary(w ExcelWriter, s Summary) error {
	if err := w.AddSheet("Summary"); err != nil {
		return err
	}
	if err := w.WriteHeader([]string{"Metric", "Value"}); err != nil {
		return err
	}

	if err := w.WriteRow([]interface{}{"Total appointments", s.Total}); err != nil {
		return err
	}
	for _, status := range []models.Status{models.StatusPending, models.StatusApproved, models.StatusRejected, models.StatusCancelled} {
		if err := w.WriteRow([]interface{}{"Status: " + string(status), s.ByStatus[status]}); err != nil {
			return err
		}
	}
	for _, priority := range []models.Priority{models.PriorityHigh, models.PriorityMedium, models.PriorityLow} {
		if err := w.WriteRow([]interface{}{"Priority: " + string(priority), s.ByPriority[priority]}); err != nil {
			return err
		}
	}
	for _, user := range s.BusiestUsers() {
		if err := w.WriteRow([]interface{}{"User: " + user, s.ByUser[user]}); err != nil {
			return err
		}
	}
	return nil
}
