package models

import "strings"

// ExportFormat is the file encoding requested for a download.
type ExportFormat string

const (
	ExportFormatCSV   ExportFormat = "csv"
	ExportFormatExcel ExportFormat = "excel"
	ExportFormatPDF   ExportFormat = "pdf"
)

// ParseExportFormat resolves a path parameter into a supported format.
func ParseExportFormat(raw string) (ExportFormat, bool) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case ExportFormatCSV, ExportFormatExcel, ExportFormatPDF:
		return f, true
	default:
		return "", false
	}
}

// Extension returns the file extension without the dot.
func (f ExportFormat) Extension() string {
	switch f {
	case ExportFormatExcel:
		return "xlsx"
	default:
		return string(f)
	}
}

// ContentType returns the MIME type served with the download.
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportFormatCSV:
		return "text/csv"
	case ExportFormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ExportFormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// ExportKind names the dataset behind a download.
type ExportKind string

const (
	ExportWeekly         ExportKind = "weekly"
	ExportPaymentsDue    ExportKind = "payments"
	ExportTeacherTotals  ExportKind = "totals"
	ExportStudents       ExportKind = "students"
	ExportPaymentRecords ExportKind = "payment_records"
	ExportAttendance     ExportKind = "attendance"
)
