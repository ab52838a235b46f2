package applicationController

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"recruiter/internal/backend"
	. "recruiter/internal/models"
)

// ExportCSV streams every application for a template as CSV, one column per
// configured field. File-typed fields are skipped; their values are upload
// references, not text.
func (ac *ApplicationController) ExportCSV(ctx context.Context, applicationTypeID int, w io.Writer) error {
	log := ac.log.Function("ExportCSV")

	template, err := ac.templateRepo.GetByID(ctx, applicationTypeID)
	if err != nil {
		return err
	}
	if template == nil {
		return log.Error("template not found", "applicationTypeID", applicationTypeID)
	}

	applications, err := ac.applicationRepo.List(ctx, backend.Params{
		"applicationTypeId": applicationTypeID,
	})
	if err != nil {
		return err
	}

	columns := make([]FieldDefinition, 0, len(template.FormFields))
	for _, field := range template.FormFields {
		if field.FieldType == FieldTypeFile {
			continue
		}
		columns = append(columns, field)
	}

	writer := csv.NewWriter(w)

	header := []string{"ID", "Full Name", "Submitted"}
	for _, field := range columns {
		header = append(header, field.Label)
	}
	if err := writer.Write(header); err != nil {
		return log.Err("failed to write csv header", err)
	}

	for _, application := range applications {
		row := []string{
			application.ID,
			application.FullName,
			application.CreatedAt.Format(time.RFC3339),
		}
		for _, field := range columns {
			row = append(row, cellValue(application.CustomFields[field.FieldName]))
		}
		if err := writer.Write(row); err != nil {
			return log.Err("failed to write csv row", err, "applicationID", application.ID)
		}
	}

	writer.Flush()
	return writer.Error()
}

func cellValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
