package services

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/bytedance/sonic"

	"kanban-board/internal/domain"
	"kanban-board/internal/errors"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct{}

// NewReportingService creates a new ReportingService instance
func NewReportingService() ReportingService {
	return &reportingServiceImpl{}
}

func (r *reportingServiceImpl) Summarize(tasks []domain.Task) *BoardSummary {
	counts := make(map[domain.Column]int)
	for _, task := range tasks {
		counts[task.Column]++
	}

	summary := &BoardSummary{Total: len(tasks)}
	for _, column := range domain.Columns() {
		summary.Columns = append(summary.Columns, ColumnCount{Column: column, Count: counts[column]})
	}
	return summary
}

func (r *reportingServiceImpl) Export(w io.Writer, tasks []domain.Task, format ExportFormat) error {
	switch format {
	case ExportCSV:
		return r.exportCSV(w, tasks)
	case ExportJSON:
		return r.exportJSON(w, tasks)
	default:
		return errors.NewInvalidInputError("format", string(format), "must be one of csv, json")
	}
}

func (r *reportingServiceImpl) exportCSV(w io.Writer, tasks []domain.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "title", "description", "column"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, task := range tasks {
		if err := cw.Write([]string{task.ID, task.Title, task.Description, string(task.Column)}); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (r *reportingServiceImpl) exportJSON(w io.Writer, tasks []domain.Task) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	data, err := sonic.ConfigStd.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
