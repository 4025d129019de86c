package services

import (
	"io"
	"iter"

	"kanban-board/internal/domain"
)

// SearchCriteria narrows a task listing. A nil Column matches every column.
type SearchCriteria struct {
	Query  string         `json:"query,omitempty"`
	Column *domain.Column `json:"column,omitempty"`
}

// ColumnGroup is one column of the board with the tasks it shows
type ColumnGroup struct {
	Column domain.Column `json:"column"`
	Tasks  []domain.Task `json:"tasks"`
}

// ColumnCount pairs a column with the number of tasks in it
type ColumnCount struct {
	Column domain.Column `json:"column"`
	Count  int           `json:"count"`
}

// BoardSummary counts tasks per column in board order
type BoardSummary struct {
	Total   int           `json:"total"`
	Columns []ColumnCount `json:"columns"`
}

// ExportFormat selects the encoding used by ReportingService.Export
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
)

// SearchService handles free-text search and column filtering
type SearchService interface {
	// MatchesSearch reports whether the query is empty or a case-insensitive
	// substring of the task's title or description.
	MatchesSearch(task domain.Task, query string) bool
	// FilterByColumn lazily yields the tasks in column that match query,
	// preserving their relative order.
	FilterByColumn(tasks []domain.Task, column domain.Column, query string) iter.Seq[domain.Task]
	Search(tasks []domain.Task, criteria SearchCriteria) []domain.Task
	// GroupByColumn returns one group per board column, in board order.
	GroupByColumn(tasks []domain.Task, query string) []ColumnGroup
}

// ReportingService summarizes and exports the board
type ReportingService interface {
	Summarize(tasks []domain.Task) *BoardSummary
	Export(w io.Writer, tasks []domain.Task, format ExportFormat) error
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	SearchService    SearchService
	ReportingService ReportingService
}

// NewServiceContainer wires the default service implementations
func NewServiceContainer() *ServiceContainer {
	return &ServiceContainer{
		SearchService:    NewSearchService(),
		ReportingService: NewReportingService(),
	}
}
