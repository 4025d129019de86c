package services

import (
	"iter"
	"strings"

	"kanban-board/internal/domain"
)

// searchServiceImpl implements the SearchService interface
type searchServiceImpl struct{}

// NewSearchService creates a new SearchService instance
func NewSearchService() SearchService {
	return &searchServiceImpl{}
}

func (s *searchServiceImpl) MatchesSearch(task domain.Task, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(task.Title), q) ||
		strings.Contains(strings.ToLower(task.Description), q)
}

func (s *searchServiceImpl) FilterByColumn(tasks []domain.Task, column domain.Column, query string) iter.Seq[domain.Task] {
	return func(yield func(domain.Task) bool) {
		for _, task := range tasks {
			if task.Column != column || !s.MatchesSearch(task, query) {
				continue
			}
			if !yield(task) {
				return
			}
		}
	}
}

func (s *searchServiceImpl) Search(tasks []domain.Task, criteria SearchCriteria) []domain.Task {
	results := make([]domain.Task, 0)
	for _, task := range tasks {
		if criteria.Column != nil && task.Column != *criteria.Column {
			continue
		}
		if s.MatchesSearch(task, criteria.Query) {
			results = append(results, task)
		}
	}
	return results
}

func (s *searchServiceImpl) GroupByColumn(tasks []domain.Task, query string) []ColumnGroup {
	columns := domain.Columns()
	groups := make([]ColumnGroup, 0, len(columns))
	for _, column := range columns {
		group := ColumnGroup{Column: column, Tasks: make([]domain.Task, 0)}
		for task := range s.FilterByColumn(tasks, column, query) {
			group.Tasks = append(group.Tasks, task)
		}
		groups = append(groups, group)
	}
	return groups
}
