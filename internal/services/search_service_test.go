package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kanban-board/internal/domain"
)

func sampleBoard() []domain.Task {
	return []domain.Task{
		{ID: "1", Title: "Fix login bug", Description: "SSO redirect loops", Column: domain.ColumnReview},
		{ID: "2", Title: "Write docs", Description: "", Column: domain.ColumnBacklog},
		{ID: "3", Title: "Ship release", Description: "tag and publish", Column: domain.ColumnReview},
		{ID: "4", Title: "Signup form", Description: "new users", Column: domain.ColumnInProgress},
		{ID: "5", Title: "Audit logs", Description: "check LOGIN events", Column: domain.ColumnReview},
	}
}

func TestSearchService_MatchesSearch(t *testing.T) {
	svc := NewSearchService()
	task := domain.Task{Title: "Fix login bug", Description: "users cannot sign in"}

	tests := []struct {
		name     string
		query    string
		expected bool
	}{
		{"empty query matches", "", true},
		{"case-insensitive title match", "LOGIN", true},
		{"description match", "cannot SIGN", true},
		{"no match", "signup", false},
		{"whitespace is significant", " bug ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, svc.MatchesSearch(task, tt.query))
		})
	}
}

func TestSearchService_FilterByColumn(t *testing.T) {
	svc := NewSearchService()
	tasks := sampleBoard()

	var ids []string
	for task := range svc.FilterByColumn(tasks, domain.ColumnReview, "") {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []string{"1", "3", "5"}, ids, "exactly the review tasks in original order")

	ids = nil
	for task := range svc.FilterByColumn(tasks, domain.ColumnReview, "login") {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []string{"1", "5"}, ids)

	ids = nil
	for task := range svc.FilterByColumn(tasks, domain.ColumnDone, "") {
		ids = append(ids, task.ID)
	}
	assert.Empty(t, ids)
}

func TestSearchService_FilterByColumnStopsEarly(t *testing.T) {
	svc := NewSearchService()

	var seen int
	for range svc.FilterByColumn(sampleBoard(), domain.ColumnReview, "") {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestSearchService_Search(t *testing.T) {
	svc := NewSearchService()
	review := domain.ColumnReview

	tests := []struct {
		name     string
		criteria SearchCriteria
		expected []string
	}{
		{"no criteria", SearchCriteria{}, []string{"1", "2", "3", "4", "5"}},
		{"query only", SearchCriteria{Query: "log"}, []string{"1", "5"}},
		{"column only", SearchCriteria{Column: &review}, []string{"1", "3", "5"}},
		{"query and column", SearchCriteria{Query: "publish", Column: &review}, []string{"3"}},
		{"nothing matches", SearchCriteria{Query: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := []string{}
			for _, task := range svc.Search(sampleBoard(), tt.criteria) {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestSearchService_GroupByColumn(t *testing.T) {
	svc := NewSearchService()

	groups := svc.GroupByColumn(sampleBoard(), "")
	assert.Len(t, groups, 4)
	assert.Equal(t, domain.ColumnBacklog, groups[0].Column)
	assert.Len(t, groups[0].Tasks, 1)
	assert.Len(t, groups[1].Tasks, 1)
	assert.Len(t, groups[2].Tasks, 3)
	assert.NotNil(t, groups[3].Tasks)
	assert.Empty(t, groups[3].Tasks)

	filtered := svc.GroupByColumn(sampleBoard(), "users")
	assert.Len(t, filtered[1].Tasks, 1)
	assert.Empty(t, filtered[2].Tasks)
}
