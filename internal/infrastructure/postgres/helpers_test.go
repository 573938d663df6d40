package postgres_test

import (
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-articulos-api/internal/domain/repository"
)

func uuidString() string { return uuid.New().String() }

func upper(s string) string { return strings.ToUpper(s) }

func repositoryFilter(articleID string) repository.MovementFilter {
	return repository.MovementFilter{ArticleID: articleID, Limit: 100}
}
