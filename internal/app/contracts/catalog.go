package contracts

import (
	"context"
	"koos-service/internal/pkg/questionnaires"
	"koos-service/internal/pkg/scoring"
)

// CatalogSource loads a complete questionnaire catalog from one backend.
type CatalogSource interface {
	Name() string
	Load(ctx context.Context) (*questionnaires.Catalog, error)
}

// CatalogProvider serves the current catalog and swaps it on reload.
type CatalogProvider interface {
	Get(questionnaireID string) (*scoring.Config, bool)
	List() []string
	Current() *questionnaires.Catalog
	Reload(ctx context.Context) (*questionnaires.Catalog, error)
	SourceName() string
}
