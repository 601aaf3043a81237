package catalog

import (
	"context"
	"fmt"
	"koos-service/internal/app/contracts"
	"koos-service/internal/pkg/constvars"
	"koos-service/internal/pkg/exceptions"
	"koos-service/internal/pkg/questionnaires"
	"koos-service/internal/pkg/scoring"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// questionnaireDocument is one questionnaire stored in Mongo. Sections and
// bands are arrays so their order survives the round trip.
type questionnaireDocument struct {
	ID             string            `bson:"_id"`
	Name           string            `bson:"name"`
	Sections       []sectionDocument `bson:"sections"`
	Interpretation []bandDocument    `bson:"interpretation"`
}

type sectionDocument struct {
	Name      string   `bson:"name"`
	Questions []string `bson:"questions"`
}

type bandDocument struct {
	Low         float64 `bson:"low"`
	High        float64 `bson:"high"`
	Description string  `bson:"description"`
}

type mongoSource struct {
	collection *mongo.Collection
}

func NewMongoSource(db *mongo.Database, collectionName string) contracts.CatalogSource {
	return &mongoSource{collection: db.Collection(collectionName)}
}

func (s *mongoSource) Name() string {
	return fmt.Sprintf("%s:%s", constvars.CatalogSourceMongo, s.collection.Name())
}

func (s *mongoSource) Load(ctx context.Context) (*questionnaires.Catalog, error) {
	cursor, err := s.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var documents []questionnaireDocument
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}

	catalog, err := documentsToCatalog(documents)
	if err != nil {
		return nil, exceptions.ErrCatalogLoad(err, s.Name())
	}
	return catalog, nil
}

func documentsToCatalog(documents []questionnaireDocument) (*questionnaires.Catalog, error) {
	entries := make(map[string]*scoring.Config, len(documents))
	for _, document := range documents {
		// absent fields stay nil so validation rejects them as it does for YAML
		config := &scoring.Config{Name: document.Name}
		if document.Sections != nil {
			config.Sections = make([]scoring.Section, 0, len(document.Sections))
		}
		if document.Interpretation != nil {
			config.Interpretation = make(scoring.Bands, 0, len(document.Interpretation))
		}
		for _, section := range document.Sections {
			questions := section.Questions
			if questions == nil {
				questions = []string{}
			}
			config.Sections = append(config.Sections, scoring.Section{Name: section.Name, Questions: questions})
		}
		for _, band := range document.Interpretation {
			config.Interpretation = append(config.Interpretation, scoring.Band{
				Low:         band.Low,
				High:        band.High,
				Description: band.Description,
			})
		}
		if _, exists := entries[document.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate questionnaire id %q", questionnaires.ErrInvalidCatalog, document.ID)
		}
		entries[document.ID] = config
	}
	return questionnaires.NewCatalog(entries)
}
