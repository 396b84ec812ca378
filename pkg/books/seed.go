package books

import (
	"context"
	"strings"
	"time"

	"github.com/TanzidTowfiq/Library-Management-Software/pkg/models"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

// CatalogEntry is one book in a seed catalog file.
type CatalogEntry struct {
	Title  string `koanf:"title"`
	Author string `koanf:"author"`
}

// LoadCatalogFile reads a YAML file of the form:
//
//	books:
//	  - title: Dune
//	    author: Frank Herbert
func LoadCatalogFile(path string) ([]CatalogEntry, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "failed to load catalog file %s", path)
	}

	var entries []CatalogEntry
	if err := k.Unmarshal("books", &entries); err != nil {
		return nil, errors.WithStack(err)
	}

	for i, entry := range entries {
		entries[i].Title = strings.TrimSpace(entry.Title)
		entries[i].Author = strings.TrimSpace(entry.Author)
		if entries[i].Title == "" || entries[i].Author == "" {
			return nil, errors.Errorf("catalog entry %d: title and author are required", i+1)
		}
	}

	return entries, nil
}

// SeedCatalog inserts the entries as available books when the catalog is
// empty. It returns the number of books created.
func (svc *Service) SeedCatalog(ctx context.Context, entries []CatalogEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	count, err := svc.CountBooks(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	now := time.Now()
	books := make([]*models.Book, 0, len(entries))
	for _, entry := range entries {
		books = append(books, &models.Book{
			ID:        models.NewID(),
			CreatedAt: now,
			Title:     entry.Title,
			Author:    entry.Author,
		})
	}

	_, err = svc.db.NewInsert().Model(&books).Exec(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("catalog seeded", logger.Data{"count": len(books)})
	return len(books), nil
}
