// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"errors"
	"io"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/bookcatalog/internal/core/book"
	"github.com/taibuivan/bookcatalog/internal/core/image"
	"github.com/taibuivan/bookcatalog/internal/core/reference"
	"github.com/taibuivan/bookcatalog/internal/platform/apperr"
	"github.com/taibuivan/bookcatalog/internal/platform/reviews"
	"github.com/taibuivan/bookcatalog/pkg/pointer"
)

// # Book Repository

// memoryRepository is an in-memory [book.Repository].
type memoryRepository struct {
	mu         sync.Mutex
	books      map[string]*book.Book
	sequence   int
	failCreate error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{books: map[string]*book.Book{}}
}

func clone(original *book.Book) *book.Book {
	copied := *original
	copied.ImageIDs = slices.Clone(original.ImageIDs)
	copied.RatingDistribution = book.Distribution{}
	for stars, count := range original.RatingDistribution {
		copied.RatingDistribution[stars] = count
	}
	return &copied
}

func (repo *memoryRepository) List(ctx context.Context, filter book.Filter, limit, offset int) ([]*book.Book, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	matches := []*book.Book{}
	for _, stored := range repo.books {
		if stored.Status != filter.Status {
			continue
		}
		if filter.Keyword != "" && !strings.Contains(strings.ToLower(stored.Title), strings.ToLower(filter.Keyword)) {
			continue
		}
		if filter.Available != nil && stored.Availability != *filter.Available {
			continue
		}
		matches = append(matches, clone(stored))
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.After(matches[j].CreatedAt) })

	if offset >= len(matches) {
		return []*book.Book{}, len(matches), nil
	}
	return matches[offset:min(offset+limit, len(matches))], len(matches), nil
}

func (repo *memoryRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, ok := repo.books[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	return clone(stored), nil
}

func (repo *memoryRepository) FindByIDs(ctx context.Context, ids []string, status book.Status) ([]*book.Book, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	found := []*book.Book{}
	for _, id := range ids {
		if stored, ok := repo.books[id]; ok && stored.Status == status {
			found = append(found, clone(stored))
		}
	}
	return found, nil
}

func (repo *memoryRepository) TitleTaken(ctx context.Context, title, excludeID string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for id, stored := range repo.books {
		if stored.Title == title && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (repo *memoryRepository) Create(ctx context.Context, created *book.Book) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.failCreate != nil {
		return repo.failCreate
	}

	repo.sequence++
	created.CreatedAt = time.Date(2026, 1, 1, 0, 0, repo.sequence, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	repo.books[created.ID] = clone(created)
	return nil
}

func (repo *memoryRepository) Update(ctx context.Context, id string, changes book.Changes) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, ok := repo.books[id]
	if !ok {
		return apperr.NotFound("Book")
	}

	if changes.Title != nil {
		stored.Title = *changes.Title
	}
	if value := changes.TitleNoAccent(); value != nil {
		stored.TitleNoAccent = *value
	}
	if changes.Description != nil {
		stored.Description = *changes.Description
	}
	if changes.Price != nil {
		stored.Price = *changes.Price
	}
	if changes.CategoryID != nil {
		stored.CategoryID = *changes.CategoryID
	}
	if changes.PublisherID != nil {
		stored.PublisherID = *changes.PublisherID
	}
	if changes.AuthorID != nil {
		stored.AuthorID = *changes.AuthorID
	}
	if changes.StockCount != nil {
		stored.StockCount = *changes.StockCount
	}
	if value := changes.Availability(); value != nil {
		stored.Availability = *value
	}
	if changes.ImageIDs != nil {
		stored.ImageIDs = slices.Clone(changes.ImageIDs)
	}
	stored.UpdatedAt = stored.UpdatedAt.Add(time.Second)
	return nil
}

func (repo *memoryRepository) SetStatus(ctx context.Context, id string, to book.Status, from []book.Status) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, ok := repo.books[id]
	if !ok || !slices.Contains(from, stored.Status) {
		return apperr.NotFound("Book")
	}
	stored.Status = to
	stored.UpdatedAt = stored.UpdatedAt.Add(time.Second)
	return nil
}

func (repo *memoryRepository) IncrementSales(ctx context.Context, id string, quantity int) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, ok := repo.books[id]
	if !ok {
		return apperr.NotFound("Book")
	}
	stored.SalesCount += quantity
	return nil
}

func (repo *memoryRepository) SaveRating(ctx context.Context, id string, summary book.RatingSummary) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, ok := repo.books[id]
	if !ok {
		return apperr.NotFound("Book")
	}
	stored.RatingSummary = summary
	return nil
}

// # Images

// fileStore is an in-memory [storage.Store].
type fileStore struct {
	mu    sync.Mutex
	files map[string]bool
	saved int
}

func (store *fileStore) Save(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	store.saved++
	path := "uploads/images/" + string(rune('a'+store.saved)) + "-" + filename
	store.files[path] = true
	return path, nil
}

func (store *fileStore) Delete(ctx context.Context, path string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.files, path)
	return nil
}

func (store *fileStore) count() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.files)
}

// imageRecords is an in-memory [image.Repository].
type imageRecords struct {
	mu     sync.Mutex
	images map[string]*image.Image
}

func (records *imageRecords) CreateMany(ctx context.Context, images []*image.Image) error {
	records.mu.Lock()
	defer records.mu.Unlock()

	for _, img := range images {
		records.images[img.ID] = img
	}
	return nil
}

func (records *imageRecords) FindByIDs(ctx context.Context, ids []string) ([]*image.Image, error) {
	records.mu.Lock()
	defer records.mu.Unlock()

	found := []*image.Image{}
	for _, id := range ids {
		if img, ok := records.images[id]; ok {
			found = append(found, img)
		}
	}
	return found, nil
}

func (records *imageRecords) DeleteByIDs(ctx context.Context, ids []string) error {
	records.mu.Lock()
	defer records.mu.Unlock()

	for _, id := range ids {
		delete(records.images, id)
	}
	return nil
}

func (records *imageRecords) has(id string) bool {
	records.mu.Lock()
	defer records.mu.Unlock()
	_, ok := records.images[id]
	return ok
}

// # Collaborators

// referenceSet answers existence checks from a fixed set of "kind:id" keys.
type referenceSet map[string]bool

func (set referenceSet) Exists(ctx context.Context, kind reference.Kind, id string) (bool, error) {
	return set[kind.Key+":"+id], nil
}

// ratingSource is a fake review service summary endpoint.
type ratingSource struct {
	mu        sync.Mutex
	summary   reviews.Summary
	err       error
	forgotten []string
}

func (source *ratingSource) AverageRating(ctx context.Context, bookID string) (reviews.Summary, error) {
	if source.err != nil {
		return reviews.Summary{}, source.err
	}
	return source.summary, nil
}

func (source *ratingSource) Forget(ctx context.Context, bookID string) {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.forgotten = append(source.forgotten, bookID)
}

// reviewLookup is a fake review store keyed by review id.
type reviewLookup struct {
	ratings map[string]int
	err     error
}

func (lookup *reviewLookup) PreviousRating(ctx context.Context, reviewID string) (int, bool, error) {
	if lookup.err != nil {
		return 0, false, lookup.err
	}
	rating, ok := lookup.ratings[reviewID]
	return rating, ok, nil
}

// # Fixture

type fixture struct {
	repo    *memoryRepository
	files   *fileStore
	records *imageRecords
	ratings *ratingSource
	reviews *reviewLookup
	service *book.Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:    newMemoryRepository(),
		files:   &fileStore{files: map[string]bool{}},
		records: &imageRecords{images: map[string]*image.Image{}},
		ratings: &ratingSource{summary: reviews.Summary{AverageRating: 4.5, TotalReviews: 12}},
		reviews: &reviewLookup{ratings: map[string]int{}},
	}

	references := referenceSet{
		"category:" + categoryID:   true,
		"publisher:" + publisherID: true,
		"author:" + authorID:       true,
	}

	f.service = book.NewService(f.repo, references, image.NewService(f.records, f.files), f.ratings, f.reviews)
	return f
}

func uploads(names ...string) []image.File {
	files := make([]image.File, 0, len(names))
	for _, name := range names {
		files = append(files, image.File{Filename: name, ContentType: "image/png", Body: strings.NewReader(name)})
	}
	return files
}

func newInput(title string, stock int, images ...string) book.Input {
	price := 120000.0
	return book.Input{
		Title:       &title,
		Price:       &price,
		CategoryID:  pointer.To(categoryID),
		PublisherID: pointer.To(publisherID),
		AuthorID:    pointer.To(authorID),
		StockCount:  &stock,
		Images:      uploads(images...),
	}
}

var errConnectionReset = errors.New("connection reset by peer")
