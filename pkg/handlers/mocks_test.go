package handlers

import (
	"context"

	"github.com/askdata-labs/askdata-engine/pkg/models"
	"github.com/askdata-labs/askdata-engine/pkg/sqlgen"
)

type fakeStore struct {
	added       []models.Chunk
	addErr      error
	items       []models.UploadedItem
	itemsErr    error
	deletedKeys []string
	deleteErr   error
}

func (f *fakeStore) AddDocuments(_ context.Context, chunks []models.Chunk) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, chunks...)
	return nil
}

func (f *fakeStore) UploadedItems(context.Context) ([]models.UploadedItem, error) {
	return f.items, f.itemsErr
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedKeys = append(f.deletedKeys, key)
	return nil
}

type fakeExtractor struct {
	chunks   []models.Chunk
	err      error
	lastName string
	lastType string
}

func (f *fakeExtractor) Extract(_ []byte, name, mediaType string) ([]models.Chunk, error) {
	f.lastName = name
	f.lastType = mediaType
	return f.chunks, f.err
}

type fakeScraper struct {
	scraped  []*models.ScrapedContent
	chunks   []models.Chunk
	lastURLs []string
}

func (f *fakeScraper) ScrapeMany(_ context.Context, urls []string) []*models.ScrapedContent {
	f.lastURLs = urls
	return f.scraped
}

func (f *fakeScraper) ProcessMany([]*models.ScrapedContent) []models.Chunk {
	return f.chunks
}

type fakeChatService struct {
	reply       string
	err         error
	lastMessage string
	lastKeys    []string
	lastMulti   bool
}

func (f *fakeChatService) Chat(_ context.Context, message string, keys []string, multi bool) (string, error) {
	f.lastMessage = message
	f.lastKeys = keys
	f.lastMulti = multi
	return f.reply, f.err
}

type fakeQueryService struct {
	result  *models.GeneratedQuery
	err     error
	lastReq sqlgen.Request
}

func (f *fakeQueryService) Generate(_ context.Context, req sqlgen.Request) (*models.GeneratedQuery, error) {
	f.lastReq = req
	return f.result, f.err
}

type fakeTester struct {
	pingErr error
}

func (f *fakeTester) Ping(context.Context) error { return f.pingErr }
func (f *fakeTester) Close() error               { return nil }
