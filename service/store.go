package service

import (
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/Unicus-11/quick-quill-clarity/model"
)

// ErrDocumentNotFound is returned when a doc_id has no stored document
var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore is an in-memory store for analyzed documents. Entries live
// for the remaining lifetime of the process; there is no expiry. An optional
// cap on stored documents can be configured, 0 keeps everything.
type DocumentStore struct {
	documents    map[string]*model.AnalyzedDocument
	mu           sync.RWMutex
	maxDocuments int
}

// NewDocumentStore creates a store. maxDocuments <= 0 means unlimited.
func NewDocumentStore(maxDocuments int) *DocumentStore {
	if maxDocuments < 0 {
		maxDocuments = 0
	}
	return &DocumentStore{
		documents:    make(map[string]*model.AnalyzedDocument),
		maxDocuments: maxDocuments,
	}
}

func (s *DocumentStore) Save(doc *model.AnalyzedDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents[doc.ID] = doc

	s.cleanupIfNeeded()
}

// Get returns the stored document or ErrDocumentNotFound
func (s *DocumentStore) Get(id string) (*model.AnalyzedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[id]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

// GetAll returns every stored document, newest first
func (s *DocumentStore) GetAll() []*model.AnalyzedDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.AnalyzedDocument, 0, len(s.documents))
	for _, doc := range s.documents {
		result = append(result, doc)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (s *DocumentStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, id)
}

// Count returns the number of documents in the store
func (s *DocumentStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

// cleanupIfNeeded removes the oldest documents when the store exceeds
// maxDocuments. Must be called with the lock held.
func (s *DocumentStore) cleanupIfNeeded() {
	if s.maxDocuments <= 0 {
		return
	}
	if len(s.documents) <= s.maxDocuments {
		return
	}

	docs := make([]*model.AnalyzedDocument, 0, len(s.documents))
	for _, doc := range s.documents {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})

	removeCount := len(docs) - s.maxDocuments
	for i := 0; i < removeCount; i++ {
		slog.Info("auto-cleaning old document",
			"doc_id", docs[i].ID,
			"created_at", docs[i].CreatedAt,
		)
		delete(s.documents, docs[i].ID)
	}
}
