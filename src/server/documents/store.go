package documents

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.lsp.dev/protocol"

	"oreore-lsp/src/internal/common"
	"oreore-lsp/src/internal/errors"
	"oreore-lsp/src/utils"
)

// Store tracks the documents the client has open. Documents that are not
// open are read from disk on demand and not cached.
type Store struct {
	mu   sync.RWMutex
	docs map[protocol.DocumentURI]*Document

	languageID string
	extensions map[string]bool
}

// NewStore creates a store that tags files with extensions as languageID
// when they have to be read from disk
func NewStore(languageID string, extensions []string) *Store {
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = true
	}
	return &Store{
		docs:       make(map[protocol.DocumentURI]*Document),
		languageID: languageID,
		extensions: exts,
	}
}

// DetectLanguage detects the language of a file URI from its extension
func (s *Store) DetectLanguage(uri string) string {
	path := utils.URIToFilePath(uri)
	ext := strings.ToLower(filepath.Ext(path))
	if s.extensions[ext] {
		return s.languageID
	}
	return ""
}

// Open records a textDocument/didOpen
func (s *Store) Open(uri protocol.DocumentURI, languageID string, version int32, text string) *Document {
	doc := NewDocument(uri, languageID, version, text)

	s.mu.Lock()
	s.docs[uri] = doc
	s.mu.Unlock()

	common.LSPLogger.Debug("Opened %s (language=%s, version=%d)", uri, languageID, version)
	return doc
}

// Change replaces the content of an open document (full sync)
func (s *Store) Change(uri protocol.DocumentURI, version int32, text string) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.docs[uri]
	if !ok {
		return nil, errors.NewDocumentNotFoundError(string(uri), fmt.Errorf("didChange for a document that is not open"))
	}
	doc := NewDocument(uri, prev.LanguageID, version, text)
	s.docs[uri] = doc
	return doc, nil
}

// Close forgets an open document
func (s *Store) Close(uri protocol.DocumentURI) {
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()

	common.LSPLogger.Debug("Closed %s", uri)
}

// Get returns the open document for uri or reads it from disk
func (s *Store) Get(uri protocol.DocumentURI) (*Document, error) {
	s.mu.RLock()
	doc, ok := s.docs[uri]
	s.mu.RUnlock()
	if ok {
		return doc, nil
	}

	if !utils.IsFileURI(string(uri)) {
		return nil, errors.NewDocumentNotFoundError(string(uri), nil)
	}

	content, err := os.ReadFile(utils.URIToFilePath(string(uri)))
	if err != nil {
		return nil, errors.NewDocumentNotFoundError(string(uri), err)
	}
	return NewDocument(uri, s.DetectLanguage(string(uri)), 0, string(content)), nil
}

// OpenURIs lists open documents in a stable order
func (s *Store) OpenURIs() []protocol.DocumentURI {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uris := make([]protocol.DocumentURI, 0, len(s.docs))
	for uri := range s.docs {
		uris = append(uris, uri)
	}
	sort.Slice(uris, func(i, j int) bool { return uris[i] < uris[j] })
	return uris
}

// ExtractURI pulls a document URI out of a command argument. Accepted
// shapes are a bare string, {"uri": ...} and {"textDocument": {"uri": ...}}.
func ExtractURI(arg interface{}) (protocol.DocumentURI, error) {
	switch v := arg.(type) {
	case nil:
		return "", common.NoParametersError()
	case string:
		if v == "" {
			return "", common.ParameterValidationError("uri", "URI cannot be empty")
		}
		return protocol.DocumentURI(v), nil
	case protocol.DocumentURI:
		return v, nil
	case protocol.TextDocumentIdentifier:
		return v.URI, nil
	case map[string]interface{}:
		if textDoc, ok := v["textDocument"].(map[string]interface{}); ok {
			return ExtractURI(textDoc)
		}
		if uri, ok := v["uri"].(string); ok {
			return ExtractURI(uri)
		}
	}
	return "", common.ParameterValidationError("uri", fmt.Sprintf("no URI found in %T argument", arg))
}
