package menu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyFile = errors.New("menu file is empty")
	ErrNoItems   = errors.New("no priced items found in menu")
)

// Storage archives the original upload. Optional.
type Storage interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// ImportObserver is told the outcome of each import. Optional.
type ImportObserver interface {
	ObserveImport(ok bool)
}

type Service struct {
	repo      Repository
	storage   Storage
	extractor TextExtractor
	observer  ImportObserver
	log       *slog.Logger
}

func NewService(
	repo Repository,
	storage Storage,
	extractor TextExtractor,
	observer ImportObserver,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		repo:      repo,
		storage:   storage,
		extractor: extractor,
		observer:  observer,
		log:       log,
	}
}

// ImportResult is what an upload produced.
type ImportResult struct {
	Upload Upload `json:"upload"`
	Items  []Item `json:"items"`
}

// --------------------------------------------------
// Import menu file (replaces the whole menu)
// --------------------------------------------------
func (s *Service) ImportMenu(
	ctx context.Context,
	restaurantID string,
	filename string,
	body []byte,
) (*ImportResult, error) {

	if restaurantID == "" {
		return nil, errors.New("restaurant id is required")
	}
	if err := ValidateFileExtension(filename); err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, ErrEmptyFile
	}

	ext := strings.ToLower(filepath.Ext(filename))
	upload := Upload{
		RestaurantID: restaurantID,
		Filename:     filename,
		ObjectKey: fmt.Sprintf(
			"menus/%s/%s%s",
			restaurantID,
			uuid.New().String(),
			ext,
		),
	}

	if s.storage != nil {
		if _, err := s.storage.Put(ctx, upload.ObjectKey, body, contentType(ext)); err != nil {
			s.observe(false)
			return nil, err
		}
	}

	raw, err := s.extractor.Extract(ctx, filename, body)
	if err != nil {
		return nil, s.fail(ctx, &upload, err)
	}

	items := ParseItems(CleanText(raw))
	if len(items) == 0 {
		return nil, s.fail(ctx, &upload, ErrNoItems)
	}

	if err := s.repo.ReplaceItems(ctx, restaurantID, items); err != nil {
		return nil, s.fail(ctx, &upload, err)
	}

	upload.Status = UploadParsed
	upload.ItemCount = len(items)
	if err := s.repo.RecordUpload(ctx, &upload); err != nil {
		// the menu itself is already replaced
		s.log.Warn("menu upload not recorded", "restaurant_id", restaurantID, "err", err)
	}

	s.observe(true)
	s.log.Info("menu imported",
		"restaurant_id", restaurantID,
		"filename", filename,
		"items", len(items),
	)

	return &ImportResult{Upload: upload, Items: items}, nil
}

func (s *Service) ListItems(ctx context.Context, restaurantID string) ([]Item, error) {
	return s.repo.ListItems(ctx, restaurantID)
}

func (s *Service) fail(ctx context.Context, u *Upload, cause error) error {
	s.observe(false)

	u.Status = UploadFailed
	u.Reason = cause.Error()
	if err := s.repo.RecordUpload(ctx, u); err != nil {
		s.log.Warn("menu upload not recorded", "restaurant_id", u.RestaurantID, "err", err)
	}

	s.log.Error("menu import failed",
		"restaurant_id", u.RestaurantID,
		"filename", u.Filename,
		"err", cause,
	)
	return cause
}

func (s *Service) observe(ok bool) {
	if s.observer != nil {
		s.observer.ObserveImport(ok)
	}
}

func contentType(ext string) string {
	if ext == ".pdf" {
		return "application/pdf"
	}
	return "text/plain; charset=utf-8"
}
