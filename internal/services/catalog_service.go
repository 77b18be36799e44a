package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"

	"github.com/baharkarakas/ypa-web/internal/models"
)

var ErrUnknownCollection = errors.New("unknown collection")

var collections = map[string]bool{
	models.CollectionMenu:    true,
	models.CollectionEvents:  true,
	models.CollectionBanners: true,
	models.CollectionBlog:    true,
	models.CollectionMedia:   true,
	models.CollectionReviews: true,
}

// IsCollection reports whether name is a catalog collection the backend serves.
func IsCollection(name string) bool { return collections[name] }

// CatalogService relays catalog reads. Records pass through untouched.
type CatalogService struct {
	remote Remote
}

func NewCatalogService(r Remote) *CatalogService { return &CatalogService{remote: r} }

// Collection lists one collection. token may be empty for public reads.
func (s *CatalogService) Collection(ctx context.Context, token, name string) (json.RawMessage, error) {
	if !IsCollection(name) {
		return nil, ErrUnknownCollection
	}
	var out json.RawMessage
	if err := s.remote.Get(ctx, "/"+name, token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CatalogService) MenuItem(ctx context.Context, id string) (models.MenuItem, error) {
	var item models.MenuItem
	err := s.remote.Get(ctx, "/menu/"+url.PathEscape(id), "", &item)
	return item, err
}
