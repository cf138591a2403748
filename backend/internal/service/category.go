package service

import (
	"context"

	"github.com/kopdar-dev/kopdar/shared/domain"
)

type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type Category struct {
	storage CategoryStorage
}

type CategoryStorage interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

func NewCategory(storage CategoryStorage) CategoryService {
	return &Category{storage}
}

func (c *Category) List(ctx context.Context) ([]domain.Category, error) {
	categories, err := c.storage.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}
