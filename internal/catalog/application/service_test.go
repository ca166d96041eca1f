package application

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshatjain02/ecommerce-backend/internal/catalog/domain"
	"github.com/akshatjain02/ecommerce-backend/pkg/errs"
)

type fakeProducts struct {
	byID    map[int64]domain.Product
	byName  map[string]domain.Product
	deleted []int64
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{byID: map[int64]domain.Product{}, byName: map[string]domain.Product{}}
}

func (f *fakeProducts) Create(_ context.Context, p domain.Product) (domain.Product, error) {
	p.ID = int64(len(f.byID) + 1)
	f.byID[p.ID] = p
	f.byName[p.Name] = p
	return p, nil
}

func (f *fakeProducts) All(context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(f.byID))
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProducts) ByID(_ context.Context, id int64) (domain.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return domain.Product{}, errs.ErrNotFound
	}
	return p, nil
}

func (f *fakeProducts) ByName(_ context.Context, name string) (domain.Product, error) {
	p, ok := f.byName[name]
	if !ok {
		return domain.Product{}, errs.ErrNotFound
	}
	return p, nil
}

func (f *fakeProducts) Update(_ context.Context, p domain.Product) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, id int64) error {
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeCategories struct {
	byID    map[int64]domain.Category
	byName  map[string]domain.Category
	counts  map[int64]int64
	deleted []int64
}

func newFakeCategories() *fakeCategories {
	return &fakeCategories{
		byID:   map[int64]domain.Category{},
		byName: map[string]domain.Category{},
		counts: map[int64]int64{},
	}
}

func (f *fakeCategories) Create(_ context.Context, c domain.Category) (domain.Category, error) {
	c.ID = int64(len(f.byID) + 1)
	f.byID[c.ID] = c
	f.byName[c.Name] = c
	return c, nil
}

func (f *fakeCategories) All(context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(f.byID))
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategories) ByID(_ context.Context, id int64) (domain.Category, error) {
	c, ok := f.byID[id]
	if !ok {
		return domain.Category{}, errs.ErrNotFound
	}
	return c, nil
}

func (f *fakeCategories) ByName(_ context.Context, name string) (domain.Category, error) {
	c, ok := f.byName[name]
	if !ok {
		return domain.Category{}, errs.ErrNotFound
	}
	return c, nil
}

func (f *fakeCategories) Update(_ context.Context, c domain.Category) error {
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCategories) Delete(_ context.Context, id int64) error {
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCategories) ProductCount(_ context.Context, categoryID int64) (int64, error) {
	return f.counts[categoryID], nil
}

func newTestService(products *fakeProducts, categories *fakeCategories) *Service {
	return NewService(slog.New(slog.DiscardHandler), products, categories)
}

func TestCreateProductRejectsDuplicateName(t *testing.T) {
	products, categories := newFakeProducts(), newFakeCategories()
	cat, err := categories.Create(context.Background(), domain.Category{Name: "Tools"})
	require.NoError(t, err)
	svc := newTestService(products, categories)

	_, err = svc.CreateProduct(context.Background(), domain.Product{Name: "Widget", PriceCents: 999, CategoryID: cat.ID})
	require.NoError(t, err)

	_, err = svc.CreateProduct(context.Background(), domain.Product{Name: " Widget ", PriceCents: 500, CategoryID: cat.ID})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestCreateProductRejectsMissingCategory(t *testing.T) {
	svc := newTestService(newFakeProducts(), newFakeCategories())

	_, err := svc.CreateProduct(context.Background(), domain.Product{Name: "Widget", PriceCents: 999, CategoryID: 42})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestCreateProductRequiresName(t *testing.T) {
	svc := newTestService(newFakeProducts(), newFakeCategories())

	_, err := svc.CreateProduct(context.Background(), domain.Product{Name: "   "})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestUpdateProductUnknownID(t *testing.T) {
	svc := newTestService(newFakeProducts(), newFakeCategories())

	err := svc.UpdateProduct(context.Background(), domain.Product{ID: 42, Name: "Widget"})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteProductUnknownID(t *testing.T) {
	svc := newTestService(newFakeProducts(), newFakeCategories())

	err := svc.DeleteProduct(context.Background(), 42)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCreateCategoryRejectsDuplicateName(t *testing.T) {
	categories := newFakeCategories()
	svc := newTestService(newFakeProducts(), categories)

	_, err := svc.CreateCategory(context.Background(), domain.Category{Name: "Tools"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(context.Background(), domain.Category{Name: "Tools"})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestDeleteCategoryBlockedWhileProductsRemain(t *testing.T) {
	categories := newFakeCategories()
	cat, err := categories.Create(context.Background(), domain.Category{Name: "Tools"})
	require.NoError(t, err)
	categories.counts[cat.ID] = 3
	svc := newTestService(newFakeProducts(), categories)

	err = svc.DeleteCategory(context.Background(), cat.ID)
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Empty(t, categories.deleted)
}

func TestDeleteCategoryEmpty(t *testing.T) {
	categories := newFakeCategories()
	cat, err := categories.Create(context.Background(), domain.Category{Name: "Tools"})
	require.NoError(t, err)
	svc := newTestService(newFakeProducts(), categories)

	require.NoError(t, svc.DeleteCategory(context.Background(), cat.ID))
	assert.Equal(t, []int64{cat.ID}, categories.deleted)
}
