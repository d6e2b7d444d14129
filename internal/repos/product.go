package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/wearly/shopagent-backend/internal/logger"
)

// Filter is one named predicate contributed to a catalog query. Clause
// is a SQL fragment with gorm placeholders; Args are its bound values.
// Filters on the same query are AND-composed by the repo.
type Filter struct {
	Name   string
	Clause string
	Args   []any
}

// ProductRow is the catalog row shape. The products table is owned by
// the catalog pipeline; this model only reads it.
type ProductRow struct {
	ID            int64   `gorm:"column:id;primaryKey"`
	Name          string  `gorm:"column:name"`
	Brand         string  `gorm:"column:brand"`
	Price         float64 `gorm:"column:price"`
	Color         string  `gorm:"column:color"`
	Fit           string  `gorm:"column:fit"`
	Category      string  `gorm:"column:category"`
	Style         string  `gorm:"column:style"`
	ImageURL      string  `gorm:"column:image_url"`
	ProductURL    string  `gorm:"column:product_url"`
	AffiliateLink string  `gorm:"column:affiliate_link"`
}

func (ProductRow) TableName() string { return "products" }

type ProductRepo interface {
	// Search AND-composes the given filters and returns up to limit rows
	// in the store's natural order.
	Search(ctx context.Context, filters []Filter, limit int) ([]ProductRow, error)

	// SearchRandom is Search with randomized ordering, used for
	// preference-only recommendations.
	SearchRandom(ctx context.Context, filters []Filter, limit int) ([]ProductRow, error)

	// GetByIDs returns the rows for the given catalog ids.
	GetByIDs(ctx context.Context, ids []int64) ([]ProductRow, error)
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return &productRepo{db: db, log: baseLog.With("repo", "ProductRepo")}
}

func (r *productRepo) Search(ctx context.Context, filters []Filter, limit int) ([]ProductRow, error) {
	return r.search(ctx, filters, limit, "")
}

func (r *productRepo) SearchRandom(ctx context.Context, filters []Filter, limit int) ([]ProductRow, error) {
	return r.search(ctx, filters, limit, "RANDOM()")
}

func (r *productRepo) search(ctx context.Context, filters []Filter, limit int, order string) ([]ProductRow, error) {
	if r.db == nil {
		return nil, gorm.ErrInvalidDB
	}
	q := r.db.WithContext(ctx).Model(&ProductRow{})
	for _, f := range filters {
		q = q.Where(f.Clause, f.Args...)
	}
	if order != "" {
		q = q.Order(order)
	}
	var rows []ProductRow
	if err := q.Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *productRepo) GetByIDs(ctx context.Context, ids []int64) ([]ProductRow, error) {
	if r.db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var rows []ProductRow
	if len(ids) == 0 {
		return rows, nil
	}
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
