package listings

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"souqah-backend/internal/models"
	"souqah-backend/internal/pkg/apperrors"
	"souqah-backend/internal/pkg/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sort keys accepted by the public listing query.
const (
	SortNewest     = "newest"
	SortPriceLow   = "price-low"
	SortPriceHigh  = "price-high"
	SortMostViewed = "most-viewed"
)

// sortClauses is the fixed sort mapping. Ties fall back to the store's
// natural order; callers must not depend on tie order.
var sortClauses = map[string]string{
	SortNewest:     "created_at DESC",
	SortPriceLow:   "price ASC",
	SortPriceHigh:  "price DESC",
	SortMostViewed: "view_count DESC",
}

// Service answers the public listing query: a deterministic page of active
// ads for a set of filters and a sort key.
type Service struct {
	DB *gorm.DB

	DefaultPageSize int
	MaxPageSize     int
}

// Params are the raw query inputs. Numeric fields arrive as text; malformed
// values are query errors, out-of-range pages are not.
type Params struct {
	CategorySlug    string
	SubcategorySlug string
	City            string
	Search          string
	MinPrice        string
	MaxPrice        string
	OwnerID         uuid.UUID
	FeaturedOnly    bool
	Sort            string
	Page            string
	Limit           string
}

// Page is one result page plus the pagination contract values.
type Page struct {
	Items      []models.Ad `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"total_pages"`
	HasMore    bool        `json:"has_more"`
}

// List runs the listing query. Only active ads are ever visible on this path;
// pending, rejected, sold and deleted ads are excluded regardless of filters.
func (s *Service) List(ctx context.Context, p Params) (*Page, error) {
	page, limit, err := s.parsePagination(p.Page, p.Limit)
	if err != nil {
		return nil, err
	}
	sort := p.Sort
	if sort == "" {
		sort = SortNewest
	}
	orderBy, ok := sortClauses[sort]
	if !ok {
		return nil, ErrBadSort
	}

	q := s.DB.WithContext(ctx).Model(&models.Ad{}).Where("status = ?", constants.AdActive)

	if p.CategorySlug != "" {
		var category models.Category
		if err := s.DB.WithContext(ctx).Where("slug = ?", p.CategorySlug).First(&category).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return emptyPage(page, limit), nil
			}
			return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
		q = q.Where("category_id = ?", category.CategoryID)
	}
	if p.SubcategorySlug != "" {
		var sc models.Subcategory
		if err := s.DB.WithContext(ctx).Where("slug = ?", p.SubcategorySlug).First(&sc).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return emptyPage(page, limit), nil
			}
			return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
		q = q.Where("subcategory_id = ?", sc.SubcategoryID)
	}
	if p.City != "" {
		q = q.Where("city = ?", p.City)
	}
	if p.MinPrice != "" {
		min, perr := strconv.ParseFloat(p.MinPrice, 64)
		if perr != nil || min < 0 {
			return nil, ErrBadMinPrice
		}
		q = q.Where("price >= ?", min)
	}
	if p.MaxPrice != "" {
		max, perr := strconv.ParseFloat(p.MaxPrice, 64)
		if perr != nil || max < 0 {
			return nil, ErrBadMaxPrice
		}
		q = q.Where("price <= ?", max)
	}
	if p.OwnerID != uuid.Nil {
		q = q.Where("user_id = ?", p.OwnerID)
	}
	if p.FeaturedOnly {
		q = q.Where("featured = ?", true)
	}
	if term := strings.TrimSpace(p.Search); term != "" {
		// Substring match over title OR description; the two halves OR
		// together, everything else still ANDs.
		needle := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}

	var items []models.Ad
	err = q.Preload("Images").
		Order(orderBy).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}

	return &Page{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		HasMore:    int64(page*limit) < total,
	}, nil
}

func (s *Service) parsePagination(rawPage, rawLimit string) (int, int, error) {
	page := 1
	if rawPage != "" {
		n, err := strconv.Atoi(rawPage)
		if err != nil || n < 1 {
			return 0, 0, ErrBadPage
		}
		page = n
	}
	limit := s.DefaultPageSize
	if limit <= 0 {
		limit = 12
	}
	if rawLimit != "" {
		n, err := strconv.Atoi(rawLimit)
		if err != nil || n < 1 {
			return 0, 0, ErrBadLimit
		}
		limit = n
	}
	if s.MaxPageSize > 0 && limit > s.MaxPageSize {
		limit = s.MaxPageSize
	}
	return page, limit, nil
}

func emptyPage(page, limit int) *Page {
	return &Page{Items: []models.Ad{}, Page: page, Limit: limit}
}
