package repository

import (
	"context"

	"gorm.io/gorm"

	"guild-hub-api/internal/dto"
)

// findPaged runs a filtered, ordered, paginated query and returns the page
// plus the total count of matching rows. The count is taken on the filtered
// query before offset/limit are applied; when no order is given, rows are
// ordered by primary key so pages are stable across requests.
func findPaged[T any](
	ctx context.Context,
	db *gorm.DB,
	params dto.PaginationParams,
	orderBy string,
	scopes ...func(*gorm.DB) *gorm.DB,
) ([]*T, int64, error) {
	var model T
	query := db.WithContext(ctx).Model(&model)
	for _, scope := range scopes {
		query = scope(query)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if orderBy == "" {
		orderBy = "id"
	}

	var items []*T
	if err := query.
		Order(orderBy).
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// createdBy filters rows to those created by the given user id
func createdBy(userID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("created_by_id = ?", userID)
	}
}
