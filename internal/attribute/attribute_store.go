package attribute

import (
	"context"
	"strconv"

	"go-hrm/internal/shared/cache"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/tenant"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const CacheKeyPrefix = "hrm:employee:attrs:"

func CacheKey(employeeID int64) string {
	return CacheKeyPrefix + strconv.FormatInt(employeeID, 10)
}

//go:generate mockgen -source=attribute_store.go -destination=mock/attribute_store_mock.go -package=mock
type Store interface {
	// Get returns the attribute row of employeeID, from cache unless force.
	// A zero id or a missing row reports found == false with a nil error.
	Get(ctx context.Context, employeeID int64, force bool) (Row, bool, error)
	// Update writes the fields set in p. It leaves the cached row untouched;
	// callers refresh with Get(ctx, id, true).
	Update(ctx context.Context, employeeID int64, p Patch) error
	Create(ctx context.Context, row *Row) error
	Delete(ctx context.Context, employeeID int64) error
	EmployeeIDsByCompany(ctx context.Context, companyID int64) ([]int64, error)
}

type store struct {
	db     *gorm.DB
	cache  cache.Cache
	logger *zap.Logger
}

func NewStore(db *gorm.DB, c cache.Cache, logger ...*zap.Logger) Store {
	l := zap.L().Named("attribute.store")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attribute.store")
	}
	if c == nil {
		c = cache.Noop()
	}
	return &store{db: db, cache: c, logger: l}
}

func (s *store) Get(ctx context.Context, employeeID int64, force bool) (Row, bool, error) {
	if employeeID == 0 {
		return Row{}, false, nil
	}

	key := CacheKey(employeeID)
	if !force {
		var cached Row
		ok, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("attribute cache read failed, falling back to database",
				append(contextutil.ExtractMetadata(ctx).Fields(),
					zap.Int64("employee_id", employeeID),
					zap.Error(err),
				)...,
			)
		}
		if ok {
			return cached, true, nil
		}
	}

	var rows []Row
	err := s.db.WithContext(ctx).
		Table("hr_employees AS e").
		Select("e.*, COALESCE(d.title, '') AS designation_title, COALESCE(dpt.title, '') AS department_title").
		Joins("LEFT JOIN hr_designations AS d ON d.id = e.designation").
		Joins("LEFT JOIN hr_depts AS dpt ON dpt.id = e.department").
		Where("e.employee_id = ?", employeeID).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		s.logger.Error("attribute row query failed",
			zap.Int64("employee_id", employeeID),
			zap.Error(err),
		)
		return Row{}, false, err
	}
	if len(rows) == 0 {
		return Row{}, false, nil
	}

	row := rows[0]
	if err := s.cache.Set(ctx, key, row); err != nil {
		s.logger.Warn("attribute cache write failed",
			zap.Int64("employee_id", employeeID),
			zap.Error(err),
		)
	}
	return row, true, nil
}

func (s *store) Update(ctx context.Context, employeeID int64, p Patch) error {
	cols := p.Columns()
	if employeeID == 0 || len(cols) == 0 {
		return nil
	}

	s.logger.Debug("attribute update requested",
		zap.Int64("employee_id", employeeID),
		zap.Int("columns", len(cols)),
	)

	return s.db.WithContext(ctx).
		Model(&Row{}).
		Where("employee_id = ?", employeeID).
		Updates(cols).Error
}

func (s *store) Create(ctx context.Context, row *Row) error {
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		s.logger.Error("attribute row insert failed",
			zap.Int64("employee_id", row.EmployeeID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *store) Delete(ctx context.Context, employeeID int64) error {
	if employeeID == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&Row{}).Error
	if err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, CacheKey(employeeID)); err != nil {
		s.logger.Warn("attribute cache delete failed",
			zap.Int64("employee_id", employeeID),
			zap.Error(err),
		)
	}
	return nil
}

func (s *store) EmployeeIDsByCompany(ctx context.Context, companyID int64) ([]int64, error) {
	var ids []int64
	err := s.db.WithContext(ctx).
		Model(&Row{}).
		Scopes(tenant.Scope(companyID)).
		Order("id ASC").
		Pluck("employee_id", &ids).Error
	return ids, err
}
