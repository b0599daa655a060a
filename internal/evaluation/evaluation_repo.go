package evaluation

import (
	"context"
	"database/sql"

	evaluationerrors "hris-portal/internal/evaluation/errors"
	"hris-portal/internal/shared/connection"
	"hris-portal/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=evaluation_repo.go -destination=mock/evaluation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Evaluation) error
	FindAll(ctx context.Context, companyID string, filter ListFilter) ([]Evaluation, int64, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Evaluation, error)
	// FindByIDForUpdate locks the evaluation row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, companyID, id string) (*Evaluation, error)
	ExistsForPeriod(ctx context.Context, companyID, employeeID, periodKey string) (bool, error)
	// Update writes e only while the stored status still equals from.
	Update(ctx context.Context, e *Evaluation, from string) error
	ReplaceScores(ctx context.Context, e *Evaluation) error
	Delete(ctx context.Context, companyID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.WithTx(r.db, tx)}
}

// Create inserts the evaluation together with its work attitude and work function rows.
func (r *repository) Create(ctx context.Context, e *Evaluation) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(e).Error
}

func (r *repository) FindAll(ctx context.Context, companyID string, filter ListFilter) ([]Evaluation, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&Evaluation{}).
		Scopes(tenant.ScopeTable("evaluations", companyID))

	if filter.VisibleDepartmentIDs != nil {
		if len(filter.VisibleDepartmentIDs) == 0 {
			return []Evaluation{}, 0, nil
		}
		q = q.Joins("JOIN employees e ON e.id = evaluations.employee_id").
			Where("e.department_id IN ?", filter.VisibleDepartmentIDs)
	}
	if filter.EmployeeID != "" {
		q = q.Where("evaluations.employee_id = ?", filter.EmployeeID)
	}
	if filter.PeriodKey != "" {
		q = q.Where("evaluations.period_key = ?", filter.PeriodKey)
	}
	if filter.Status != "" {
		q = q.Where("evaluations.status = ?", filter.Status)
	}
	if filter.HideDrafts {
		q = q.Where("evaluations.status <> ?", StatusDraft)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []Evaluation
	q = q.Preload("Employee").Order("evaluations.period_start DESC, evaluations.created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}
	err := q.Find(&out).Error
	return out, total, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Evaluation, error) {
	return r.find(r.db.WithContext(ctx), companyID, id)
}

func (r *repository) FindByIDForUpdate(ctx context.Context, companyID, id string) (*Evaluation, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), companyID, id)
}

func (r *repository) find(db *gorm.DB, companyID, id string) (*Evaluation, error) {
	var e Evaluation
	err := db.
		Preload("Employee").
		Preload("WorkAttitudes").
		Preload("WorkFunctions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Take(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) ExistsForPeriod(ctx context.Context, companyID, employeeID, periodKey string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Evaluation{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND period_key = ?", employeeID, periodKey).
		Count(&count).Error
	return count > 0, err
}

// Update saves the evaluation columns only; child rows go through ReplaceScores.
func (r *repository) Update(ctx context.Context, e *Evaluation, from string) error {
	res := r.db.WithContext(ctx).
		Model(e).
		Select("*").
		Omit(clause.Associations, "CreatedAt").
		Where("status = ?", from).
		Updates(e)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return statusConflict(from)
	}
	return nil
}

func statusConflict(from string) error {
	if from == StatusFinalized {
		return evaluationerrors.ErrNotFinalized
	}
	return evaluationerrors.ErrNotDraft
}

func (r *repository) ReplaceScores(ctx context.Context, e *Evaluation) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("evaluation_id = ?", e.ID).Delete(&WorkAttitudeScore{}).Error; err != nil {
		return err
	}
	if err := db.Where("evaluation_id = ?", e.ID).Delete(&WorkFunction{}).Error; err != nil {
		return err
	}
	if len(e.WorkAttitudes) > 0 {
		if err := db.Create(&e.WorkAttitudes).Error; err != nil {
			return err
		}
	}
	if len(e.WorkFunctions) > 0 {
		if err := db.Create(&e.WorkFunctions).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the row for good so the period can be evaluated again.
func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Delete(&Evaluation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
