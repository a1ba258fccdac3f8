package match

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pitchside/pitchside/internal/models"
	"github.com/pitchside/pitchside/internal/scoring"
)

// ErrVersionConflict means another writer saved the scoring state between our
// read and our save. The caller should reload and retry or report a conflict.
var ErrVersionConflict = errors.New("scoring state was modified concurrently")

type MatchRepository interface {
	Create(m *Match) error
	GetByID(id uint) (*Match, error)
	List(filters map[string]interface{}, page, pageSize int) ([]Match, int64, error)
	Update(m *Match) error
	Delete(id uint) error

	// SaveScoringState persists the snapshot with a compare-and-swap on
	// ScoringVersion. Returns ErrVersionConflict when the stored version no
	// longer matches expectedVersion.
	SaveScoringState(matchID uint, state models.JSONB, status scoring.Status, result string, expectedVersion int) error

	WithTransaction(txFunc func(MatchRepository) error) error
}

type GormMatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &GormMatchRepository{db: db}
}

func (r *GormMatchRepository) Create(m *Match) error {
	return r.db.Create(m).Error
}

func (r *GormMatchRepository) GetByID(id uint) (*Match, error) {
	var m Match
	if err := r.db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *GormMatchRepository) List(filters map[string]interface{}, page, pageSize int) ([]Match, int64, error) {
	var matches []Match
	var total int64

	query := r.db.Model(&Match{})
	for key, value := range filters {
		query = query.Where(key+" = ?", value)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("scheduled_at ASC").Offset(offset).Limit(pageSize).Find(&matches).Error
	return matches, total, err
}

func (r *GormMatchRepository) Update(m *Match) error {
	return r.db.Save(m).Error
}

func (r *GormMatchRepository) Delete(id uint) error {
	return r.db.Delete(&Match{}, id).Error
}

func (r *GormMatchRepository) SaveScoringState(matchID uint, state models.JSONB, status scoring.Status, result string, expectedVersion int) error {
	res := r.db.Model(&Match{}).
		Where("id = ? AND scoring_version = ?", matchID, expectedVersion).
		Updates(map[string]interface{}{
			"scoring_state":   state,
			"scoring_version": expectedVersion + 1,
			"status":          status,
			"result":          result,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (r *GormMatchRepository) WithTransaction(txFunc func(MatchRepository) error) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	txRepo := &GormMatchRepository{db: tx}
	if err := txFunc(txRepo); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
