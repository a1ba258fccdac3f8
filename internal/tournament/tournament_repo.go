package tournament

import (
	"errors"

	"gorm.io/gorm"
)

type TournamentRepository interface {
	Create(t *Tournament) error
	GetByID(id uint) (*Tournament, error)
	GetByName(name string) (*Tournament, error)
	List(filters map[string]interface{}, page, pageSize int) ([]Tournament, int64, error)
	Update(t *Tournament) error
	Delete(id uint) error
	CountTeams(tournamentID uint) (int64, error)
	WithTransaction(txFunc func(TournamentRepository) error) error
}

type GormTournamentRepository struct {
	db *gorm.DB
}

func NewTournamentRepository(db *gorm.DB) TournamentRepository {
	return &GormTournamentRepository{db: db}
}

func (r *GormTournamentRepository) Create(t *Tournament) error {
	return r.db.Create(t).Error
}

func (r *GormTournamentRepository) GetByID(id uint) (*Tournament, error) {
	var t Tournament
	if err := r.db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *GormTournamentRepository) GetByName(name string) (*Tournament, error) {
	var t Tournament
	if err := r.db.Where("name = ?", name).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *GormTournamentRepository) List(filters map[string]interface{}, page, pageSize int) ([]Tournament, int64, error) {
	var tournaments []Tournament
	var total int64

	query := r.db.Model(&Tournament{})
	for key, value := range filters {
		query = query.Where(key+" = ?", value)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&tournaments).Error
	return tournaments, total, err
}

func (r *GormTournamentRepository) Update(t *Tournament) error {
	return r.db.Save(t).Error
}

func (r *GormTournamentRepository) Delete(id uint) error {
	return r.db.Delete(&Tournament{}, id).Error
}

func (r *GormTournamentRepository) CountTeams(tournamentID uint) (int64, error) {
	var count int64
	err := r.db.Table("teams").
		Where("tournament_id = ? AND deleted_at IS NULL", tournamentID).
		Count(&count).Error
	return count, err
}

func (r *GormTournamentRepository) WithTransaction(txFunc func(TournamentRepository) error) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	txRepo := &GormTournamentRepository{db: tx}
	if err := txFunc(txRepo); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
