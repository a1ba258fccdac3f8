package team

import (
	"errors"

	"gorm.io/gorm"
)

type TeamRepository interface {
	Create(t *Team) error
	GetByID(id uint) (*Team, error)
	GetByTournamentAndName(tournamentID uint, name string) (*Team, error)
	ListByTournament(tournamentID uint, page, pageSize int) ([]Team, int64, error)
	Update(t *Team) error
	Delete(id uint) error

	AddPlayer(p *Player) error
	GetPlayer(id uint) (*Player, error)
	UpdatePlayer(p *Player) error
	RemovePlayer(id uint) error

	WithTransaction(txFunc func(TeamRepository) error) error
}

type GormTeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

func (r *GormTeamRepository) Create(t *Team) error {
	return r.db.Create(t).Error
}

func (r *GormTeamRepository) GetByID(id uint) (*Team, error) {
	var t Team
	if err := r.db.Preload("Players").First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *GormTeamRepository) GetByTournamentAndName(tournamentID uint, name string) (*Team, error) {
	var t Team
	err := r.db.Where("tournament_id = ? AND name = ?", tournamentID, name).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *GormTeamRepository) ListByTournament(tournamentID uint, page, pageSize int) ([]Team, int64, error) {
	var teams []Team
	var total int64

	query := r.db.Model(&Team{}).Where("tournament_id = ?", tournamentID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Players").Order("name ASC").Offset(offset).Limit(pageSize).Find(&teams).Error
	return teams, total, err
}

func (r *GormTeamRepository) Update(t *Team) error {
	return r.db.Save(t).Error
}

func (r *GormTeamRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&Player{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Team{}, id).Error
	})
}

func (r *GormTeamRepository) AddPlayer(p *Player) error {
	return r.db.Create(p).Error
}

func (r *GormTeamRepository) GetPlayer(id uint) (*Player, error) {
	var p Player
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *GormTeamRepository) UpdatePlayer(p *Player) error {
	return r.db.Save(p).Error
}

func (r *GormTeamRepository) RemovePlayer(id uint) error {
	return r.db.Delete(&Player{}, id).Error
}

func (r *GormTeamRepository) WithTransaction(txFunc func(TeamRepository) error) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	txRepo := &GormTeamRepository{db: tx}
	if err := txFunc(txRepo); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
