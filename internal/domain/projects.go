package domain

type Projects struct {
	Model
	ID        uint   `gorm:"primaryKey"`
	ProjectID string `gorm:"unique;size:36;not null"`
	Name      string `gorm:"size:64;not null"`
}
