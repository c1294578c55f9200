package domain

type Tokens struct {
	Model
	ID          uint   `gorm:"primaryKey"`
	Mint        string `gorm:"type:text;not null"`
	Environment string `gorm:"type:varchar(8)"` // TEST / LIVE, empty = derive from deployment mode
}
