package domain

import "time"

type Region struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:100"`
	Slug      string `gorm:"uniqueIndex;size:120"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Category struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:100"`
	Slug        string `gorm:"uniqueIndex;size:120"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Organization struct {
	ID           string `gorm:"primaryKey"`
	Name         string `gorm:"size:200;index:idx_org_name_region,unique"`
	RegionID     string `gorm:"index:idx_org_name_region,unique"`
	CategoryID   string `gorm:"index"`
	Address      string
	Phone        string `gorm:"size:20"`
	Email        string
	WorkingHours string `gorm:"size:100"`
	Location     string `gorm:"size:100"` // "lat,lon"
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Region   *Region   `gorm:"foreignKey:RegionID;constraint:OnDelete:CASCADE"`
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}
