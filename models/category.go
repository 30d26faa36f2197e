package models

type Category struct {
	Base
	CustomID string    `gorm:"uniqueIndex" json:"custom_id"`
	Name     string    `gorm:"uniqueIndex;not null" json:"name"`
	Slug     string    `gorm:"uniqueIndex;not null" json:"slug"`
	ParentID *string   `gorm:"size:36;index" json:"parent_id"`
	Parent   *Category `gorm:"foreignKey:ParentID" json:"-"`
}
