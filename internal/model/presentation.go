package model

import (
	"time"

	"gorm.io/gorm"
)

type Presentation struct {
	ID         string  `gorm:"primaryKey;size:32" json:"id"`
	Title      string  `gorm:"not null" json:"title"`
	Slides     int     `gorm:"not null" json:"slides"`
	ModuleID   string  `gorm:"not null;index" json:"moduleId"`
	ModuleName *string `json:"moduleName,omitempty"`

	FileURL  string `gorm:"not null" json:"fileUrl"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
	MimeType string `json:"mimeType"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Presentation) BeforeCreate(*gorm.DB) error {
	return assignID(&p.ID)
}
