package model

import (
	"time"

	"gorm.io/gorm"
)

type VideoType string

const (
	VideoTypeModule VideoType = "module"
	VideoTypeBasic  VideoType = "basic"
)

type Video struct {
	ID         string    `gorm:"primaryKey;size:32" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Duration   string    `gorm:"not null" json:"duration"`
	Type       VideoType `gorm:"size:16;not null;index" json:"type"`
	ModuleID   *string   `gorm:"index" json:"moduleId,omitempty"`
	ModuleName *string   `json:"moduleName,omitempty"`

	// Set only from a file admitted by the upload pipeline
	FileURL  string `gorm:"not null" json:"fileUrl"`
	FileName string `json:"fileName"` // Original name as sent by the client
	FileSize int64  `json:"fileSize"`
	MimeType string `json:"mimeType"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (v *Video) BeforeCreate(*gorm.DB) error {
	return assignID(&v.ID)
}
