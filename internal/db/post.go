package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post 定义了文章模型
type Post struct {
	ID        string    `gorm:"primaryKey;type:text" json:"_id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content"`
	Cover     string    `json:"cover"`
	Author    string    `json:"author"`
	Tags      []string  `gorm:"-" json:"tags"`
	TagRows   []PostTag `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostTag stores one tag of a post; Position keeps the submitted order.
type PostTag struct {
	ID       uint   `gorm:"primaryKey"`
	PostID   string `gorm:"type:text;index;not null"`
	Position int    `gorm:"not null"`
	Name     string `gorm:"index;not null"`
}

// BeforeCreate assigns the identifier and materialises tag rows.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if len(p.TagRows) == 0 && len(p.Tags) > 0 {
		p.TagRows = make([]PostTag, 0, len(p.Tags))
		for i, name := range p.Tags {
			p.TagRows = append(p.TagRows, PostTag{PostID: p.ID, Position: i, Name: name})
		}
	}
	return nil
}

// AfterFind rebuilds Tags from the preloaded rows.
func (p *Post) AfterFind(tx *gorm.DB) error {
	p.Tags = make([]string, 0, len(p.TagRows))
	for _, row := range p.TagRows {
		p.Tags = append(p.Tags, row.Name)
	}
	return nil
}

// ValidPostID 判断字符串是否为 sqlite 存储生成的 UUID 形式。
func ValidPostID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
