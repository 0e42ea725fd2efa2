package models

import "time"

// AllSubjects is the synthetic filter option prepended on reads. It is never stored.
const AllSubjects = "All"

type Subject struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Subject) TableName() string {
	return "subjects"
}
