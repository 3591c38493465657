// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Profile image locations served by the static and media mounts.
const (
	ProfilePicsPath    = "/media/profile_pics/"
	DefaultProfilePath = "/static/profile_pics/default.jpg"
)

// User represents an author of posts.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	ImageFile    *string   `gorm:"size:255" json:"image_file"`
	PasswordHash *string   `gorm:"size:255" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Posts        []Post    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// ImagePath returns the public URL of the user's profile picture.
func (u *User) ImagePath() string {
	if u.ImageFile == nil || *u.ImageFile == "" {
		return DefaultProfilePath
	}
	return ProfilePicsPath + *u.ImageFile
}
