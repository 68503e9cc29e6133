package models

import (
	"time"
)

// User never serialises its password hash.
type User struct {
	ID        int64      `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	Password  string     `json:"-" db:"password"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	Posts     []Post     `json:"posts,omitempty" db:"-"`
	Count     *UserCount `json:"_count,omitempty" db:"-"`
}

type UserCount struct {
	Posts int `json:"posts"`
}

// Sanitize drops the password hash before a user leaves the service layer.
func (u *User) Sanitize() *User {
	if u != nil {
		u.Password = ""
	}
	return u
}

// PostAuthor is the public projection of a post's owner.
type PostAuthor struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
}

type Post struct {
	ID        int64       `json:"id" db:"id"`
	Title     string      `json:"title" db:"title"`
	Content   string      `json:"content" db:"content"`
	Published bool        `json:"published" db:"published"`
	AuthorID  int64       `json:"authorId" db:"author_id"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
	Author    *PostAuthor `json:"author,omitempty" db:"author"`
	Images    []Image     `json:"images,omitempty" db:"-"`
}

type Image struct {
	ImageID     string    `json:"id" db:"id"`
	PostID      int64     `json:"postId" db:"post_id"`
	ObjectName  string    `json:"-" db:"object_name"`
	ImageURL    string    `json:"url" db:"url"`
	ContentType string    `json:"contentType" db:"content_type"`
	Size        int64     `json:"size" db:"size"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Page is the list envelope {data, page, size, total, sort, order}.
type Page[T any] struct {
	Data  []T    `json:"data"`
	Page  int    `json:"page"`
	Size  int    `json:"size"`
	Total int    `json:"total"`
	Sort  string `json:"sort"`
	Order string `json:"order"`
}
