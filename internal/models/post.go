package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a photo post stored in MongoDB. AuthorID references a User
// in PostgreSQL but the post is owned by the posts collection. LikesCount is
// derived from the like relation rows and maintained with atomic $inc updates.
type Post struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID   uint               `json:"author_id" bson:"author_id"`
	Title      string             `json:"title" bson:"title"`
	Photos     []string           `json:"photos" bson:"photos"`
	LikesCount int64              `json:"likes_count" bson:"likes_count"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title  string   `json:"title" validate:"required,min=1,max=100"`
	Photos []string `json:"photos,omitempty" validate:"omitempty,dive,url"`
}
