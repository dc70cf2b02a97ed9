package room

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultType is the room type used when none is given.
const DefaultType = "Theory"

// Locations are the campus buildings a room can be in.
var Locations = []string{
	"Main Building",
	"Academic Building",
	"Workshop Building",
	"Administrative Building",
	"Annex Building",
}

var (
	ErrNotFound  = errors.New("room not found")
	ErrDuplicate = errors.New("room number already exists")
)

// Room is a teaching room on campus.
type Room struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Number     string             `bson:"number" json:"number"`
	Type       string             `bson:"type" json:"type"`
	Capacity   int                `bson:"capacity" json:"capacity"`
	Location   string             `bson:"location" json:"location"`
	Department string             `bson:"department,omitempty" json:"department,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Filter narrows room listings. Empty fields match everything.
type Filter struct {
	Location   string
	Department string
}
