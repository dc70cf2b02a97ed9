package subject

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("subject not found")

// Subject is a course taught in a department's semester. Codes may repeat
// across departments.
type Subject struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	Code       string             `bson:"code" json:"code"`
	Department string             `bson:"department" json:"department"`
	Semester   int                `bson:"semester" json:"semester"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Filter struct {
	Department string
	Semester   int
}
