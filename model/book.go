// model/book.go
package model

import "time"

type Book struct {
	ID                string    `bson:"id" json:"id"`
	Image             string    `bson:"image" json:"image"`
	Title             string    `bson:"title" json:"title"`
	Author            string    `bson:"author" json:"author"`
	Publisher         string    `bson:"publisher" json:"publisher"`
	PublishYear       int       `bson:"publish_year" json:"publish_year"`
	CategoryID        string    `bson:"category_id" json:"category_id"`
	TotalQuantity     int       `bson:"total_quantity" json:"total_quantity"`
	AvailableQuantity int       `bson:"available_quantity" json:"available_quantity"`
	Description       *string   `bson:"description" json:"description,omitempty"`
	TimeCreate        time.Time `bson:"timeCreate" json:"timeCreate"`
}

type CopyStatus string

const (
	CopyAvailable CopyStatus = "available"
	CopyBorrowed  CopyStatus = "borrowed"
	CopyDamaged   CopyStatus = "damaged"
	CopyLost      CopyStatus = "lost"
)

func ValidCopyStatus(s CopyStatus) bool {
	switch s {
	case CopyAvailable, CopyBorrowed, CopyDamaged, CopyLost:
		return true
	}
	return false
}

// BookCopy is one physical unit of a title. ShelfID stays nil until the
// copy is placed on a shelf; borrow status and shelf placement move
// independently.
type BookCopy struct {
	ID             string     `bson:"id" json:"id"`
	BookID         string     `bson:"book_id" json:"book_id"`
	ShelfID        *int64     `bson:"shelf_id" json:"shelf_id"`
	Status         CopyStatus `bson:"status" json:"status"`
	DamageEvidence string     `bson:"damage_evidence" json:"damage_evidence,omitempty"`
	TimeCreate     time.Time  `bson:"timeCreate" json:"timeCreate"`
}

// Shelf.Capacity counts the copies currently assigned to the shelf. It
// is maintained incrementally by the copy repository; nothing recounts
// it from the collection.
type Shelf struct {
	ID            int64     `bson:"id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Description   string    `bson:"description" json:"description,omitempty"`
	CapacityLimit int64     `bson:"capacitylimit" json:"capacitylimit"`
	Capacity      int64     `bson:"capacity" json:"capacity"`
	TimeCreate    time.Time `bson:"timeCreate" json:"timeCreate"`
}
