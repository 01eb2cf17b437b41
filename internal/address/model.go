package address

import (
	"github.com/google/uuid"
)

type Address struct {
	ID     uuid.UUID `json:"id"`
	UserID uint      `json:"userId"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`

	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode"`
	Country string `json:"country"`
}
