package utils

import "github.com/google/uuid"

// UUIDGenerator produces globally-unique identifiers used as public card
// share identifiers. Version 7 UUIDs are preferred for their time-ordered
// layout; on the unlikely v7 generation failure a random v4 is returned.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
