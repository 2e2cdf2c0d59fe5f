package cache

import "fmt"

var (
	ErrInvalidConfig    error = fmt.Errorf("invalid cache configuration")
	ErrOffsetOutOfRange error = fmt.Errorf("offset index out of range")
	ErrNoVictim         error = fmt.Errorf("no victim line available for eviction")
)
