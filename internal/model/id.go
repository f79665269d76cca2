package model

import gonanoid "github.com/matoous/go-nanoid/v2"

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewID returns a random opaque identifier used as primary key for every model
func NewID() (string, error) {
	return gonanoid.Generate(idCharset, 16)
}

func assignID(id *string) error {
	if *id != "" {
		return nil
	}

	v, err := NewID()
	if err != nil {
		return err
	}

	*id = v
	return nil
}
