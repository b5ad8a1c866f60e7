package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 6
)

func GenerateID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}

// GenerateRunID gera o identificador de uma execução, no formato "<prefix>-<id>".
func GenerateRunID(prefix string) (string, error) {
	id, err := GenerateID()
	if err != nil {
		return "", err
	}
	if prefix == "" {
		return id, nil
	}
	return prefix + "-" + id, nil
}
