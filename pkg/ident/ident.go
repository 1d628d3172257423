package ident

import "github.com/google/uuid"

// New genera un identificador opaco único para cualquier entidad.
// Ambos backends usan el mismo generador: los IDs son UUIDv4 en texto.
func New() string {
	return uuid.New().String()
}
