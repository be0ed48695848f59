package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateRequestID gera ids para requisições de sincronização e mensagens da fila
func GenerateRequestID() (string, error) {
	return gonanoid.Generate(characters, 21)
}
