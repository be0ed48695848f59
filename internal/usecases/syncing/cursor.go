package syncing

import (
	"encoding/base64"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	minCursorLength = 8
	maxCursorLength = 4096
)

// ResumePoint é o ponto exato de retomada dentro de uma fase: o pai sendo
// listado, o cursor da página corrente e a posição do próximo item da página
type ResumePoint struct {
	ParentID string `json:"p"`
	After    string `json:"a,omitempty"`
	Offset   int    `json:"o,omitempty"`
}

// EncodeCursor serializa o ponto de retomada em um cursor opaco
func EncodeCursor(point ResumePoint) string {
	data, err := json.Marshal(point)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeCursor interpreta um cursor opaco. Cursor vazio é o início da fase.
func DecodeCursor(cursor string) (ResumePoint, error) {
	if cursor == "" {
		return ResumePoint{}, nil
	}

	data, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return ResumePoint{}, ErrMalformedCursor
	}

	var point ResumePoint
	if err := json.Unmarshal(data, &point); err != nil {
		return ResumePoint{}, ErrMalformedCursor
	}
	if point.ParentID == "" || point.Offset < 0 {
		return ResumePoint{}, ErrMalformedCursor
	}

	return point, nil
}

// isPlausibleCursor verifica tamanho e formato antes de aceitar o cursor
func isPlausibleCursor(cursor string) bool {
	if len(cursor) < minCursorLength || len(cursor) > maxCursorLength {
		return false
	}
	_, err := DecodeCursor(cursor)
	return err == nil
}

// resumeFor devolve o ponto de retomada quando o cursor se refere ao pai informado
func resumeFor(point ResumePoint, parentID string) (after string, offset int) {
	if point.ParentID != parentID {
		return "", 0
	}
	return point.After, point.Offset
}
