package repository

import "context"

// SequenceRepository mantiene un contador monótono por (clave, año) sobre un
// registro dedicado, con find-and-increment atómico en un solo statement.
type SequenceRepository interface {
	// Next consume y devuelve el siguiente valor del contador.
	Next(ctx context.Context, key string, year int) (int64, error)
	// Peek devuelve el valor que asignaría Next sin consumirlo. Solo para
	// previsualización de formularios: bajo concurrencia el número final
	// puede diferir.
	Peek(ctx context.Context, key string, year int) (int64, error)
}
